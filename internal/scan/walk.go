package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/diskview/diskview/internal/tree"
)

// dirWork is the traversal bookkeeping for one directory. pending counts
// subdirectories whose subtrees have not yet completed; when it reaches zero
// after enumeration, this directory's total is folded into its parent.
type dirWork struct {
	node     *tree.Node
	parent   *dirWork
	pending  atomic.Int32
	children []*dirWork // written by the enumerating worker, read at finalize

	// folded is set once this subtree's total has been added to the
	// parent. Written by the completing worker, read only after all
	// workers have joined.
	folded bool
}

// worker pops directories off the shared work list and walks each popped
// subtree depth-first. Small sibling sets are handled inline on a local
// stack; large ones are pushed back to the shared list so idle workers can
// pick them up. Returns nil on cancellation — only fatal errors surface.
func (st *scanState) worker(ctx context.Context) error {
	local := make([]*dirWork, 0, 64)
	for {
		w, ok := st.list.pop()
		if !ok {
			return nil
		}

		local = append(local[:0], w)
		var err error
		for len(local) > 0 && err == nil {
			cur := local[len(local)-1]
			local = local[:len(local)-1]
			err = st.scanDir(ctx, cur, &local)
		}
		st.list.done()

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// scanDir enumerates one directory: files are measured, classified, and
// accumulated by this worker; subdirectories are filtered and dispatched.
// Pause and cancellation are checked on entry and between files.
func (st *scanState) scanDir(ctx context.Context, w *dirWork, local *[]*dirWork) error {
	if err := st.checkpoint(ctx); err != nil {
		return err
	}

	node := w.node
	st.rep.setCurrentDir(node.Path)
	if node.Parent != nil {
		st.collector.AddFolder()
	}

	entries, err := os.ReadDir(node.Path)
	if err != nil {
		if isAccessError(err) {
			st.collector.AddAccessError()
			st.complete(w)
			return nil
		}
		return fmt.Errorf("read dir %s: %w", node.Path, err)
	}

	var subdirs []*dirWork
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(node.Path, name)

		if entry.IsDir() {
			// IsDir is based on lstat, so symlinked and reparse-style
			// directories fall through to the non-regular skip below
			// and are never descended into.
			if _, skip := st.skip[name]; skip {
				continue
			}
			child := tree.NewDir(name, path, node)
			if info, ierr := entry.Info(); ierr == nil {
				child.Created, child.Modified, child.Accessed = fileTimes(info)
			}
			node.Children = append(node.Children, child)
			subdirs = append(subdirs, &dirWork{node: child, parent: w})
			continue
		}

		if err := st.checkpoint(ctx); err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			// Symlinks, sockets, devices: never followed, never counted.
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if isAccessError(err) {
				st.collector.AddAccessError()
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}

		size := info.Size()
		cat := st.classify(filepath.Ext(name))
		file := tree.NewFile(name, path, size, cat, node)
		file.Created, file.Modified, file.Accessed = fileTimes(info)
		node.Children = append(node.Children, file)

		node.AddSize(size)
		st.collector.AddFile(cat, size)
		if size >= st.minLarge {
			st.topFiles.Offer(path, size)
		}
		st.rep.maybePublish()
	}

	// pending must be set before any child can complete.
	w.children = subdirs
	w.pending.Store(int32(len(subdirs)))

	switch {
	case len(subdirs) == 0:
		st.complete(w)
	case len(subdirs) > st.threshold:
		for _, c := range subdirs {
			st.list.push(c)
		}
	default:
		// Sequential: keep depth-first order on the local stack.
		for i := len(subdirs) - 1; i >= 0; i-- {
			*local = append(*local, subdirs[i])
		}
	}
	return nil
}

// complete marks w's subtree as done: its total is folded into the parent,
// and completion propagates upward for every ancestor whose last pending
// child this was.
func (st *scanState) complete(w *dirWork) {
	for {
		p := w.parent
		if p == nil {
			return
		}
		p.node.AddSize(w.node.Size())
		w.folded = true
		if p.pending.Add(-1) != 0 {
			return
		}
		w = p
	}
}

// checkpoint is the cooperative pause/cancel point. Cancellation wins over
// pause: a worker blocked on the gate wakes as soon as the context ends.
func (st *scanState) checkpoint(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return st.gate.wait(ctx)
}
