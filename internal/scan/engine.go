// Package scan implements the concurrent directory scanning engine. It walks
// a subtree with a bounded worker pool, builds the weighted tree, aggregates
// per-category statistics and largest-entry lists, and supports cooperative
// pause/resume and cancellation with partial-result recovery.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/diskview/diskview/internal/classify"
	"github.com/diskview/diskview/internal/stats"
	"github.com/diskview/diskview/internal/tree"
)

const (
	defaultWorkers      = 4
	defaultThreshold    = 4
	defaultTopEntries   = 50
	defaultProgressStep = 256
)

// DefaultSkipDirs are directory names never descended into: virtual
// filesystems and system locations that would distort (or block) a scan.
var DefaultSkipDirs = []string{
	"proc",
	"sys",
	"dev",
	"run",
	".snapshot",
	".Trash",
	".fseventsd",
	".Spotlight-V100",
	"System Volume Information",
	"$Recycle.Bin",
	"lost+found",
}

// Options configures an Engine.
type Options struct {
	// Workers is the width of the directory worker pool.
	Workers int

	// ParallelThreshold is the subdirectory count above which a directory's
	// children are fanned out to the pool instead of walked sequentially by
	// the owning worker.
	ParallelThreshold int

	// TopFiles and TopFolders bound the largest-entry lists.
	TopFiles   int
	TopFolders int

	// MinLargeFile excludes files below this size from the largest-files
	// list. Zero admits everything.
	MinLargeFile int64

	// SkipDirs overrides DefaultSkipDirs when non-nil.
	SkipDirs []string

	// ProgressEvery is the number of files between progress deliveries.
	ProgressEvery int

	// Sink receives throttled progress snapshots. May be nil.
	Sink Sink

	// Classify maps a file extension to a category. Defaults to
	// classify.Classify.
	Classify func(ext string) classify.Category
}

func (o *Options) applyDefaults() {
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = defaultThreshold
	}
	if o.TopFiles <= 0 {
		o.TopFiles = defaultTopEntries
	}
	if o.TopFolders <= 0 {
		o.TopFolders = defaultTopEntries
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = defaultProgressStep
	}
	if o.SkipDirs == nil {
		o.SkipDirs = DefaultSkipDirs
	}
	if o.Classify == nil {
		o.Classify = classify.Classify
	}
}

// Result is the outcome of a scan: the tree plus finalized aggregates.
// Cancelled scans still carry everything built before the cancellation.
type Result struct {
	ScanID string
	Root   *tree.Node
	Stats  stats.Snapshot

	Categories     []stats.CategoryTotal
	LargestFiles   []Entry
	LargestFolders []Entry

	// Cancelled distinguishes a partial result from a completed one.
	Cancelled bool
}

// Engine runs scans. At most one scan is active per instance; Pause, Resume,
// and Cancel act on the currently running scan.
type Engine struct {
	opts Options

	mu      sync.Mutex
	running bool
	gate    *gate
	cancel  context.CancelFunc
	rep     *reporter

	state atomic.Int32
}

// New creates an Engine with the given options.
func New(opts Options) *Engine {
	opts.applyDefaults()
	return &Engine{opts: opts}
}

// State returns the lifecycle state of the current (or most recent) scan.
func (e *Engine) State() State { return State(e.state.Load()) }

// Pause closes the pause gate; workers block at their next checkpoint until
// Resume. No-op unless a scan is running.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.running || !e.gate.pause() {
		e.mu.Unlock()
		return
	}
	e.state.Store(int32(StatePaused))
	rep := e.rep
	e.mu.Unlock()

	// Publish without holding the lock: sinks may call back into the
	// engine.
	rep.publish(false)
}

// Resume reopens the pause gate, releasing all blocked workers.
func (e *Engine) Resume() {
	e.mu.Lock()
	if !e.running || !e.gate.resume() {
		e.mu.Unlock()
		return
	}
	e.state.Store(int32(StateScanning))
	rep := e.rep
	e.mu.Unlock()

	rep.publish(false)
}

// Cancel requests cooperative cancellation of the running scan. Scan will
// return a partial result. Cancel also wakes workers blocked on a paused
// gate, so it composes with Pause.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running && e.cancel != nil {
		e.cancel()
	}
}

// Scan walks root and returns the finished result. A cancelled scan (via
// Cancel or ctx) returns a valid partial Result with Cancelled set and a nil
// error; only fatal failures return an error.
func (e *Engine) Scan(ctx context.Context, root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Lstat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	ctx, cancel := context.WithCancel(ctx)
	st := newScanState(e, uuid.NewString(), abs)

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		cancel()
		return nil, ErrScanActive
	}
	e.running = true
	e.gate = st.gate
	e.cancel = cancel
	e.rep = st.rep
	e.state.Store(int32(StateScanning))
	e.mu.Unlock()

	defer func() {
		cancel()
		e.mu.Lock()
		e.running = false
		e.gate = nil
		e.cancel = nil
		e.rep = nil
		e.mu.Unlock()
	}()

	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		name = abs
	}
	rootNode := tree.NewDir(name, abs, nil)
	rootNode.Created, rootNode.Modified, rootNode.Accessed = fileTimes(info)
	rootWork := &dirWork{node: rootNode}

	st.list.push(rootWork)

	g, gctx := errgroup.WithContext(ctx)
	go func() {
		// Release workers parked on the work list when the scan is
		// cancelled or a fatal error brings the group down.
		<-gctx.Done()
		st.list.close()
	}()
	for i := 0; i < e.opts.Workers; i++ {
		g.Go(func() error { return st.worker(gctx) })
	}
	if err := g.Wait(); err != nil {
		e.state.Store(int32(StateError))
		return nil, err
	}

	cancelled := ctx.Err() != nil
	return e.finalize(st, rootWork, cancelled), nil
}

// finalize runs single-threaded after all workers have joined: it reconciles
// partial subtree totals, computes percentages, sorts the top lists, and
// advances progress to 100%.
func (e *Engine) finalize(st *scanState, rootWork *dirWork, cancelled bool) *Result {
	if cancelled {
		reconcile(rootWork)
	}
	tree.FinalizePercentages(rootWork.node)

	folders := newTopK(e.opts.TopFolders)
	tree.Walk(rootWork.node, func(n *tree.Node) bool {
		if n.IsDir && n.Parent != nil {
			folders.Offer(n.Path, n.Size())
		}
		return true
	})

	if cancelled {
		e.state.Store(int32(StateCancelled))
	} else {
		e.state.Store(int32(StateCompleted))
	}
	st.rep.publish(true)

	return &Result{
		ScanID:         st.scanID,
		Root:           rootWork.node,
		Stats:          st.collector.Snapshot(),
		Categories:     st.collector.Categories(),
		LargestFiles:   st.topFiles.Sorted(),
		LargestFolders: folders.Sorted(),
		Cancelled:      cancelled,
	}
}

// reconcile folds the totals of subtrees that were still in flight at
// cancellation into their parents, restoring the size-conservation invariant
// for partial results. Post-order over the directory work tree, iteratively.
func reconcile(root *dirWork) {
	type frame struct {
		w       *dirWork
		visited bool
	}
	stack := []frame{{w: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f.visited {
			stack = append(stack, frame{w: f.w, visited: true})
			for _, c := range f.w.children {
				stack = append(stack, frame{w: c})
			}
			continue
		}
		if !f.w.folded && f.w.parent != nil {
			f.w.parent.node.AddSize(f.w.node.Size())
		}
	}
}

// scanState holds everything owned by one scan invocation. Constructed at
// scan start, discarded with the result; nothing here is shared across
// scans.
type scanState struct {
	scanID    string
	threshold int
	minLarge  int64
	skip      map[string]struct{}
	classify  func(string) classify.Category

	collector *stats.Collector
	topFiles  *topK
	gate      *gate
	rep       *reporter
	list      *workList
}

func newScanState(e *Engine, scanID, root string) *scanState {
	skip := make(map[string]struct{}, len(e.opts.SkipDirs))
	for _, name := range e.opts.SkipDirs {
		skip[name] = struct{}{}
	}
	collector := stats.NewCollector()
	return &scanState{
		scanID:    scanID,
		threshold: e.opts.ParallelThreshold,
		minLarge:  e.opts.MinLargeFile,
		skip:      skip,
		classify:  e.opts.Classify,
		collector: collector,
		topFiles:  newTopK(e.opts.TopFiles),
		gate:      newGate(),
		rep: newReporter(scanID, e.opts.Sink, collector,
			int64(e.opts.ProgressEvery), usedSpace(root), &e.state),
		list: newWorkList(),
	}
}
