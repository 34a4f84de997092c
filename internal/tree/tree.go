// Package tree defines the weighted file tree shared by the scan and layout
// engines. Nodes are created and mutated by the scan engine during a single
// scan invocation and are immutable once the scan result is returned.
package tree

import (
	"sync/atomic"
	"time"

	"github.com/diskview/diskview/internal/classify"
)

// Node is one file or directory in a scanned tree.
//
// Size is accumulated through atomic adds while scan workers are running and
// must be read through Size(). Children is written only by the single worker
// that enumerates the parent directory; PercentOfParent is written in the
// scan engine's single-threaded finalization pass.
type Node struct {
	Name  string
	Path  string
	IsDir bool

	Created  time.Time
	Modified time.Time
	Accessed time.Time

	// Category is meaningful for files only.
	Category classify.Category

	// Parent is a non-owning back-reference, used for percentage
	// computation and navigation. Traversal never follows it.
	Parent   *Node
	Children []*Node

	// PercentOfParent is the share of the parent's size, in [0,100].
	PercentOfParent float64

	size atomic.Int64
}

// NewDir creates a directory node attached to parent (nil for the root).
func NewDir(name, path string, parent *Node) *Node {
	return &Node{Name: name, Path: path, IsDir: true, Parent: parent}
}

// NewFile creates a file node attached to parent.
func NewFile(name, path string, size int64, cat classify.Category, parent *Node) *Node {
	n := &Node{Name: name, Path: path, Category: cat, Parent: parent}
	n.size.Store(size)
	return n
}

// Size returns the node's byte size. For directories this is the running sum
// of descendant sizes; it is only final once the scan has completed.
func (n *Node) Size() int64 { return n.size.Load() }

// AddSize atomically adds delta to the node's size. Deltas are never
// negative; directory sizes only grow during a scan.
func (n *Node) AddSize(delta int64) { n.size.Add(delta) }

// Depth returns the number of ancestors above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Walk visits n and every descendant depth-first, using an explicit stack so
// arbitrarily deep trees cannot overflow the call stack. Returning false from
// fn prunes the subtree below the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		// Push in reverse so children are visited in insertion order.
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// FinalizePercentages fills PercentOfParent for every node below root.
// Must only be called after all scan workers have joined.
func FinalizePercentages(root *Node) {
	Walk(root, func(n *Node) bool {
		if !n.IsDir {
			return true
		}
		total := n.Size()
		for _, c := range n.Children {
			if total > 0 {
				c.PercentOfParent = float64(c.Size()) / float64(total) * 100
			} else {
				c.PercentOfParent = 0
			}
		}
		return true
	})
}
