package scan

import (
	"container/heap"
	"sort"
	"sync"
)

// Entry is one record in a largest-files or largest-folders list.
type Entry struct {
	Path string
	Size int64
}

// topK keeps the K largest entries seen so far using a size-K min-heap, so
// memory stays bounded no matter how many files a scan visits. Safe for
// concurrent Offer calls.
type topK struct {
	mu    sync.Mutex
	limit int
	items entryHeap
}

func newTopK(limit int) *topK {
	return &topK{limit: limit}
}

// Offer records the entry if it ranks among the K largest. Ranking is a
// total order on (size, path), so the kept set is a pure function of the
// offered entries and never depends on arrival order.
func (t *topK) Offer(path string, size int64) {
	if t.limit <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.items) < t.limit {
		heap.Push(&t.items, Entry{Path: path, Size: size})
		return
	}
	root := t.items[0]
	if size < root.Size || (size == root.Size && path >= root.Path) {
		return
	}
	t.items[0] = Entry{Path: path, Size: size}
	heap.Fix(&t.items, 0)
}

// Sorted returns the collected entries largest-first, ties broken by path so
// the ordering is deterministic across scans.
func (t *topK) Sorted() []Entry {
	t.mu.Lock()
	out := make([]Entry, len(t.items))
	copy(out, t.items)
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}
		return out[i].Path < out[j].Path
	})
	return out
}

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

// Less orders the heap so the root is the lowest-ranked entry: smallest
// size, ties broken toward the lexicographically larger path.
func (h entryHeap) Less(i, j int) bool {
	if h[i].Size != h[j].Size {
		return h[i].Size < h[j].Size
	}
	return h[i].Path > h[j].Path
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)   { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
