package scan

import "sync"

// workList is the explicit shared work list that drives traversal: an
// unbounded LIFO of directories awaiting a worker, plus an in-flight count
// so idle workers know when the whole tree has been handed out and finished.
// Using a growable list instead of a fixed channel means workers can enqueue
// fan-out work without ever blocking on a full buffer.
type workList struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []*dirWork
	inFlight int // pushed but not yet fully processed
	closed   bool
}

func newWorkList() *workList {
	wl := &workList{}
	wl.cond = sync.NewCond(&wl.mu)
	return wl
}

// push hands a directory to the pool. The item counts as in-flight until the
// processing worker calls done for it.
func (wl *workList) push(w *dirWork) {
	wl.mu.Lock()
	wl.items = append(wl.items, w)
	wl.inFlight++
	wl.mu.Unlock()
	wl.cond.Signal()
}

// pop blocks until an item is available, all work has drained, or the list
// is closed. The second return is false when the worker should exit.
func (wl *workList) pop() (*dirWork, bool) {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	for {
		if wl.closed {
			return nil, false
		}
		if n := len(wl.items); n > 0 {
			w := wl.items[n-1]
			wl.items = wl.items[:n-1]
			return w, true
		}
		if wl.inFlight == 0 {
			return nil, false
		}
		wl.cond.Wait()
	}
}

// done marks one popped item (including any subtree the worker handled
// inline) as finished. The last done wakes all blocked workers so they can
// exit.
func (wl *workList) done() {
	wl.mu.Lock()
	wl.inFlight--
	drained := wl.inFlight == 0
	wl.mu.Unlock()
	if drained {
		wl.cond.Broadcast()
	}
}

// close aborts the list: blocked and future pops return false immediately.
// Used on cancellation to release workers parked in pop.
func (wl *workList) close() {
	wl.mu.Lock()
	wl.closed = true
	wl.mu.Unlock()
	wl.cond.Broadcast()
}
