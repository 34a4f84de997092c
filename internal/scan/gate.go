package scan

import (
	"context"
	"sync"
)

// gate is a cooperative pause point shared by all scan workers. While open,
// wait returns immediately. Pausing installs a fresh channel that workers
// block on; resuming closes it, releasing every waiter at once. A worker
// blocked on a paused gate still wakes on context cancellation, so cancel
// always takes precedence over pause.
type gate struct {
	mu     sync.Mutex
	ch     chan struct{}
	paused bool
}

func newGate() *gate {
	g := &gate{ch: make(chan struct{})}
	close(g.ch) // open
	return g
}

// pause closes the gate. Safe to call repeatedly.
func (g *gate) pause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused {
		return false
	}
	g.ch = make(chan struct{})
	g.paused = true
	return true
}

// resume opens the gate and releases all blocked waiters.
func (g *gate) resume() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused {
		return false
	}
	close(g.ch)
	g.paused = false
	return true
}

// wait blocks while the gate is paused. It returns ctx.Err() if the context
// is cancelled first, whether or not the gate ever reopens.
func (g *gate) wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()

	select {
	case <-ch:
		return nil
	default:
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
