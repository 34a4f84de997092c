package scan

import (
	"sync/atomic"

	"github.com/diskview/diskview/internal/stats"
)

// Progress is a throttled point-in-time view of a running scan.
type Progress struct {
	// ScanID identifies the scan invocation this snapshot belongs to.
	ScanID string

	State State

	Files        int64
	Folders      int64
	Bytes        int64
	AccessErrors int64

	// CurrentDir is the directory most recently entered by any worker.
	CurrentDir string

	// Percent estimates completion in [0,100]. It is derived from bytes
	// scanned over the volume's used space and stays capped below 100
	// until finalization.
	Percent float64
}

// Sink receives progress snapshots. Delivery happens on whichever scan
// worker crossed the throttle interval; sinks that touch a UI must marshal
// to their own context.
type Sink interface {
	Publish(Progress)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Progress)

// Publish calls f(p).
func (f SinkFunc) Publish(p Progress) { f(p) }

// reporter throttles snapshot delivery to a Sink. Counters live in the
// collector; the reporter only decides when to publish.
type reporter struct {
	scanID     string
	sink       Sink
	collector  *stats.Collector
	every      int64 // files between deliveries
	usedBytes  int64 // upfront estimate of used volume space, 0 if unknown
	state      *atomic.Int32
	currentDir atomic.Value // string
	lastFiles  atomic.Int64
}

func newReporter(scanID string, sink Sink, c *stats.Collector, every, usedBytes int64, state *atomic.Int32) *reporter {
	r := &reporter{
		scanID:    scanID,
		sink:      sink,
		collector: c,
		every:     every,
		usedBytes: usedBytes,
		state:     state,
	}
	r.currentDir.Store("")
	return r
}

func (r *reporter) setCurrentDir(path string) {
	r.currentDir.Store(path)
}

// maybePublish delivers a snapshot when the file counter has advanced by at
// least the throttle interval since the last delivery.
func (r *reporter) maybePublish() {
	if r.sink == nil {
		return
	}
	files := r.collector.Files()
	last := r.lastFiles.Load()
	if files-last < r.every {
		return
	}
	if !r.lastFiles.CompareAndSwap(last, files) {
		return // another worker is publishing this interval
	}
	r.sink.Publish(r.snapshot(false))
}

// publish delivers a snapshot unconditionally (state transitions, finish).
func (r *reporter) publish(final bool) {
	if r.sink == nil {
		return
	}
	r.sink.Publish(r.snapshot(final))
}

func (r *reporter) snapshot(final bool) Progress {
	s := r.collector.Snapshot()
	dir, _ := r.currentDir.Load().(string)
	return Progress{
		ScanID:       r.scanID,
		State:        State(r.state.Load()),
		Files:        s.Files,
		Folders:      s.Folders,
		Bytes:        s.Bytes,
		AccessErrors: s.AccessErrors,
		CurrentDir:   dir,
		Percent:      r.percent(s.Bytes, final),
	}
}

// percent estimates completion from bytes scanned over the used-space
// estimate, capped at 95 until post-processing completes.
func (r *reporter) percent(bytes int64, final bool) float64 {
	if final {
		return 100
	}
	if r.usedBytes <= 0 {
		return 0
	}
	pct := float64(bytes) / float64(r.usedBytes) * 100
	if pct > 95 {
		pct = 95
	}
	return pct
}
