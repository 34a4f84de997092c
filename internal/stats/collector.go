// Package stats provides lock-free counters for a single scan invocation.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/diskview/diskview/internal/classify"
)

// Collector tracks scan statistics using lock-free atomic counters. One
// Collector is created per scan invocation and discarded with the result;
// no counter state outlives a scan.
type Collector struct {
	files        atomic.Int64
	folders      atomic.Int64
	bytes        atomic.Int64
	accessErrors atomic.Int64

	catBytes [classify.Count]atomic.Int64
	catFiles [classify.Count]atomic.Int64

	startTime time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// AddFile records one scanned file of the given category and size.
func (c *Collector) AddFile(cat classify.Category, size int64) {
	c.files.Add(1)
	c.bytes.Add(size)
	c.catBytes[cat].Add(size)
	c.catFiles[cat].Add(1)
}

// AddFolder records one entered directory.
func (c *Collector) AddFolder() { c.folders.Add(1) }

// AddAccessError records one recovered access error.
func (c *Collector) AddAccessError() { c.accessErrors.Add(1) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	Files        int64
	Folders      int64
	Bytes        int64
	AccessErrors int64
	Elapsed      time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Files:        c.files.Load(),
		Folders:      c.folders.Load(),
		Bytes:        c.bytes.Load(),
		AccessErrors: c.accessErrors.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Bytes returns the running total of scanned bytes.
func (c *Collector) Bytes() int64 { return c.bytes.Load() }

// Files returns the running total of scanned files.
func (c *Collector) Files() int64 { return c.files.Load() }

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// CategoryTotal is the finalized aggregate for one category.
type CategoryTotal struct {
	Category classify.Category
	Bytes    int64
	Files    int64
	Percent  float64 // share of the grand byte total, in [0,100]
}

// Categories returns per-category totals with percentages of the grand
// total. Call once, after all writers have joined; empty categories are
// omitted.
func (c *Collector) Categories() []CategoryTotal {
	grand := c.bytes.Load()
	var out []CategoryTotal
	for i := 0; i < classify.Count; i++ {
		files := c.catFiles[i].Load()
		if files == 0 {
			continue
		}
		ct := CategoryTotal{
			Category: classify.Category(i),
			Bytes:    c.catBytes[i].Load(),
			Files:    files,
		}
		if grand > 0 {
			ct.Percent = float64(ct.Bytes) / float64(grand) * 100
		}
		out = append(out, ct)
	}
	return out
}

func (s Snapshot) String() string {
	return fmt.Sprintf("files=%d folders=%d bytes=%d errors=%d",
		s.Files, s.Folders, s.Bytes, s.AccessErrors)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
