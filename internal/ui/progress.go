package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/diskview/diskview/internal/scan"
	"github.com/diskview/diskview/internal/stats"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

// Printer is a scan progress sink that maintains a single refreshing status
// line on a terminal. On non-terminals it stays silent; the final summary
// carries the numbers.
type Printer struct {
	w     io.Writer
	isTTY bool
	width int

	mu    sync.Mutex
	frame int
	dirty bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, isTTY bool, width int) *Printer {
	if width <= 0 {
		width = fallbackWidth
	}
	return &Printer{w: w, isTTY: isTTY, width: width}
}

// Publish implements scan.Sink. Safe for concurrent delivery from scan
// workers.
func (p *Printer) Publish(pr scan.Progress) {
	if !p.isTTY {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	glyph := spinnerFrames[p.frame%len(spinnerFrames)]
	p.frame++
	if pr.State == scan.StatePaused {
		glyph = "⏸"
	}

	line := fmt.Sprintf("%s %5.1f%%  %s files  %s  %s",
		glyph,
		pr.Percent,
		FormatCount(pr.Files),
		stats.FormatBytes(pr.Bytes),
		pr.CurrentDir,
	)
	line = TruncatePath(line, p.width-1)
	fmt.Fprintf(p.w, "\r\x1b[2K%s", line)
	p.dirty = true
}

// Finish clears the status line so the summary starts on a clean row.
func (p *Printer) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dirty {
		fmt.Fprint(p.w, "\r\x1b[2K")
		p.dirty = false
	}
}
