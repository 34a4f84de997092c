package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diskview/diskview/internal/scan"
	"github.com/diskview/diskview/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Summary renders the scan totals block.
func Summary(res *scan.Result) string {
	var b strings.Builder

	status := "completed"
	if res.Cancelled {
		status = warnStyle.Render("cancelled (partial result)")
	}
	fmt.Fprintf(&b, "%s  %s\n", headerStyle.Render(res.Root.Path), status)
	fmt.Fprintf(&b, "  total   %s\n", stats.FormatBytes(res.Root.Size()))
	fmt.Fprintf(&b, "  files   %s\n", FormatCount(res.Stats.Files))
	fmt.Fprintf(&b, "  folders %s\n", FormatCount(res.Stats.Folders))
	if res.Stats.AccessErrors > 0 {
		fmt.Fprintf(&b, "  skipped %s entries (access denied or vanished)\n",
			FormatCount(res.Stats.AccessErrors))
	}
	fmt.Fprintf(&b, "  elapsed %s\n", res.Stats.Elapsed.Round(1e7))
	return b.String()
}

// CategoryTable renders the per-category breakdown, largest share first.
func CategoryTable(totals []stats.CategoryTotal) string {
	if len(totals) == 0 {
		return ""
	}
	ordered := make([]stats.CategoryTotal, len(totals))
	copy(ordered, totals)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Bytes > ordered[j].Bytes })

	var b strings.Builder
	b.WriteString(headerStyle.Render("by category"))
	b.WriteByte('\n')
	for _, ct := range ordered {
		fmt.Fprintf(&b, "  %-11s %10s  %6s  %s\n",
			ct.Category,
			stats.FormatBytes(ct.Bytes),
			FormatPercent(ct.Percent),
			dimStyle.Render(FormatCount(ct.Files)+" files"),
		)
	}
	return b.String()
}

// TopList renders a largest-entries list with paths elided to fit width.
func TopList(title string, entries []scan.Entry, limit, width int) string {
	if len(entries) == 0 {
		return ""
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteByte('\n')
	for _, e := range entries {
		fmt.Fprintf(&b, "  %10s  %s\n",
			stats.FormatBytes(e.Size),
			TruncatePath(e.Path, width-14),
		)
	}
	return b.String()
}
