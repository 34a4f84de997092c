// Package ui renders scan results and treemap geometry for the terminal.
package ui

import (
	"fmt"
	"strings"
)

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// TruncatePath shortens a path to fit width columns, eliding the middle so
// both the root and the leaf stay visible.
func TruncatePath(path string, width int) string {
	if width <= 0 || len(path) <= width {
		return path
	}
	if width <= 3 {
		return path[:width]
	}
	head := (width - 3) / 2
	tail := width - 3 - head
	return path[:head] + "..." + path[len(path)-tail:]
}
