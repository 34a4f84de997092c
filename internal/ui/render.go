package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diskview/diskview/internal/treemap"
)

// RenderMap rasterizes a laid-out tile tree into a colored character grid.
// Each cell is resolved through hit-testing at its center, so the picture
// reflects exactly the geometry a pointer would hit. Top-level tile names
// are overlaid where they fit.
func RenderMap(root *treemap.Tile) string {
	if root == nil {
		return ""
	}
	cols := int(root.Rect.W)
	rows := int(root.Rect.H)
	if cols <= 0 || rows <= 0 {
		return ""
	}

	labels := labelOverlay(root, cols, rows)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			tile := root.TileAt(float64(x)+0.5, float64(y)+0.5)
			if tile == nil {
				b.WriteByte(' ')
				continue
			}
			ch := " "
			if r, ok := labels[y*cols+x]; ok {
				ch = string(r)
			}
			style := lipgloss.NewStyle().
				Background(lipgloss.Color(tile.Color.Hex())).
				Foreground(lipgloss.Color("15"))
			b.WriteString(style.Render(ch))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// labelOverlay positions each depth-1 tile's name inside its rectangle,
// truncated to the tile width.
func labelOverlay(root *treemap.Tile, cols, rows int) map[int]rune {
	labels := make(map[int]rune)
	for _, t := range root.Children {
		x := int(t.Rect.X)
		y := int(t.Rect.Y)
		w := int(t.Rect.W)
		if y < 0 || y >= rows || w < 2 {
			continue
		}
		name := t.Name
		if len(name) > w-1 {
			name = name[:w-1]
		}
		for i, r := range name {
			cx := x + i
			if cx < 0 || cx >= cols {
				break
			}
			labels[y*cols+cx] = r
		}
	}
	return labels
}

// RenderLegend renders one swatch per legend entry on a single line.
func RenderLegend(entries []treemap.LegendEntry) string {
	var parts []string
	for _, e := range entries {
		swatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(e.Color.Hex())).
			Render("■")
		parts = append(parts, swatch+" "+e.Label)
	}
	return strings.Join(parts, "  ")
}
