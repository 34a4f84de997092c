package treemap

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/diskview/diskview/internal/classify"
	"github.com/diskview/diskview/internal/tree"
)

// ColorMode selects which property of a node drives its tile color.
type ColorMode int

const (
	ModeDepth ColorMode = iota
	ModeCategory
	ModeAge
	ModeFileType
)

var modeNames = [...]string{
	ModeDepth:    "depth",
	ModeCategory: "category",
	ModeAge:      "age",
	ModeFileType: "filetype",
}

func (m ColorMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode parses a color mode name as used on the command line.
func ParseMode(s string) (ColorMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return ColorMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color mode %q (depth, category, age, filetype)", s)
}

// Color is an RGB color value.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// dirColor is the neutral fill for directories in the modes that color by
// file properties.
var dirColor = Color{0x4a, 0x4a, 0x55}

var depthPalette = [...]Color{
	{0x1f, 0x77, 0xb4},
	{0xff, 0x7f, 0x0e},
	{0x2c, 0xa0, 0x2c},
	{0xd6, 0x27, 0x28},
	{0x94, 0x67, 0xbd},
	{0x8c, 0x56, 0x4b},
	{0xe3, 0x77, 0xc2},
	{0x7f, 0x7f, 0x7f},
}

var categoryPalette = [classify.Count]Color{
	classify.Other:      {0x7f, 0x7f, 0x7f},
	classify.Archive:    {0x8c, 0x56, 0x4b},
	classify.Audio:      {0x94, 0x67, 0xbd},
	classify.Code:       {0x2c, 0xa0, 0x2c},
	classify.Document:   {0x1f, 0x77, 0xb4},
	classify.Executable: {0xd6, 0x27, 0x28},
	classify.Image:      {0xe3, 0x77, 0xc2},
	classify.System:     {0xbc, 0xbd, 0x22},
	classify.Video:      {0xff, 0x7f, 0x0e},
}

// ageBuckets are last-access recency cutoffs, most recent first.
var ageBuckets = [...]struct {
	label  string
	within time.Duration
	color  Color
}{
	{"this week", 7 * 24 * time.Hour, Color{0x2c, 0xa0, 0x2c}},
	{"this month", 30 * 24 * time.Hour, Color{0x98, 0xdf, 0x8a}},
	{"this half year", 182 * 24 * time.Hour, Color{0xff, 0xdd, 0x71}},
	{"this year", 365 * 24 * time.Hour, Color{0xff, 0x7f, 0x0e}},
	{"older", 0, Color{0xd6, 0x27, 0x28}},
}

// typePalette is the table sliced into by the extension hash for the
// file-type mode.
var typePalette = [...]Color{
	{0x4e, 0x79, 0xa7},
	{0xf2, 0x8e, 0x2b},
	{0xe1, 0x57, 0x59},
	{0x76, 0xb7, 0xb2},
	{0x59, 0xa1, 0x4f},
	{0xed, 0xc9, 0x48},
	{0xb0, 0x7a, 0xa1},
	{0xff, 0x9d, 0xa7},
	{0x9c, 0x75, 0x5f},
	{0xba, 0xb0, 0xac},
	{0x86, 0xbc, 0xb6},
	{0xd3, 0x72, 0x95},
}

// ColorFor returns the color for a node at the given depth under the given
// mode. Pure: the same inputs always yield the same color, and the choice
// never influences geometry. now anchors the age mode (0 = current time).
func ColorFor(n *tree.Node, depth int, mode ColorMode, now int64) Color {
	switch mode {
	case ModeCategory:
		if n.IsDir {
			return dirColor
		}
		return categoryPalette[n.Category]
	case ModeAge:
		if n.IsDir {
			return dirColor
		}
		return ageColor(n.Accessed, nowTime(now))
	case ModeFileType:
		if n.IsDir {
			return dirColor
		}
		return typeColor(filepath.Ext(n.Path))
	default:
		return depthPalette[depth%len(depthPalette)]
	}
}

func nowTime(now int64) time.Time {
	if now == 0 {
		return time.Now()
	}
	return time.Unix(now, 0)
}

func ageColor(accessed, now time.Time) Color {
	age := now.Sub(accessed)
	for _, b := range ageBuckets[:len(ageBuckets)-1] {
		if age <= b.within {
			return b.color
		}
	}
	return ageBuckets[len(ageBuckets)-1].color
}

// typeColor hashes the lowercased extension into the type palette, so every
// extension maps to a stable color without a hand-kept table.
func typeColor(ext string) Color {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		return typePalette[0]
	}
	idx := xxhash.Sum64String(ext) % uint64(len(typePalette))
	return typePalette[idx]
}

// LegendEntry is one swatch in a color mode's legend.
type LegendEntry struct {
	Label string
	Color Color
}

// Legend returns the legend entries for a color mode. The depth and
// file-type modes enumerate their palettes; category and age modes name
// their buckets.
func Legend(mode ColorMode) []LegendEntry {
	switch mode {
	case ModeCategory:
		out := make([]LegendEntry, 0, classify.Count)
		for i := 0; i < classify.Count; i++ {
			out = append(out, LegendEntry{
				Label: classify.Category(i).String(),
				Color: categoryPalette[i],
			})
		}
		return out
	case ModeAge:
		out := make([]LegendEntry, 0, len(ageBuckets))
		for _, b := range ageBuckets {
			out = append(out, LegendEntry{Label: b.label, Color: b.color})
		}
		return out
	case ModeFileType:
		out := make([]LegendEntry, 0, len(typePalette))
		for i, c := range typePalette {
			out = append(out, LegendEntry{Label: fmt.Sprintf("group %d", i+1), Color: c})
		}
		return out
	default:
		out := make([]LegendEntry, 0, len(depthPalette))
		for i, c := range depthPalette {
			out = append(out, LegendEntry{Label: fmt.Sprintf("depth %d", i), Color: c})
		}
		return out
	}
}
