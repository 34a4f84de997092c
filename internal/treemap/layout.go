package treemap

import (
	"sort"

	"github.com/diskview/diskview/internal/tree"
)

const (
	defaultMaxDepth     = 4
	defaultHeaderHeight = 14
	defaultPadding      = 2
	defaultMinTileSide  = 20
)

// Options configures a layout pass.
type Options struct {
	// Width and Height are the viewport dimensions in layout units.
	Width, Height float64

	// MaxDepth bounds nesting below the layout root.
	MaxDepth int

	// Mode selects the color table. Geometry is mode-independent.
	Mode ColorMode

	// HeaderHeight and Padding are reserved inside a nested folder tile
	// before its children are laid out: room for a label plus a border.
	// Zero selects the defaults; negative values disable the reservation
	// for coarse-grained viewports such as character grids.
	HeaderHeight float64
	Padding      float64

	// MinTileSide is the smallest rectangle side worth nesting into.
	MinTileSide float64

	// Now anchors the age color mode; zero means the current time.
	Now int64
}

func (o *Options) applyDefaults() {
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	switch {
	case o.HeaderHeight == 0:
		o.HeaderHeight = defaultHeaderHeight
	case o.HeaderHeight < 0:
		o.HeaderHeight = 0
	}
	switch {
	case o.Padding == 0:
		o.Padding = defaultPadding
	case o.Padding < 0:
		o.Padding = 0
	}
	if o.MinTileSide <= 0 {
		o.MinTileSide = defaultMinTileSide
	}
}

// Build lays out node and its descendants into a viewport, returning the
// root tile. Deterministic for a given tree, options, and color mode; the
// input tree is read-only. Any node of a scanned tree may serve as the
// layout root, including one from an earlier scan.
func Build(node *tree.Node, opts Options) *Tile {
	if node == nil || opts.Width <= 0 || opts.Height <= 0 {
		return nil
	}
	opts.applyDefaults()

	root := &Tile{
		Name:  node.Name,
		Path:  node.Path,
		Size:  node.Size(),
		Rect:  Rect{W: opts.Width, H: opts.Height},
		Color: ColorFor(node, 0, opts.Mode, opts.Now),
		Node:  node,
	}

	// Explicit work list: nesting depth never grows the call stack.
	stack := []*Tile{root}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		inner := t.Rect
		if t.Depth > 0 {
			inner = shrink(inner, opts.HeaderHeight, opts.Padding)
		}
		if inner.W <= 0 || inner.H <= 0 {
			continue
		}

		children := layoutChildren(t, inner, opts)
		t.Children = children

		for _, c := range children {
			if !c.Node.IsDir || c.Depth >= opts.MaxDepth {
				continue
			}
			if c.Rect.W < opts.MinTileSide || c.Rect.H < opts.MinTileSide {
				continue
			}
			stack = append(stack, c)
		}
	}
	return root
}

// shrink reserves the label header plus padding inside a folder rectangle.
func shrink(r Rect, header, pad float64) Rect {
	return Rect{
		X: r.X + pad,
		Y: r.Y + header + pad,
		W: r.W - 2*pad,
		H: r.H - header - 2*pad,
	}
}

// layoutItem pairs a child node with its working pixel area. The area is
// local to the layout pass and discarded once the rectangle is fixed.
type layoutItem struct {
	node *tree.Node
	area float64
	rect Rect
}

// layoutChildren squarifies the non-empty children of t's node into inner.
func layoutChildren(t *Tile, inner Rect, opts Options) []*Tile {
	var total int64
	var items []layoutItem
	for _, c := range t.Node.Children {
		if size := c.Size(); size > 0 {
			items = append(items, layoutItem{node: c})
			total += size
		}
	}
	if len(items) == 0 || total <= 0 {
		return nil
	}

	// Largest first; ties broken by name so layout is deterministic
	// regardless of discovery order.
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := items[i].node.Size(), items[j].node.Size()
		if si != sj {
			return si > sj
		}
		return items[i].node.Name < items[j].node.Name
	})

	scale := inner.Area() / float64(total)
	for i := range items {
		items[i].area = float64(items[i].node.Size()) * scale
	}

	squarify(items, inner)

	tiles := make([]*Tile, len(items))
	for i := range items {
		n := items[i].node
		tiles[i] = &Tile{
			Name:  n.Name,
			Path:  n.Path,
			Size:  n.Size(),
			Rect:  items[i].rect,
			Depth: t.Depth + 1,
			Color: ColorFor(n, t.Depth+1, opts.Mode, opts.Now),
			Node:  n,
		}
	}
	return tiles
}

// squarify assigns rectangles to items (sorted descending by area) inside
// bounds, building rows greedily and closing each row as soon as admitting
// the next item would worsen the row's worst aspect ratio.
func squarify(items []layoutItem, bounds Rect) {
	remaining := bounds
	i := 0
	for i < len(items) {
		short := shortestSide(remaining)

		// Open a row with the next item.
		start := i
		rowArea := items[i].area
		maxArea, minArea := items[i].area, items[i].area
		worst := worstRatio(short, rowArea, maxArea, minArea)
		i++

		// Grow the row while the worst ratio does not increase.
		for i < len(items) {
			a := items[i].area
			cand := worstRatio(short, rowArea+a, maxArea, a)
			if cand > worst {
				break
			}
			rowArea += a
			minArea = a
			worst = cand
			i++
		}

		remaining = layoutRow(items[start:i], rowArea, remaining)
	}
}

// worstRatio is the squarified-treemap row metric: the worst aspect ratio
// any rectangle in the row would get if the row were laid out along a side
// of length short.
func worstRatio(short, sum, maxArea, minArea float64) float64 {
	if sum <= 0 || short <= 0 {
		return 0
	}
	s2 := short * short
	a := s2 * maxArea / (sum * sum)
	b := sum * sum / (s2 * minArea)
	if a > b {
		return a
	}
	return b
}

func shortestSide(r Rect) float64 {
	if r.W < r.H {
		return r.W
	}
	return r.H
}

// layoutRow fixes the rectangles of one closed row as a strip along the
// longer side of the remaining bounds and returns the bounds that are left.
func layoutRow(row []layoutItem, rowArea float64, remaining Rect) Rect {
	if rowArea <= 0 {
		return remaining
	}
	if remaining.W >= remaining.H {
		// Vertical strip on the left edge.
		thickness := rowArea / remaining.H
		y := remaining.Y
		for i := range row {
			h := row[i].area / thickness
			row[i].rect = Rect{X: remaining.X, Y: y, W: thickness, H: h}
			y += h
		}
		remaining.X += thickness
		remaining.W -= thickness
		return remaining
	}
	// Horizontal strip along the top edge.
	thickness := rowArea / remaining.W
	x := remaining.X
	for i := range row {
		w := row[i].area / thickness
		row[i].rect = Rect{X: x, Y: remaining.Y, W: w, H: thickness}
		x += w
	}
	remaining.Y += thickness
	remaining.H -= thickness
	return remaining
}
