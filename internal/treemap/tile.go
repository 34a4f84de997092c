// Package treemap turns a weighted file tree into squarified treemap
// geometry: a parallel tile tree carrying pixel-space rectangles. Layout is
// a pure function of the input tree, the viewport, and the color mode; it
// performs no I/O and never mutates the source tree.
package treemap

import "github.com/diskview/diskview/internal/tree"

// Rect is an axis-aligned rectangle in layout space.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.H }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Tile is one node's rendered rectangle. Size is the source node's byte
// size, copied verbatim; pixel area is a layout-internal working value that
// only ever materializes as Rect.
type Tile struct {
	Name string
	Path string

	// Size is the semantic byte size. It never participates in area
	// arithmetic.
	Size int64

	Rect  Rect
	Depth int
	Color Color

	Children []*Tile

	// Node is a read-only back-reference to the source tree node.
	Node *tree.Node
}

// TileAt returns the deepest tile whose rectangle contains (x, y), so a
// point always resolves to the most specific visible tile. Returns nil if
// the point lies outside t.
func (t *Tile) TileAt(x, y float64) *Tile {
	if t == nil || !t.Rect.Contains(x, y) {
		return nil
	}
	cur := t
descend:
	for {
		for _, c := range cur.Children {
			if c.Rect.Contains(x, y) {
				cur = c
				continue descend
			}
		}
		return cur
	}
}

// Walk visits t and every descendant tile depth-first.
func (t *Tile) Walk(fn func(*Tile)) {
	if t == nil {
		return
	}
	stack := []*Tile{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}
