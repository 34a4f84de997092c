package treemap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskview/diskview/internal/classify"
	"github.com/diskview/diskview/internal/tree"
)

// flatRoot builds a directory of files named a, b, c, ... with the given
// sizes.
func flatRoot(sizes ...int64) *tree.Node {
	root := tree.NewDir("root", "/r", nil)
	var total int64
	for i, s := range sizes {
		name := fmt.Sprintf("%c.dat", 'a'+i)
		f := tree.NewFile(name, "/r/"+name, s, classify.Other, root)
		root.Children = append(root.Children, f)
		total += s
	}
	root.AddSize(total)
	return root
}

func assertRect(t *testing.T, want Rect, got Rect, name string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "%s.X", name)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "%s.Y", name)
	assert.InDelta(t, want.W, got.W, 1e-9, "%s.W", name)
	assert.InDelta(t, want.H, got.H, 1e-9, "%s.H", name)
}

// The worked example from the squarified treemap paper: areas
// 6, 6, 4, 3, 2, 2, 1 in a 6x4 viewport.
func TestSquarifyWorkedExample(t *testing.T) {
	root := flatRoot(6, 6, 4, 3, 2, 2, 1)
	tile := Build(root, Options{Width: 6, Height: 4})
	require.NotNil(t, tile)
	require.Len(t, tile.Children, 7)

	want := []Rect{
		{X: 0, Y: 0, W: 3, H: 2},
		{X: 0, Y: 2, W: 3, H: 2},
		{X: 3, Y: 0, W: 12.0 / 7, H: 7.0 / 3},
		{X: 3 + 12.0/7, Y: 0, W: 9.0 / 7, H: 7.0 / 3},
		{X: 3, Y: 7.0 / 3, W: 1.2, H: 5.0 / 3},
		{X: 4.2, Y: 7.0 / 3, W: 1.2, H: 5.0 / 3},
		{X: 5.4, Y: 7.0 / 3, W: 0.6, H: 5.0 / 3},
	}
	for i, w := range want {
		assertRect(t, w, tile.Children[i].Rect, tile.Children[i].Name)
		assert.InDelta(t, float64(tile.Children[i].Size), tile.Children[i].Rect.Area(), 1e-9,
			"area must be proportional to size at scale 1")
	}
}

func TestBuildSortsLargestFirst(t *testing.T) {
	root := flatRoot(1, 5, 3)
	tile := Build(root, Options{Width: 10, Height: 10})
	require.Len(t, tile.Children, 3)
	assert.Equal(t, int64(5), tile.Children[0].Size)
	assert.Equal(t, int64(3), tile.Children[1].Size)
	assert.Equal(t, int64(1), tile.Children[2].Size)
}

func TestBuildTiesBrokenByName(t *testing.T) {
	root := tree.NewDir("root", "/r", nil)
	for _, name := range []string{"zz.dat", "aa.dat", "mm.dat"} {
		f := tree.NewFile(name, "/r/"+name, 10, classify.Other, root)
		root.Children = append(root.Children, f)
	}
	root.AddSize(30)

	tile := Build(root, Options{Width: 9, Height: 3})
	require.Len(t, tile.Children, 3)
	assert.Equal(t, "aa.dat", tile.Children[0].Name)
	assert.Equal(t, "mm.dat", tile.Children[1].Name)
	assert.Equal(t, "zz.dat", tile.Children[2].Name)
}

func nestedRoot() *tree.Node {
	root := tree.NewDir("root", "/r", nil)
	dirA := tree.NewDir("a", "/r/a", root)
	f1 := tree.NewFile("f1.dat", "/r/a/f1.dat", 30, classify.Other, dirA)
	f2 := tree.NewFile("f2.dat", "/r/a/f2.dat", 10, classify.Other, dirA)
	dirA.Children = []*tree.Node{f1, f2}
	dirA.AddSize(40)
	dirB := tree.NewDir("b", "/r/b", root)
	f3 := tree.NewFile("f3.dat", "/r/b/f3.dat", 40, classify.Other, dirB)
	dirB.Children = []*tree.Node{f3}
	dirB.AddSize(40)
	f4 := tree.NewFile("f4.dat", "/r/f4.dat", 20, classify.Other, root)
	root.Children = []*tree.Node{dirA, dirB, f4}
	root.AddSize(100)
	return root
}

func TestBuildAreaConservation(t *testing.T) {
	tile := Build(nestedRoot(), Options{
		Width: 100, Height: 80,
		MaxDepth: 5, MinTileSide: 1,
		HeaderHeight: -1, Padding: -1,
	})
	require.NotNil(t, tile)

	tile.Walk(func(tl *Tile) {
		if len(tl.Children) == 0 {
			return
		}
		var sum float64
		for _, c := range tl.Children {
			sum += c.Rect.Area()
		}
		assert.InDelta(t, tl.Rect.Area(), sum, 1e-6, "children of %s", tl.Path)
	})
}

func TestBuildNestedProportions(t *testing.T) {
	tile := Build(nestedRoot(), Options{
		Width: 100, Height: 80,
		MaxDepth: 5, MinTileSide: 1,
	})
	require.Len(t, tile.Children, 3)

	total := tile.Rect.Area()
	for _, c := range tile.Children {
		wantShare := float64(c.Size) / 100
		assert.InDelta(t, wantShare, c.Rect.Area()/total, 1e-9, "share of %s", c.Path)
	}
}

func TestBuildZeroSizeChildrenExcluded(t *testing.T) {
	root := tree.NewDir("root", "/r", nil)
	empty := tree.NewFile("empty.dat", "/r/empty.dat", 0, classify.Other, root)
	full := tree.NewFile("full.dat", "/r/full.dat", 10, classify.Other, root)
	root.Children = []*tree.Node{empty, full}
	root.AddSize(10)

	tile := Build(root, Options{Width: 10, Height: 10})
	require.Len(t, tile.Children, 1)
	assert.Equal(t, "full.dat", tile.Children[0].Name)
	assertRect(t, Rect{X: 0, Y: 0, W: 10, H: 10}, tile.Children[0].Rect, "full.dat")
}

func TestBuildEmptyDir(t *testing.T) {
	root := tree.NewDir("root", "/r", nil)
	tile := Build(root, Options{Width: 10, Height: 10})
	require.NotNil(t, tile)
	assert.Empty(t, tile.Children)
}

func TestBuildInvalidInput(t *testing.T) {
	assert.Nil(t, Build(nil, Options{Width: 10, Height: 10}))
	assert.Nil(t, Build(flatRoot(1), Options{Width: 0, Height: 10}))
	assert.Nil(t, Build(flatRoot(1), Options{Width: 10, Height: -1}))
}

func TestBuildSizeCopiedVerbatim(t *testing.T) {
	tile := Build(nestedRoot(), Options{
		Width: 3, Height: 2,
		MaxDepth: 5, MinTileSide: 0.001, Now: 1,
		HeaderHeight: -1, Padding: -1,
	})
	byPath := map[string]int64{}
	tile.Walk(func(tl *Tile) { byPath[tl.Path] = tl.Size })

	assert.Equal(t, int64(100), byPath["/r"])
	assert.Equal(t, int64(40), byPath["/r/a"])
	assert.Equal(t, int64(30), byPath["/r/a/f1.dat"])
	assert.Equal(t, int64(20), byPath["/r/f4.dat"])
}

func TestBuildGeometryIndependentOfMode(t *testing.T) {
	opts := Options{Width: 100, Height: 80, MaxDepth: 5, MinTileSide: 1, Now: 1700000000}
	var rects [4][]Rect
	for i, mode := range []ColorMode{ModeDepth, ModeCategory, ModeAge, ModeFileType} {
		opts.Mode = mode
		Build(nestedRoot(), opts).Walk(func(tl *Tile) {
			rects[i] = append(rects[i], tl.Rect)
		})
	}
	for i := 1; i < len(rects); i++ {
		assert.Equal(t, rects[0], rects[i], "mode index %d changed geometry", i)
	}
}

func TestBuildMaxDepth(t *testing.T) {
	root := nestedRoot()
	tile := Build(root, Options{Width: 100, Height: 80, MaxDepth: 1, MinTileSide: 1})

	tile.Walk(func(tl *Tile) {
		assert.LessOrEqual(t, tl.Depth, 1)
	})
}

func TestBuildHeaderAndPaddingReserved(t *testing.T) {
	tile := Build(nestedRoot(), Options{
		Width: 100, Height: 80,
		MaxDepth: 5, MinTileSide: 1,
		HeaderHeight: 10, Padding: 2,
	})

	var dirA *Tile
	tile.Walk(func(tl *Tile) {
		if tl.Path == "/r/a" {
			dirA = tl
		}
	})
	require.NotNil(t, dirA)
	require.NotEmpty(t, dirA.Children)

	for _, c := range dirA.Children {
		assert.GreaterOrEqual(t, c.Rect.X, dirA.Rect.X+2)
		assert.GreaterOrEqual(t, c.Rect.Y, dirA.Rect.Y+10+2)
		assert.LessOrEqual(t, c.Rect.X+c.Rect.W, dirA.Rect.X+dirA.Rect.W-2+1e-9)
		assert.LessOrEqual(t, c.Rect.Y+c.Rect.H, dirA.Rect.Y+dirA.Rect.H-2+1e-9)
	}
}

func TestBuildDefaultHeaderReserved(t *testing.T) {
	tile := Build(nestedRoot(), Options{Width: 400, Height: 300, MinTileSide: 1})

	var dirA *Tile
	tile.Walk(func(tl *Tile) {
		if tl.Path == "/r/a" {
			dirA = tl
		}
	})
	require.NotNil(t, dirA)
	require.NotEmpty(t, dirA.Children, "defaults must leave room to nest")

	for _, c := range dirA.Children {
		assert.GreaterOrEqual(t, c.Rect.X, dirA.Rect.X+defaultPadding)
		assert.GreaterOrEqual(t, c.Rect.Y, dirA.Rect.Y+defaultHeaderHeight+defaultPadding)
	}
}

func TestBuildNegativeDisablesReservation(t *testing.T) {
	tile := Build(nestedRoot(), Options{
		Width: 100, Height: 80,
		MinTileSide: 1, HeaderHeight: -1, Padding: -1,
	})

	var dirA *Tile
	tile.Walk(func(tl *Tile) {
		if tl.Path == "/r/a" {
			dirA = tl
		}
	})
	require.NotNil(t, dirA)
	require.NotEmpty(t, dirA.Children)

	var sum float64
	for _, c := range dirA.Children {
		sum += c.Rect.Area()
	}
	assert.InDelta(t, dirA.Rect.Area(), sum, 1e-6, "children must fill the whole folder tile")
}

func TestBuildDeepChainTerminates(t *testing.T) {
	root := tree.NewDir("0", "/0", nil)
	cur := root
	path := "/0"
	for i := 0; i < 500; i++ {
		path += "/d"
		child := tree.NewDir("d", path, cur)
		cur.Children = []*tree.Node{child}
		cur = child
	}
	leaf := tree.NewFile("f.dat", path+"/f.dat", 1, classify.Other, cur)
	cur.Children = []*tree.Node{leaf}
	for n := cur; n != nil; n = n.Parent {
		n.AddSize(1)
	}

	tile := Build(root, Options{
		Width: 1000, Height: 1000,
		MaxDepth: 1000, MinTileSide: 1e-9,
		HeaderHeight: -1, Padding: -1,
	})
	require.NotNil(t, tile)

	deepest := 0
	tile.Walk(func(tl *Tile) {
		if tl.Depth > deepest {
			deepest = tl.Depth
		}
	})
	assert.Equal(t, 501, deepest)
}

func TestBuildWideDir(t *testing.T) {
	sizes := make([]int64, 0, 1000)
	for i := 0; i < 1000; i++ {
		sizes = append(sizes, int64(i%7+1))
	}
	root := tree.NewDir("root", "/r", nil)
	var total int64
	for i, s := range sizes {
		name := fmt.Sprintf("f%04d.dat", i)
		root.Children = append(root.Children, tree.NewFile(name, "/r/"+name, s, classify.Other, root))
		total += s
	}
	root.AddSize(total)

	tile := Build(root, Options{Width: 1920, Height: 1080})
	require.Len(t, tile.Children, 1000)

	var sum float64
	for _, c := range tile.Children {
		sum += c.Rect.Area()
	}
	assert.InDelta(t, 1920*1080, sum, 1e-3)
}
