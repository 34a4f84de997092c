package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskview/diskview/internal/classify"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.AddFile(classify.Video, 1000)
	c.AddFile(classify.Video, 500)
	c.AddFile(classify.Document, 200)
	c.AddFolder()
	c.AddFolder()
	c.AddAccessError()

	snap := c.Snapshot()
	assert.Equal(t, int64(3), snap.Files)
	assert.Equal(t, int64(2), snap.Folders)
	assert.Equal(t, int64(1700), snap.Bytes)
	assert.Equal(t, int64(1), snap.AccessErrors)
	assert.Equal(t, "files=3 folders=2 bytes=1700 errors=1", snap.String())
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const (
		goroutines = 16
		perG       = 1000
	)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				c.AddFile(classify.Code, 10)
				c.AddFolder()
				c.AddAccessError()
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, int64(goroutines*perG), snap.Files)
	assert.Equal(t, int64(goroutines*perG), snap.Folders)
	assert.Equal(t, int64(goroutines*perG*10), snap.Bytes)
	assert.Equal(t, int64(goroutines*perG), snap.AccessErrors)
}

func TestCategories(t *testing.T) {
	c := NewCollector()
	c.AddFile(classify.Video, 750)
	c.AddFile(classify.Document, 250)

	cats := c.Categories()
	require.Len(t, cats, 2)

	byCat := map[classify.Category]CategoryTotal{}
	for _, ct := range cats {
		byCat[ct.Category] = ct
	}
	assert.InDelta(t, 75, byCat[classify.Video].Percent, 1e-9)
	assert.InDelta(t, 25, byCat[classify.Document].Percent, 1e-9)
	assert.Equal(t, int64(750), byCat[classify.Video].Bytes)
	assert.Equal(t, int64(1), byCat[classify.Video].Files)
}

func TestCategoriesEmpty(t *testing.T) {
	c := NewCollector()
	assert.Empty(t, c.Categories())
}

func TestCategoriesPercentSum(t *testing.T) {
	c := NewCollector()
	c.AddFile(classify.Video, 100)
	c.AddFile(classify.Audio, 33)
	c.AddFile(classify.Image, 67)
	c.AddFile(classify.Other, 1)

	var sum float64
	for _, ct := range c.Categories() {
		sum += ct.Percent
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "input %d", tt.in)
	}
}
