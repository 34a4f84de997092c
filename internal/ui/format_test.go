package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in), "input %d", tt.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "42.0%", FormatPercent(42))
	assert.Equal(t, "0.5%", FormatPercent(0.5))
	assert.Equal(t, "100.0%", FormatPercent(100))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "/short", TruncatePath("/short", 80))
	assert.Equal(t, "/ab", TruncatePath("/abcdef", 3))

	got := TruncatePath("/very/long/path/to/some/deep/file.txt", 20)
	assert.Len(t, got, 20)
	assert.Contains(t, got, "...")
	assert.Equal(t, "/very/lo", got[:8])
	assert.Equal(t, "/file.txt", got[len(got)-9:])
}
