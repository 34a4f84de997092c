package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSet(t *testing.T) {
	s := NewNameSet("proc", "sys")
	s.Add("node_modules")
	s.Add("")
	s.Add("proc")

	assert.True(t, s.Has("proc"))
	assert.True(t, s.Has("node_modules"))
	assert.False(t, s.Has(""))
	assert.False(t, s.Has("home"))
	assert.Equal(t, []string{"node_modules", "proc", "sys"}, s.Slice())
}
