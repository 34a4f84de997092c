package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "Scanning", StateScanning.String())
	assert.Equal(t, "Paused", StatePaused.String())
	assert.Equal(t, "Completed", StateCompleted.String())
	assert.Equal(t, "Cancelled", StateCancelled.String())
	assert.Equal(t, "Error", StateError.String())
	assert.Equal(t, "Unknown", State(0).String())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, StateScanning.Terminal())
	assert.False(t, StatePaused.Terminal())
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateCancelled.Terminal())
	assert.True(t, StateError.Terminal())
}
