package runutil

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveThreads(t *testing.T) {
	assert.Equal(t, 3, EffectiveThreads(3))
	assert.Equal(t, 1, EffectiveThreads(1))
	assert.Equal(t, runtime.NumCPU(), EffectiveThreads(0))
	assert.Equal(t, runtime.NumCPU(), EffectiveThreads(-1))
}

func TestSizeWarnings(t *testing.T) {
	assert.Empty(t, SizeWarnings(5000, 11, 1))
	assert.Len(t, SizeWarnings(11, 11, 1), 1)
	assert.Len(t, SizeWarnings(5000, 40, 1), 1)
	assert.Len(t, SizeWarnings(5000, 11, 4*runtime.NumCPU()+1), 1)
}
