package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtCyclesForward(t *testing.T) {
	p := New([]color.RGBA{{R: 1}, {R: 2}, {R: 3}})

	assert.Equal(t, uint8(1), p.At(3).R, "expected wraparound to first color")
}

func TestAtCyclesNegative(t *testing.T) {
	p := New([]color.RGBA{{R: 1}, {R: 2}, {R: 3}})

	assert.Equal(t, uint8(3), p.At(-1).R, "expected wraparound to last color for -1")
}

func TestDefaultPaletteNotEmpty(t *testing.T) {
	assert.NotZero(t, Default.Len(), "default palette must not be empty")
}
