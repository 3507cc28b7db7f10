package area

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nimbusvid/odecore/geometry"
)

func TestRectangleInclusion(t *testing.T) {
	r := NewRectangle("zone", geometry.NewRect(0, 0, 100, 100), true)

	assert.True(t, r.CheckForWithin(geometry.NewRect(10, 10, 5, 5)), "expected object inside zone to pass")
	assert.False(t, r.CheckForWithin(geometry.NewRect(200, 200, 5, 5)), "expected object outside zone to fail")
}

func TestRectangleExclusionSemantics(t *testing.T) {
	r := NewRectangle("no-go", geometry.NewRect(0, 0, 10, 10), false)

	assert.True(t, r.CheckForWithin(geometry.NewRect(1, 1, 1, 1)),
		"CheckForWithin reports raw containment regardless of inclusion flag")
	assert.False(t, r.Inclusion(), "expected exclusion area to report Inclusion() == false")
}

func TestLineCheckForCross(t *testing.T) {
	line := NewLine("gate", []geometry.Point{{X: 0, Y: 10}, {X: 100, Y: 10}})

	trace := []geometry.Point{{X: 50, Y: 0}, {X: 50, Y: 20}}
	assert.True(t, line.CheckForCross(trace), "expected trace crossing the line to be detected")

	noCross := []geometry.Point{{X: 50, Y: 0}, {X: 50, Y: 5}}
	assert.False(t, line.CheckForCross(noCross), "expected trace not reaching the line to not cross")
}

func TestLineCheckForCrossShortTraceNeverCrosses(t *testing.T) {
	line := NewLine("gate", []geometry.Point{{X: 0, Y: 10}, {X: 100, Y: 10}})

	assert.False(t, line.CheckForCross([]geometry.Point{{X: 5, Y: 5}}), "a single point trace cannot cross anything")
}

func TestPolygonInclusion(t *testing.T) {
	square := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	p := NewPolygon("box", square, true)

	assert.True(t, p.CheckForWithin(geometry.NewRect(4, 4, 2, 2)), "expected object center inside polygon to pass")
	assert.False(t, p.CheckForWithin(geometry.NewRect(50, 50, 2, 2)), "expected object center outside polygon to fail")
}
