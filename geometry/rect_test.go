package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectangleDistanceZeroWhenOverlapping(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	assert.Zero(t, RectangleDistance(a, b), "expected 0 distance for overlapping rects")
}

func TestRectangleDistanceSelfIsZero(t *testing.T) {
	a := NewRect(1, 2, 3, 4)

	assert.Zero(t, RectangleDistance(a, a))
}

func TestRectangleDistanceSeparated(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(30, 0, 10, 10)

	assert.Equal(t, 10.0, RectangleDistance(a, b))
}

func TestRectangleOverlapsCommutative(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(9, 9, 10, 10)

	assert.Equal(t, RectangleOverlaps(a, b), RectangleOverlaps(b, a), "RectangleOverlaps must be commutative")
	assert.True(t, RectangleOverlaps(a, b))
}

func TestRectangleOverlapsTouchingCountsAsOverlap(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(10, 0, 10, 10)

	assert.True(t, RectangleOverlaps(a, b), "touching rectangles should count as overlapping")
}

func TestPointDistanceTriangleInequality(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	c := Point{X: -2, Y: 7}

	assert.LessOrEqual(t, PointDistance(a, c), PointDistance(a, b)+PointDistance(b, c)+1e-9)
}

func TestTestPointLocate(t *testing.T) {
	r := NewRect(0, 0, 10, 20)

	cases := []struct {
		tp   TestPoint
		want Point
	}{
		{Center, Point{5, 10}},
		{NorthWest, Point{0, 0}},
		{North, Point{5, 0}},
		{NorthEast, Point{10, 0}},
		{East, Point{10, 10}},
		{SouthEast, Point{10, 20}},
		{South, Point{5, 20}},
		{SouthWest, Point{0, 20}},
		{West, Point{0, 10}},
		{Any, Point{5, 10}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.tp.Locate(r), "%s.Locate", c.tp)
	}
}
