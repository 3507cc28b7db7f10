package heatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/palette"
)

type recordingSink struct {
	rects []display.Rectangle
}

func (s *recordingSink) AddRectangle(r display.Rectangle) { s.rects = append(s.rects, r) }
func (s *recordingSink) AddLine(display.Line)              {}
func (s *recordingSink) AddText(display.Text)               {}

func TestHandleOccurrenceSumsToTotal(t *testing.T) {
	h := New(4, 4, geometry.Center, palette.Default)
	f := &meta.Frame{SourceWidth: 400, SourceHeight: 400}

	positions := []geometry.Rect{
		{Left: 10, Top: 10, Width: 10, Height: 10},
		{Left: 10, Top: 10, Width: 10, Height: 10},
		{Left: 310, Top: 310, Width: 10, Height: 10},
		{Left: 150, Top: 150, Width: 10, Height: 10},
	}
	for _, r := range positions {
		h.HandleOccurrence(f, &meta.Object{Rect: r})
	}

	var sum uint64
	for _, row := range h.cells {
		for _, c := range row {
			sum += c
		}
	}
	assert.Equal(t, uint64(len(positions)), sum, "sum of cells")
	assert.Equal(t, uint64(len(positions)), h.TotalOccurrences())

	var max uint64
	for _, row := range h.cells {
		for _, c := range row {
			if c > max {
				max = c
			}
		}
	}
	assert.Equal(t, max, h.MostOccurrences())
}

func TestHandleOccurrenceClampsEdgeObjects(t *testing.T) {
	h := New(4, 4, geometry.Center, palette.Default)
	f := &meta.Frame{SourceWidth: 400, SourceHeight: 400}

	// Center exactly on the right/bottom edge: naive division would index
	// one past the grid (400/100 == 4, but valid indices are 0..3).
	h.HandleOccurrence(f, &meta.Object{Rect: geometry.Rect{Left: 395, Top: 395, Width: 10, Height: 10}})

	assert.Equal(t, uint64(1), h.cells[3][3], "edge object should clamp into the last cell")
	assert.Equal(t, uint64(1), h.TotalOccurrences())
}

func TestResetZeroesCellsKeepsDimensions(t *testing.T) {
	h := New(2, 2, geometry.Center, palette.Default)
	f := &meta.Frame{SourceWidth: 100, SourceHeight: 100}
	h.HandleOccurrence(f, &meta.Object{Rect: geometry.Rect{Left: 10, Top: 10, Width: 5, Height: 5}})

	h.Reset()

	assert.Zero(t, h.TotalOccurrences())
	assert.Zero(t, h.MostOccurrences())
	assert.Equal(t, 2, h.rows)
	assert.Equal(t, 2, h.cols)
	for _, row := range h.cells {
		for _, c := range row {
			assert.Zero(t, c, "cell not zeroed after reset")
		}
	}
}

func TestAddDisplayMetaSuppressesLowCounts(t *testing.T) {
	h := New(2, 2, geometry.Center, palette.Default)
	f := &meta.Frame{SourceWidth: 100, SourceHeight: 100}

	// Cell (0,0) gets 1 occurrence (suppressed); cell (1,1) gets 3.
	h.HandleOccurrence(f, &meta.Object{Rect: geometry.Rect{Left: 10, Top: 10, Width: 1, Height: 1}})
	for i := 0; i < 3; i++ {
		h.HandleOccurrence(f, &meta.Object{Rect: geometry.Rect{Left: 60, Top: 60, Width: 1, Height: 1}})
	}

	sink := &recordingSink{}
	h.AddDisplayMeta(sink)

	assert.Len(t, sink.rects, 1, "count==1 cell should be suppressed")
}
