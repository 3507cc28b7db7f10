// Package heatmap implements per-source occurrence density accumulation:
// a HeatMap divides a frame into a rows x cols grid and counts how many
// times a matching object's test point lands in each cell over time,
// using the same 9-way test-point enumeration as Areas and Triggers and
// rendering cells with a cyclic color palette (palette.Palette).
package heatmap

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/nimbusvid/odecore/display"
	"github.com/nimbusvid/odecore/geometry"
	"github.com/nimbusvid/odecore/meta"
	"github.com/nimbusvid/odecore/palette"
)

// HeatMap accumulates per-cell occurrence counts for one source stream.
type HeatMap struct {
	mu sync.Mutex

	rows, cols int
	testPoint  geometry.TestPoint
	pal        palette.Palette

	gridRectWidth, gridRectHeight int
	dimensioned                   bool

	cells           [][]uint64
	mostOccurrences uint64
	totalOccurrences uint64
}

// New builds a HeatMap with the given grid dimensions, sampling each
// object's bounding box at testPoint, and rendering with pal.
func New(rows, cols int, testPoint geometry.TestPoint, pal palette.Palette) *HeatMap {
	cells := make([][]uint64, rows)
	for i := range cells {
		cells[i] = make([]uint64, cols)
	}
	return &HeatMap{
		rows:      rows,
		cols:      cols,
		testPoint: testPoint,
		pal:       pal,
		cells:     cells,
	}
}

// HandleOccurrence increments the grid cell containing obj's test point.
// On the first call, the grid's cell dimensions are derived from frame's
// size and fixed for the life of the HeatMap.
func (h *HeatMap) HandleOccurrence(frame *meta.Frame, obj *meta.Object) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.dimensioned {
		h.gridRectWidth = frame.SourceWidth / h.cols
		h.gridRectHeight = frame.SourceHeight / h.rows
		h.dimensioned = true
	}
	if h.gridRectWidth <= 0 || h.gridRectHeight <= 0 {
		return
	}

	p := h.testPoint.Locate(obj.Rect)

	col := int(p.X) / h.gridRectWidth
	row := int(p.Y) / h.gridRectHeight

	// Remainder pixels from the integer-division grid are absorbed by the
	// last column/row rather than indexing past the grid.
	col = min(col, h.cols-1)
	row = min(row, h.rows-1)
	if col < 0 || row < 0 {
		return
	}

	h.cells[row][col]++
	h.totalOccurrences++
	if h.cells[row][col] > h.mostOccurrences {
		h.mostOccurrences = h.cells[row][col]
	}
}

// AddDisplayMeta emits one filled rectangle per cell with count >= 2,
// selecting a palette index proportional to that cell's share of the
// busiest cell. Cells with count 0 or 1 are suppressed to avoid drowning
// a display in near-empty cells.
func (h *HeatMap) AddDisplayMeta(sink display.MetaSink) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.mostOccurrences == 0 || h.gridRectWidth <= 0 || h.gridRectHeight <= 0 {
		return
	}

	for row := 0; row < h.rows; row++ {
		for col := 0; col < h.cols; col++ {
			count := h.cells[row][col]
			if count < 2 {
				continue
			}

			idx := int(math.Round(float64(count) * 10 / float64(h.mostOccurrences)))
			c := h.pal.At(idx)

			sink.AddRectangle(display.Rectangle{
				Left:       col * h.gridRectWidth,
				Top:        row * h.gridRectHeight,
				Width:      h.gridRectWidth,
				Height:     h.gridRectHeight,
				HasBgColor: true,
				BgColor:    c,
			})
		}
	}
}

// Reset zeroes every cell's count and the running totals, keeping the
// grid's dimensions.
func (h *HeatMap) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for row := range h.cells {
		for col := range h.cells[row] {
			h.cells[row][col] = 0
		}
	}
	h.mostOccurrences = 0
	h.totalOccurrences = 0
}

// TotalOccurrences returns the running sum of every cell's count.
func (h *HeatMap) TotalOccurrences() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalOccurrences
}

// MostOccurrences returns the current maximum single-cell count.
func (h *HeatMap) MostOccurrences() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mostOccurrences
}

// Dump renders the grid's counts as fixed-width text, one row per line.
func (h *HeatMap) Dump() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder
	for _, row := range h.cells {
		for _, count := range row {
			fmt.Fprintf(&b, "%6d", count)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
