package grid

import (
	"math"
	"sort"
)

// Epsilon is the smallest height change Measure treats as real.
const Epsilon = 0.5

// HeightTable maps row index to height and cumulative offset.
//
// offsets[i] is the top of row i and offsets[len] the total height. Offsets
// are recomputed lazily: entries up to and including offsets[valid] are
// current, everything after it is stale until the next read that needs it.
// Changing row i only lowers the watermark to i, so rows above a correction
// keep their offsets.
type HeightTable struct {
	heights  []float64
	measured []bool
	offsets  []float64
	valid    int
	nMeasure int
}

// NewHeightTable returns a table of rows entries, all at estimate.
func NewHeightTable(rows int, estimate float64) *HeightTable {
	rows = max(rows, 0)
	estimate = max(estimate, 0)
	t := &HeightTable{
		heights:  make([]float64, rows),
		measured: make([]bool, rows),
		offsets:  make([]float64, rows+1),
	}
	for i := range t.heights {
		t.heights[i] = estimate
	}
	return t
}

// Len returns the number of rows.
func (t *HeightTable) Len() int { return len(t.heights) }

// Height returns the current (estimated or measured) height of row i.
func (t *HeightTable) Height(i int) float64 { return t.heights[i] }

// Measured reports whether row i holds a real measurement.
func (t *HeightTable) Measured(i int) bool { return t.measured[i] }

// MeasuredCount returns how many rows hold real measurements.
func (t *HeightTable) MeasuredCount() int { return t.nMeasure }

// Set stores a measured height for row i and reports whether the table
// changed. A value within Epsilon of an existing measurement is a no-op.
func (t *HeightTable) Set(i int, h float64) bool {
	h = max(h, 0)
	if t.measured[i] && math.Abs(t.heights[i]-h) <= Epsilon {
		return false
	}
	if !t.measured[i] {
		t.measured[i] = true
		t.nMeasure++
	}
	if t.heights[i] == h {
		return true
	}
	t.heights[i] = h
	if t.valid > i {
		t.valid = i
	}
	return true
}

// Offset returns the top of row i. Offset(Len()) is the total height.
func (t *HeightTable) Offset(i int) float64 {
	i = min(max(i, 0), len(t.heights))
	t.settle(i)
	return t.offsets[i]
}

// Total returns the sum of all row heights.
func (t *HeightTable) Total() float64 { return t.Offset(len(t.heights)) }

// RowAt returns the row whose [offset, offset+height) span contains y. Values
// above the first row map to 0 and values past the end map to the last row.
// It returns -1 for an empty table.
func (t *HeightTable) RowAt(y float64) int {
	n := len(t.heights)
	if n == 0 {
		return -1
	}
	t.settle(n)
	// First row whose bottom edge is strictly below y.
	i := sort.Search(n, func(k int) bool { return t.offsets[k+1] > y })
	return min(i, n-1)
}

// lastStartingBefore returns the last row whose top is < y, or 0.
func (t *HeightTable) lastStartingBefore(y float64) int {
	n := len(t.heights)
	t.settle(n)
	i := sort.Search(n, func(k int) bool { return t.offsets[k] >= y })
	return max(i-1, 0)
}

// settle brings offsets[0..i] up to date.
func (t *HeightTable) settle(i int) {
	for ; t.valid < i; t.valid++ {
		t.offsets[t.valid+1] = t.offsets[t.valid] + t.heights[t.valid]
	}
}
