package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeVisibleRange_FourRowsOverscanOne(t *testing.T) {
	tbl := NewHeightTable(4, 300)
	got := ComputeVisibleRange(tbl, Viewport{Height: 400, ScrollOffset: 650}, 1)
	// Rows 2 and 3 intersect [650, 1050); one row of overscan adds row 1.
	assert.Equal(t, Range{Start: 1, End: 3}, got)
}

func TestComputeVisibleRange_Empty(t *testing.T) {
	got := ComputeVisibleRange(NewHeightTable(0, 10), Viewport{Height: 100}, 2)
	assert.True(t, got.Empty())
	assert.Equal(t, EmptyRange, got)
}

func TestComputeVisibleRange_SmallTableReturnsAll(t *testing.T) {
	tbl := NewHeightTable(5, 100)
	got := ComputeVisibleRange(tbl, Viewport{Height: 50, ScrollOffset: 400}, 2)
	assert.Equal(t, Range{Start: 0, End: 4}, got)
}

func TestComputeVisibleRange_ScrollMargin(t *testing.T) {
	tbl := NewHeightTable(20, 100)
	// Container starts 500 below the scroll origin; scrolled 500 means the
	// container top is exactly at the viewport top.
	got := ComputeVisibleRange(tbl, Viewport{Height: 250, ScrollOffset: 500, ScrollMargin: 500}, 0)
	assert.Equal(t, Range{Start: 0, End: 2}, got)
}

func TestComputeVisibleRange_ExactBoundariesNotDoubleCounted(t *testing.T) {
	tbl := NewHeightTable(20, 100)
	// Window [300, 500) touches row 2's bottom and row 5's top, neither visible.
	got := ComputeVisibleRange(tbl, Viewport{Height: 200, ScrollOffset: 300}, 0)
	assert.Equal(t, Range{Start: 3, End: 4}, got)
}

func TestComputeVisibleRange_PastEndClampsToLastRow(t *testing.T) {
	tbl := NewHeightTable(20, 100)
	got := ComputeVisibleRange(tbl, Viewport{Height: 300, ScrollOffset: 9000}, 1)
	assert.Equal(t, Range{Start: 18, End: 19}, got)
	assert.False(t, got.Empty())
}

func TestComputeVisibleRange_CoversEveryIntersectingRow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(60)
		tbl := NewHeightTable(n, 50)
		for i := 0; i < n; i++ {
			tbl.Set(i, float64(1+rng.Intn(120)))
		}
		overscan := rng.Intn(3)
		vp := Viewport{
			Height:       float64(1 + rng.Intn(400)),
			ScrollOffset: rng.Float64() * (tbl.Total() + 100),
		}
		got := ComputeVisibleRange(tbl, vp, overscan)
		require.False(t, got.Empty())
		require.LessOrEqual(t, got.Start, got.End)
		require.GreaterOrEqual(t, got.Start, 0)
		require.Less(t, got.End, n)

		for i := 0; i < n; i++ {
			top := tbl.Offset(i)
			bottom := top + tbl.Height(i)
			if top < vp.Bottom() && bottom > vp.Top() {
				require.True(t, got.Contains(i),
					"iter %d: row %d [%g,%g) intersects [%g,%g) but range is %+v",
					iter, i, top, bottom, vp.Top(), vp.Bottom(), got)
			}
		}
	}
}
