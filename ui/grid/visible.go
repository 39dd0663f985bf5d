package grid

// Viewport is the container geometry and scroll position.
//
// ScrollOffset is measured in the scrollable ancestor's coordinates;
// ScrollMargin is where the container starts inside that ancestor. The
// container-relative window is therefore
// [ScrollOffset-ScrollMargin, ScrollOffset-ScrollMargin+Height).
type Viewport struct {
	Width        float64
	Height       float64
	ScrollOffset float64
	ScrollMargin float64
}

// Top returns the container-relative top of the visible window.
func (v Viewport) Top() float64 { return v.ScrollOffset - v.ScrollMargin }

// Bottom returns the container-relative bottom (exclusive) of the window.
func (v Viewport) Bottom() float64 { return v.Top() + v.Height }

// Range is an inclusive span of row indices. The empty range is
// {Start: 0, End: -1}.
type Range struct {
	Start int
	End   int
}

// EmptyRange is the range reported when there are no rows.
var EmptyRange = Range{Start: 0, End: -1}

// Len returns the number of rows in r.
func (r Range) Len() int { return max(r.End-r.Start+1, 0) }

// Empty reports whether r holds no rows.
func (r Range) Empty() bool { return r.Len() == 0 }

// Contains reports whether row i is inside r.
func (r Range) Contains(i int) bool { return i >= r.Start && i <= r.End }

// ComputeVisibleRange returns the rows to mount for vp: every row whose
// [offset, offset+height) span intersects the visible window, widened by
// overscan rows on each side and clamped to the table.
//
// Row boundaries are half-open: a row ending exactly at the window top, or
// starting exactly at the window bottom, is not visible. Tables of at most
// 2*overscan+1 rows are returned whole.
func ComputeVisibleRange(t *HeightTable, vp Viewport, overscan int) Range {
	n := t.Len()
	if n == 0 {
		return EmptyRange
	}
	overscan = max(overscan, 0)
	if n <= 2*overscan+1 {
		return Range{Start: 0, End: n - 1}
	}

	top, bottom := vp.Top(), vp.Bottom()
	first := t.RowAt(top)
	last := first
	if bottom > top {
		last = max(t.lastStartingBefore(bottom), first)
	}

	return Range{
		Start: max(first-overscan, 0),
		End:   min(last+overscan, n-1),
	}
}
