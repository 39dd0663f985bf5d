package grid

// Row is a horizontal group of up to Columns items. Its items are the
// contiguous index span [Start, End) of the ordered item sequence.
type Row struct {
	Index int
	Start int
	End   int
}

// Len returns the number of items in the row.
func (r Row) Len() int { return r.End - r.Start }

// Contains reports whether item index i belongs to this row.
func (r Row) Contains(i int) bool { return i >= r.Start && i < r.End }

// GroupRows partitions n items into consecutive rows of columns items. The
// last row may be shorter. It returns nil for n <= 0.
func GroupRows(n, columns int) []Row {
	if n <= 0 {
		return nil
	}
	if columns < 1 {
		columns = 1
	}
	rows := make([]Row, 0, (n+columns-1)/columns)
	for start := 0; start < n; start += columns {
		rows = append(rows, Row{
			Index: len(rows),
			Start: start,
			End:   min(start+columns, n),
		})
	}
	return rows
}

// Slice returns the items belonging to row r. It clamps to len(items) so a
// row from an older grouping never panics.
func Slice[T any](items []T, r Row) []T {
	start := min(max(r.Start, 0), len(items))
	end := min(max(r.End, start), len(items))
	return items[start:end]
}
