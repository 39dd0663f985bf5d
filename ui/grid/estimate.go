package grid

// ItemWidth returns the width of one tile when columns tiles and
// columns-1 gaps share containerWidth. It never returns a negative width.
func ItemWidth(containerWidth float64, columns int, gap float64) float64 {
	if columns < 1 {
		columns = 1
	}
	w := (containerWidth - gap*float64(columns-1)) / float64(columns)
	return max(w, 0)
}

// EstimateRowHeight derives a row height from the tile aspect ratio
// (width / height) plus the gap below the row. It is O(1) and used as the
// uniform estimate for every row until that row is measured.
func EstimateRowHeight(containerWidth float64, columns int, aspectRatio, gap float64) float64 {
	if aspectRatio <= 0 {
		return gap
	}
	return ItemWidth(containerWidth, columns, gap)/aspectRatio + gap
}
