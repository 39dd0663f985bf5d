package grid

// Virtualize reports whether a collection of count items should be windowed.
// At or below threshold every item is rendered directly; this is a hard
// branch with no partial mode in between.
func Virtualize(count, threshold int) bool {
	return count > threshold
}
