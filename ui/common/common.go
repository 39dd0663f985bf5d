// Package common holds small widgets and formatting helpers shared by the
// marquee views.
package common

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/marquee/style"
)

// ---------------------------------------------------------------------------
// Layout helpers
// ---------------------------------------------------------------------------

// CappedWidth returns width capped at maxWidth for readability.
// If maxWidth <= 0, 100 is used as the default cap.
func CappedWidth(width, maxWidth int) int {
	limit := maxWidth
	if limit <= 0 {
		limit = 100
	}
	return min(width, limit)
}

// PadRight pads s on the right with spaces until the rendered display width
// equals width. Returns s unchanged if it already meets or exceeds width.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadCenter centers s within width, padding both sides with spaces.
func PadCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Divider returns a horizontal rule of the given width rendered in the border color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return style.HeaderSeparator.Render(strings.Repeat("─", width))
}

// ---------------------------------------------------------------------------
// Number formatting
// ---------------------------------------------------------------------------

// HumanCount returns a compact count: 950 → "950", 12_400 → "12.4k",
// 3_000_000 → "3.0M".
func HumanCount(n int) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
}

// Plural returns "1 title" / "3 titles".
func Plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%s %ss", HumanCount(n), noun)
}
