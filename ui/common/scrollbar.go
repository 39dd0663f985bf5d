// Package common holds small widgets shared by the marquee views.
package common

import (
	"strings"

	"github.com/miosa/marquee/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// Scrollbar renders a vertical scrollbar exactly viewportHeight rows tall
// and one column wide. The thumb is sized and placed in proportion to the
// visible region of contentHeight. When everything fits, the column is blank
// so the surrounding layout keeps its width.
func Scrollbar(viewportHeight, contentHeight, offset int) string {
	vh := viewportHeight
	ch := contentHeight
	if vh <= 0 {
		return ""
	}
	if ch <= vh {
		return strings.TrimSuffix(strings.Repeat(" \n", vh), "\n")
	}

	thumbH := min(max(vh*vh/ch, 1), vh)

	scrollable := ch - vh
	thumbTop := (min(max(offset, 0), scrollable) * (vh - thumbH)) / scrollable

	rows := make([]string, vh)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// ThumbSpan returns the thumb's first row and height for the same inputs as
// Scrollbar, or (0, 0) when no scrollbar is needed.
func ThumbSpan(viewportHeight, contentHeight, offset int) (top, height int) {
	if viewportHeight <= 0 || contentHeight <= viewportHeight {
		return 0, 0
	}
	height = min(max(viewportHeight*viewportHeight/contentHeight, 1), viewportHeight)
	scrollable := contentHeight - viewportHeight
	top = (min(max(offset, 0), scrollable) * (viewportHeight - height)) / scrollable
	return top, height
}
