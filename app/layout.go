package app

import "github.com/miosa/marquee/ui/header"

// minBodyHeight keeps the library pane usable on very short terminals.
const minBodyHeight = 3

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // title line + separator
	StatusHeight int
	BodyWidth    int // library or detail pane
	BodyHeight   int
}

// ComputeLayout splits the terminal into header, body and status bar.
func ComputeLayout(termW, termH int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: header.Height,
		StatusHeight: 1,
		BodyWidth:    max(termW, 0),
	}
	l.BodyHeight = max(termH-l.HeaderHeight-l.StatusHeight, minBodyHeight)
	return l
}
