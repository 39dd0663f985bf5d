package status

import (
	"github.com/miosa/marquee/style"
	"github.com/miosa/marquee/ui/common"
)

// pill renders "label value" with the value highlighted.
func pill(label, value string) string {
	return style.StatusKey.Render(label+" ") + style.StatusValue.Render(value)
}

// countPill renders the shown count, and the catalog size when a filter
// hides part of it, e.g. "12 of 1.2k titles".
func countPill(shown, total int) string {
	if total <= shown {
		return style.StatusValue.Render(common.Plural(shown, "title"))
	}
	return style.StatusValue.Render(common.HumanCount(shown)) +
		style.StatusKey.Render(" of "+common.Plural(total, "title"))
}

// phasePill renders the layout phase.
func phasePill(phase string) string {
	return style.StatusPhase.Render(phase)
}
