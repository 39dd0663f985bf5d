// Package status provides the bottom status bar: catalog size, the grid
// layout snapshot and a short key help.
package status

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/miosa/marquee/style"
	"github.com/miosa/marquee/ui/common"
	"github.com/miosa/marquee/ui/library"
)

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	stats   library.Stats
	total   int
	message string
	help    []key.Binding
	width   int
	debug   bool
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetWidth sets the bar width.
func (m *Model) SetWidth(w int) { m.width = w }

// SetStats updates the layout snapshot. total is the catalog size before
// filtering.
func (m *Model) SetStats(s library.Stats, total int) {
	m.stats = s
	m.total = total
}

// SetMessage replaces the left-hand summary, e.g. while loading.
func (m *Model) SetMessage(s string) { m.message = s }

// SetHelp sets the bindings shown on the right.
func (m *Model) SetHelp(bindings ...key.Binding) { m.help = bindings }

// SetDebug toggles the engine details (phase and generation).
func (m *Model) SetDebug(on bool) { m.debug = on }

// View renders the status line. Help is dropped first when space runs out.
func (m Model) View() string {
	left := m.message
	if left == "" {
		left = m.summary()
	}
	left = style.StatusBar.Render(left)
	right := common.KeyHelp(m.help...)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if right == "" || gap < 1 {
		return common.PadRight(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right + " "
}

func (m Model) summary() string {
	s := m.stats
	parts := []string{countPill(s.Items, m.total)}
	if s.Columns > 0 {
		parts = append(parts, pill("cols", fmt.Sprint(s.Columns)))
	}
	if s.Virtualized && !s.Visible.Empty() {
		parts = append(parts, pill("rows", fmt.Sprintf("%d–%d/%d", s.Visible.Start+1, s.Visible.End+1, s.Rows)))
	} else if s.Rows > 0 {
		parts = append(parts, pill("rows", fmt.Sprint(s.Rows)))
	}
	if pct, ok := scrollPercent(s.Scroll, s.MaxScroll); ok {
		parts = append(parts, style.StatusValue.Render(fmt.Sprintf("%d%%", pct)))
	}
	if m.debug {
		mode := "flat"
		if s.Virtualized {
			mode = "windowed"
		}
		parts = append(parts,
			phasePill(s.Phase.String()),
			pill("gen", fmt.Sprint(s.Generation)),
			style.StatusKey.Render(mode),
		)
	}
	return strings.Join(parts, style.Faint.Render(" · "))
}

func scrollPercent(scroll, maxScroll float64) (int, bool) {
	if maxScroll <= 0 {
		return 0, false
	}
	return int(min(max(scroll/maxScroll, 0), 1) * 100), true
}
