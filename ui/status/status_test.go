package status

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/miosa/marquee/ui/grid"
	"github.com/miosa/marquee/ui/library"
)

func windowed() library.Stats {
	return library.Stats{
		Items:       1200,
		Columns:     4,
		Rows:        300,
		Visible:     grid.Range{Start: 10, End: 19},
		Phase:       grid.PhaseSettling,
		Generation:  7,
		Virtualized: true,
		Scroll:      50,
		MaxScroll:   200,
	}
}

func TestView_Summary(t *testing.T) {
	m := New()
	m.SetWidth(120)
	m.SetStats(windowed(), 1200)

	v := m.View()
	assert.Contains(t, v, "1.2k titles")
	assert.Contains(t, v, "cols 4")
	assert.Contains(t, v, "rows 11–20/300")
	assert.Contains(t, v, "25%")
	assert.NotContains(t, v, "settling")
	assert.Equal(t, 120, lipgloss.Width(v))

	m.SetDebug(true)
	v = m.View()
	assert.Contains(t, v, "settling")
	assert.Contains(t, v, "gen 7")
	assert.Contains(t, v, "windowed")
}

func TestView_Filtered(t *testing.T) {
	m := New()
	m.SetWidth(80)
	m.SetStats(library.Stats{Items: 12, Columns: 2, Rows: 6}, 1200)
	assert.Contains(t, m.View(), "12 of 1.2k titles")
	assert.Contains(t, m.View(), "rows 6")
}

func TestView_HelpDroppedWhenNarrow(t *testing.T) {
	quit := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	m := New()
	m.SetHelp(quit)
	m.SetStats(windowed(), 1200)

	m.SetWidth(120)
	assert.Contains(t, m.View(), "quit")

	m.SetWidth(30)
	assert.NotContains(t, m.View(), "quit")
}

func TestView_Message(t *testing.T) {
	m := New()
	m.SetWidth(40)
	m.SetMessage("loading catalog…")
	v := m.View()
	assert.Contains(t, v, "loading catalog…")
	assert.Equal(t, 40, lipgloss.Width(v))
}
