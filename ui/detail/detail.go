// Package detail shows one catalog item as rendered markdown in a scrollable,
// bordered pane.
package detail

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/marquee/client"
	"github.com/miosa/marquee/style"
	"github.com/miosa/marquee/ui/common"
	"github.com/miosa/marquee/ui/markdown"
	"github.com/miosa/marquee/ui/poster"
)

const maxWidth = 80

// Model is the detail pane.
type Model struct {
	vp     viewport.Model
	item   client.Item
	open   bool
	width  int
	height int
}

// New returns a closed pane.
func New() Model {
	return Model{vp: viewport.New()}
}

// Open shows it and scrolls to the top.
func (m *Model) Open(it client.Item) {
	m.item = it
	m.open = true
	m.refresh()
	m.vp.GotoTop()
}

// Close hides the pane.
func (m *Model) Close() { m.open = false }

// IsOpen reports whether the pane is shown.
func (m Model) IsOpen() bool { return m.open }

// Item returns the item on display.
func (m Model) Item() client.Item { return m.item }

// SetSize sets the space available to the pane, border included.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	m.refresh()
}

// Refresh re-renders the content, e.g. after a theme change.
func (m *Model) Refresh() { m.refresh() }

// Update forwards scroll keys and the mouse wheel to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.open {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the bordered pane, centered in the available width.
func (m Model) View() string {
	if !m.open || m.width <= 0 || m.height <= 0 {
		return ""
	}
	box := style.DetailBorder.Render(m.vp.View())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}

// inner returns the content area: two border columns and two padding
// columns, two border lines.
func (m Model) inner() (w, h int) {
	w = common.CappedWidth(m.width, maxWidth) - 4
	h = m.height - 2
	return max(w, 0), max(h, 0)
}

func (m *Model) refresh() {
	w, h := m.inner()
	m.vp.SetWidth(w)
	m.vp.SetHeight(h)
	if !m.open || w == 0 {
		m.vp.SetContent("")
		return
	}
	m.vp.SetContent(markdown.Render(poster.Markdown(m.item), w, style.IsDark()))
}
