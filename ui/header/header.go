// Package header renders the marquee title bar: kind tabs, the sort order
// and the search box.
package header

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/marquee/style"
	"github.com/miosa/marquee/ui/common"
)

// Height is the number of lines View returns.
const Height = 2

// Model holds the header state.
type Model struct {
	version string
	source  string
	tabs    []string
	active  int
	sort    string
	width   int

	search    textinput.Model
	searching bool
}

// New returns a header for the given version string.
func New(version string) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search titles"
	ti.CharLimit = 64
	st := ti.Styles()
	st.Focused.Prompt = style.SearchPrompt
	ti.SetStyles(st)
	return Model{version: version, search: ti}
}

// SetWidth updates the terminal width used for layout.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.search.SetWidth(max(w/3-4, 8))
}

// SetSource sets where the catalog came from, e.g. "sample" or a URL.
func (m *Model) SetSource(s string) { m.source = s }

// SetTabs sets the tab labels and the active one.
func (m *Model) SetTabs(labels []string, active int) {
	m.tabs = labels
	m.active = active
}

// SetSort sets the sort label shown next to the tabs.
func (m *Model) SetSort(label string) { m.sort = label }

// StartSearch focuses the search box.
func (m *Model) StartSearch() tea.Cmd {
	m.searching = true
	return m.search.Focus()
}

// StopSearch blurs the search box. The query is kept.
func (m *Model) StopSearch() {
	m.searching = false
	m.search.Blur()
}

// ClearSearch blurs the search box and empties it.
func (m *Model) ClearSearch() {
	m.StopSearch()
	m.search.SetValue("")
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool { return m.searching }

// Query returns the search text.
func (m Model) Query() string { return m.search.Value() }

// Update forwards input to the search box while it has focus.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.searching {
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// View renders the title line and a separator.
func (m Model) View() string {
	title := style.GradientText("◈ marquee", style.GradColorA, style.GradColorB)
	if m.version != "" {
		title += style.Faint.Render(" " + m.version)
	}

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			tabs[i] = style.TabActive.Render(t)
		} else {
			tabs[i] = style.TabInactive.Render(t)
		}
	}
	left := title + "  " + strings.Join(tabs, "  ")
	if m.sort != "" {
		left += style.Hint.Render("  ↕ " + m.sort)
	}

	right := ""
	switch {
	case m.searching || m.search.Value() != "":
		right = m.search.View()
	case m.source != "":
		right = style.Hint.Render(m.source)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap >= 1 {
		line += strings.Repeat(" ", gap) + right
	}
	return line + "\n" + common.Divider(m.width)
}
