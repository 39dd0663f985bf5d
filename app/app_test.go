package app

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/marquee/client"
	"github.com/miosa/marquee/config"
	"github.com/miosa/marquee/msg"
	"github.com/miosa/marquee/style"
	"github.com/miosa/marquee/ui/clipboard"
)

func newApp(t *testing.T, profileDir string) Model {
	t.Helper()
	m, err := New(Options{
		Config:     config.Defaults(),
		ProfileDir: profileDir,
		Source:     Source{Sample: 5},
		Version:    "test",
	})
	require.NoError(t, err)
	return m
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, v := range msgs {
		next, _ := m.Update(v)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typed(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, press(string(r)))
	}
	return out
}

// browsing returns a 100x30 app with the test catalog loaded.
func browsing(t *testing.T) Model {
	t.Helper()
	return send(t, newApp(t, ""),
		tea.WindowSizeMsg{Width: 100, Height: 30},
		msg.CatalogLoaded{Items: catalog(), Source: "test"},
	)
}

func plain(m Model) string { return ansi.Strip(m.renderView()) }

func shownIDs(m Model) []string { return ids(m.active().Items()) }

func selectedID(t *testing.T, m Model) string {
	t.Helper()
	it, ok := m.active().Selected()
	require.True(t, ok)
	return it.ID
}

// ---------------------------------------------------------------------------
// Construction and loading
// ---------------------------------------------------------------------------

func TestNew_InvalidEngineConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.List.Breakpoints = nil
	_, err := New(Options{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list view")
}

func TestLoading(t *testing.T) {
	m := send(t, newApp(t, ""), tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, StateLoading, m.state)
	assert.Contains(t, plain(m), "Loading catalog")
	assert.True(t, m.spinner.Spinning())
	assert.Contains(t, plain(m), "loading catalog from sample (5)")
	assert.NotNil(t, m.Init())

	m = send(t, m, press("s"))
	assert.Equal(t, SortTitle, m.query.Sort, "keys ignored while loading")
}

func TestCatalogLoaded(t *testing.T) {
	m := browsing(t)
	assert.Equal(t, StateBrowsing, m.state)
	assert.False(t, m.spinner.Spinning())
	assert.Equal(t, []string{"m3", "s1", "s2", "m1", "m2"}, shownIDs(m))
	assert.Equal(t, 5, m.list.Len(), "both views get the sequence")
	assert.Equal(t, 1, m.toasts.Len())
}

func TestCatalogLoaded_Error(t *testing.T) {
	m := send(t, newApp(t, ""),
		tea.WindowSizeMsg{Width: 100, Height: 30},
		msg.CatalogLoaded{Source: "test", Err: errors.New("connection refused")},
	)
	assert.Equal(t, StateBrowsing, m.state)
	assert.Equal(t, 1, m.toasts.Len())
	assert.Contains(t, plain(m), "connection refused")
	assert.Contains(t, plain(m), "No titles")
}

func TestView_FillsTerminal(t *testing.T) {
	m := browsing(t)
	v := m.renderView()
	assert.Equal(t, 30, lipgloss.Height(v))
	assert.Contains(t, ansi.Strip(v), "Paper Harbor")

	tv := m.View()
	assert.True(t, tv.AltScreen)
}

// ---------------------------------------------------------------------------
// Filtering
// ---------------------------------------------------------------------------

func TestTabs(t *testing.T) {
	m := send(t, browsing(t), press("tab"))
	assert.Equal(t, []string{"m3", "m1", "m2"}, shownIDs(m))
	m = send(t, m, press("tab"))
	assert.Equal(t, []string{"s1", "s2"}, shownIDs(m))
	m = send(t, m, press("tab"))
	assert.Len(t, shownIDs(m), 5)
}

func TestFilter_KeepsSelection(t *testing.T) {
	m := send(t, browsing(t), press("right"), press("right"))
	require.Equal(t, "s2", selectedID(t, m))

	m = send(t, m, press("shift+tab"))
	assert.Equal(t, []string{"s1", "s2"}, shownIDs(m))
	assert.Equal(t, "s2", selectedID(t, m))

	m = send(t, m, press("shift+tab"))
	assert.Equal(t, []string{"m3", "m1", "m2"}, shownIDs(m))
	assert.Equal(t, "m3", selectedID(t, m), "filtered-out selection resets to the first item")
}

func TestSort_KeepsSelectionWhenIDsCollideAcrossKinds(t *testing.T) {
	m := send(t, newApp(t, ""),
		tea.WindowSizeMsg{Width: 100, Height: 30},
		msg.CatalogLoaded{Source: "test", Items: []client.Item{
			{ID: "7", Title: "Beacon", Kind: client.KindMovie, Year: 2020},
			{ID: "7", Title: "Atlas", Kind: client.KindShow, Year: 1990},
		}},
	)
	it, ok := m.active().Selected()
	require.True(t, ok)
	require.Equal(t, client.KindShow, it.Kind)

	m = send(t, m, press("s"))
	require.Equal(t, client.KindMovie, m.active().Items()[0].Kind, "newest first")
	it, ok = m.active().Selected()
	require.True(t, ok)
	assert.Equal(t, client.KindShow, it.Kind)
	assert.Equal(t, "Atlas", it.Title)
}

func TestSort(t *testing.T) {
	m := send(t, browsing(t), press("s"))
	assert.Equal(t, SortYear, m.query.Sort)
	assert.Equal(t, "s1", shownIDs(m)[0])
	m = send(t, m, press("s"))
	assert.Equal(t, "s2", shownIDs(m)[0])
}

func TestSearch(t *testing.T) {
	m := send(t, browsing(t), press("/"))
	require.Equal(t, StateSearching, m.state)

	m = send(t, m, typed("harbor")...)
	assert.Equal(t, "harbor", m.query.Search)
	assert.Equal(t, []string{"m3", "s1", "m1"}, shownIDs(m))

	m = send(t, m, press("enter"))
	assert.Equal(t, StateBrowsing, m.state)
	assert.Equal(t, "harbor", m.query.Search, "accepting keeps the filter")

	m = send(t, m, press("esc"))
	assert.Equal(t, "", m.query.Search)
	assert.Len(t, shownIDs(m), 5)
}

func TestSearch_KeysAreText(t *testing.T) {
	m := send(t, browsing(t), press("/"))
	m = send(t, m, typed("qs")...)
	assert.Equal(t, StateSearching, m.state, "q does not quit while typing")
	assert.Equal(t, SortTitle, m.query.Sort)
	assert.Equal(t, "qs", m.query.Search)
	assert.Contains(t, plain(m), "No titles match")

	m = send(t, m, press("esc"))
	assert.Equal(t, StateBrowsing, m.state)
	assert.Len(t, shownIDs(m), 5)
}

// ---------------------------------------------------------------------------
// Views and panes
// ---------------------------------------------------------------------------

func TestDetail_OpenClose(t *testing.T) {
	m := send(t, browsing(t), press("enter"))
	require.Equal(t, StateDetail, m.state)
	assert.True(t, m.detail.IsOpen())
	assert.Equal(t, "m3", m.detail.Item().ID)
	assert.Contains(t, plain(m), "glass harbor")

	m = send(t, m, press("esc"))
	assert.Equal(t, StateBrowsing, m.state)
	assert.False(t, m.detail.IsOpen())
}

func TestToggleView_KeepsCursor(t *testing.T) {
	m := send(t, browsing(t), press("right"))
	require.Equal(t, "s1", selectedID(t, m))

	m = send(t, m, press("v"))
	assert.Equal(t, config.ViewList, m.config.View)
	assert.Equal(t, "s1", selectedID(t, m))

	m = send(t, m, press("v"))
	assert.Equal(t, config.ViewGrid, m.config.View)
}

func TestTheme_Cycles(t *testing.T) {
	before := style.CurrentThemeName
	t.Cleanup(func() { style.SetTheme(before) })

	m := send(t, browsing(t), press("t"))
	assert.NotEqual(t, before, style.CurrentThemeName)
	assert.Equal(t, style.CurrentThemeName, m.config.Theme)
}

func TestReload_RestartsSpinner(t *testing.T) {
	m := browsing(t)
	next, cmd := m.Update(press("r"))
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, StateLoading, m.state)
	assert.True(t, m.spinner.Spinning())
	assert.Len(t, shownIDs(m), 5, "old catalog stays visible while reloading")
}

func TestCopy(t *testing.T) {
	m := browsing(t)
	_, cmd := m.Update(press("y"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "glass harbor (1987)", copyText(catalog()[4]))

	m = send(t, m, clipboard.CopiedMsg{Text: "glass harbor (1987)"})
	assert.Equal(t, 2, m.toasts.Len())
	assert.Contains(t, plain(m), "copied glass harbor (1987)")
}

func TestDebug_Toggles(t *testing.T) {
	m := send(t, browsing(t), press("d"))
	assert.True(t, m.debug)
	m = send(t, m, press("d"))
	assert.False(t, m.debug)
}

func TestSaveConfig(t *testing.T) {
	assert.Nil(t, newApp(t, "").saveConfig(), "no profile, nothing saved")

	dir := t.TempDir()
	m := newApp(t, dir)
	m.config.View = config.ViewList
	saved, ok := m.saveConfig()().(msg.ConfigSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.ViewList, cfg.View)
}

func TestConfigSaved_ErrorToast(t *testing.T) {
	m := send(t, browsing(t), msg.ConfigSaved{Err: errors.New("read-only")})
	assert.Equal(t, 2, m.toasts.Len())
}

func TestOverlayBottom(t *testing.T) {
	got := overlayBottom("a\nb\nc\nd", "X\nY")
	assert.Equal(t, "a\nb\nX\nY", got)
	assert.Equal(t, "X", overlayBottom("a", "X\nY"))
	assert.Equal(t, 4, len(strings.Split(got, "\n")))
}
