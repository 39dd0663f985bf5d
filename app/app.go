package app

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/marquee/client"
	"github.com/miosa/marquee/config"
	"github.com/miosa/marquee/msg"
	"github.com/miosa/marquee/style"
	"github.com/miosa/marquee/ui/anim"
	"github.com/miosa/marquee/ui/clipboard"
	"github.com/miosa/marquee/ui/common"
	"github.com/miosa/marquee/ui/detail"
	"github.com/miosa/marquee/ui/header"
	"github.com/miosa/marquee/ui/library"
	"github.com/miosa/marquee/ui/poster"
	"github.com/miosa/marquee/ui/status"
	"github.com/miosa/marquee/ui/toast"
)

// Options configures New.
type Options struct {
	Config     config.Config
	ProfileDir string // where config changes are saved; empty disables saving
	Source     Source
	Logger     *slog.Logger
	Version    string
}

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model. It owns every sub-model and the
// filter state that feeds the library views.
type Model struct {
	header  header.Model
	grid    library.Model[client.Item]
	list    library.Model[client.Item]
	detail  detail.Model
	status  status.Model
	toasts  toast.Model
	spinner anim.Model

	state  State
	layout Layout
	keys   KeyMap

	config     config.Config
	profileDir string
	source     Source
	log        *slog.Logger

	all   []client.Item
	query Query
	debug bool
}

// New constructs the root Model. Engine settings come from the config; an
// invalid grid or list section is an error.
func New(opts Options) (Model, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config

	g, err := library.New(cfg.Grid, itemKey, library.RowRendererFunc[client.Item](renderPosterRow),
		library.WithLogger(log.With("view", config.ViewGrid)))
	if err != nil {
		return Model{}, fmt.Errorf("grid view: %w", err)
	}
	l, err := library.New(cfg.List, itemKey, library.RowRendererFunc[client.Item](renderListRow),
		library.WithLogger(log.With("view", config.ViewList)))
	if err != nil {
		return Model{}, fmt.Errorf("list view: %w", err)
	}

	hdr := header.New(opts.Version)
	hdr.SetSource(opts.Source.String())
	spin := anim.New("loading catalog from " + opts.Source.String())
	spin.Start()

	m := Model{
		header:     hdr,
		grid:       g,
		list:       l,
		detail:     detail.New(),
		status:     status.New(),
		toasts:     toast.New(),
		spinner:    spin,
		state:      StateLoading,
		layout:     ComputeLayout(80, 24),
		keys:       DefaultKeyMap(),
		config:     cfg,
		profileDir: opts.ProfileDir,
		source:     opts.Source,
		log:        log,
	}
	m.syncHeader()
	m.syncStatus()
	return m, nil
}

func itemKey(it client.Item) string { return string(it.Kind) + "/" + it.ID }

func renderPosterRow(items []client.Item, ctx library.RowContext) string {
	return poster.Row(items, ctx.First, ctx.Cursor, ctx.ItemWidth, ctx.Gap, ctx.Aspect)
}

func renderListRow(items []client.Item, ctx library.RowContext) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = poster.Line(it, ctx.Width, ctx.First+i == ctx.Cursor)
	}
	return strings.Join(lines, "\n")
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.source), tea.RequestWindowSize, m.spinner.Tick())
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(rawMsg)
	next.syncStatus()
	return next, cmd
}

func (m Model) update(rawMsg tea.Msg) (Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.layout = ComputeLayout(v.Width, v.Height)
		m.header.SetWidth(v.Width)
		m.status.SetWidth(v.Width)
		m.detail.SetSize(m.layout.BodyWidth, m.layout.BodyHeight)
		cmd := tea.Batch(
			m.grid.SetSize(m.layout.BodyWidth, m.layout.BodyHeight),
			m.list.SetSize(m.layout.BodyWidth, m.layout.BodyHeight),
		)
		return m, cmd

	case tea.MouseWheelMsg:
		if m.state == StateDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(v)
			return m, cmd
		}
		return m.updateActive(v)

	case tea.KeyPressMsg:
		return m.handleKey(v)

	// -- Catalog --

	case msg.CatalogLoaded:
		return m.handleCatalog(v)

	// -- Config --

	case msg.ConfigSaved:
		if v.Err != nil {
			m.log.Warn("config save failed", "err", v.Err)
			cmd := m.toasts.Add("settings not saved: "+v.Err.Error(), toast.Warning)
			return m, cmd
		}
		return m, nil

	case toast.ExpireMsg:
		m.toasts = m.toasts.Update(v)
		return m, nil

	case clipboard.CopiedMsg:
		if v.Err != nil {
			m.log.Warn("copy failed", "err", v.Err)
			cmd := m.toasts.Add("copy failed: "+v.Err.Error(), toast.Warning)
			return m, cmd
		}
		cmd := m.toasts.Add("copied "+v.Text, toast.Info)
		return m, cmd

	case anim.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		return m, cmd
	}

	// Frame ticks, row measurements and cursor blinks are addressed to one
	// sub-model; the others ignore them.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(rawMsg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(rawMsg)
	cmds = append(cmds, cmd)
	if m.state == StateSearching {
		m.header, cmd = m.header.Update(rawMsg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleCatalog(v msg.CatalogLoaded) (Model, tea.Cmd) {
	m.state = StateBrowsing
	m.spinner.Stop()
	if v.Err != nil {
		m.log.Error("catalog load failed", "source", v.Source, "err", v.Err)
		cmd := m.toasts.Add("catalog: "+v.Err.Error(), toast.Error)
		return m, cmd
	}
	m.log.Info("catalog loaded", "source", v.Source, "items", len(v.Items), "elapsed", v.Elapsed)
	m.all = v.Items
	note := fmt.Sprintf("%s from %s", common.Plural(len(v.Items), "title"), v.Source)
	cmd := tea.Batch(m.refilter(), m.toasts.Add(note, toast.Info))
	return m, cmd
}

// -- Key handling -------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch m.state {
	case StateSearching:
		return m.handleSearchKey(k)
	case StateDetail:
		return m.handleDetailKey(k)
	case StateLoading:
		if key.Matches(k, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	return m.handleBrowseKey(k)
}

func (m Model) handleBrowseKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(k, m.keys.Escape):
		if m.query.Search == "" {
			return m, nil
		}
		m.header.ClearSearch()
		m.query.Search = ""
		cmd := m.refilter()
		return m, cmd

	case key.Matches(k, m.keys.Search):
		m.state = StateSearching
		cmd := m.header.StartSearch()
		return m, cmd

	case key.Matches(k, m.keys.Open):
		it, ok := m.active().Selected()
		if !ok {
			return m, nil
		}
		m.detail.Open(it)
		m.state = StateDetail
		return m, nil

	case key.Matches(k, m.keys.ToggleView):
		cursor := m.active().Cursor()
		m.config.View = config.NextView(m.config.View)
		cmd := tea.Batch(m.active().SetCursor(cursor), m.saveConfig())
		return m, cmd

	case key.Matches(k, m.keys.Theme):
		name := style.NextTheme(style.CurrentThemeName)
		style.SetTheme(name)
		m.config.Theme = name
		m.detail.Refresh()
		cmd := tea.Batch(m.grid.Invalidate(), m.list.Invalidate(), m.saveConfig())
		return m, cmd

	case key.Matches(k, m.keys.NextTab):
		m.query.Tab = (m.query.Tab + 1) % len(Tabs)
		cmd := m.refilter()
		return m, cmd

	case key.Matches(k, m.keys.PrevTab):
		m.query.Tab = (m.query.Tab + len(Tabs) - 1) % len(Tabs)
		cmd := m.refilter()
		return m, cmd

	case key.Matches(k, m.keys.Sort):
		m.query.Sort = m.query.Sort.Next()
		cmd := m.refilter()
		return m, cmd

	case key.Matches(k, m.keys.Reload):
		m.state = StateLoading
		cmd := tea.Batch(loadCmd(m.source), m.spinner.Start())
		return m, cmd

	case key.Matches(k, m.keys.Debug):
		m.debug = !m.debug
		return m, nil

	case key.Matches(k, m.keys.Copy):
		it, ok := m.active().Selected()
		if !ok {
			return m, nil
		}
		return m, clipboard.Cmd(copyText(it))
	}
	return m.updateActive(k)
}

func (m Model) handleSearchKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case k.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(k, m.keys.Escape):
		m.header.ClearSearch()
		m.state = StateBrowsing
		if m.query.Search == "" {
			return m, nil
		}
		m.query.Search = ""
		cmd := m.refilter()
		return m, cmd

	case key.Matches(k, m.keys.Accept):
		m.header.StopSearch()
		m.state = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.header, cmd = m.header.Update(k)
	if q := m.header.Query(); q != m.query.Search {
		m.query.Search = q
		cmd = tea.Batch(cmd, m.refilter())
	}
	return m, cmd
}

func (m Model) handleDetailKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case k.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(k, m.keys.Escape), key.Matches(k, m.keys.Quit), key.Matches(k, m.keys.Open):
		m.detail.Close()
		m.state = StateBrowsing
		return m, nil
	case key.Matches(k, m.keys.Copy):
		return m, clipboard.Cmd(copyText(m.detail.Item()))
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(k)
	return m, cmd
}

// copyText is what the copy key puts on the clipboard.
func copyText(it client.Item) string {
	if it.Year > 0 {
		return fmt.Sprintf("%s (%d)", it.Title, it.Year)
	}
	return it.Title
}

// updateActive forwards msg to the visible library view.
func (m Model) updateActive(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.config.View == config.ViewList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

// -- Filtering ----------------------------------------------------------------

// refilter recomputes the visible sequence and hands it to both views. The
// selected item keeps the cursor when it survives the filter.
func (m *Model) refilter() tea.Cmd {
	var keep string
	if it, ok := m.active().Selected(); ok {
		keep = itemKey(it)
	}
	items := Apply(m.all, m.query)
	cursor := max(indexOf(items, keep), 0)

	heading := m.heading(len(items))
	var cmds []tea.Cmd
	for _, lib := range []*library.Model[client.Item]{&m.grid, &m.list} {
		cmds = append(cmds,
			lib.SetHeading(heading),
			lib.SetItems(items),
			lib.SetCursor(cursor),
		)
	}
	m.syncHeader()
	m.log.Debug("filter applied", "tab", Tabs[m.query.Tab].Label, "search", m.query.Search,
		"sort", m.query.Sort, "shown", len(items), "total", len(m.all))
	return tea.Batch(cmds...)
}

func (m Model) heading(n int) string {
	s := Tabs[m.query.Tab].Label + " · " + common.Plural(n, "title")
	if m.query.Search != "" {
		s += fmt.Sprintf(" matching %q", m.query.Search)
	}
	return style.Faint.Render(s)
}

// -- Sync ---------------------------------------------------------------------

func (m *Model) active() *library.Model[client.Item] {
	if m.config.View == config.ViewList {
		return &m.list
	}
	return &m.grid
}

func (m *Model) syncHeader() {
	labels := make([]string, len(Tabs))
	for i, t := range Tabs {
		labels[i] = t.Label
	}
	m.header.SetTabs(labels, m.query.Tab)
	m.header.SetSort(m.query.Sort.String())
}

func (m *Model) syncStatus() {
	m.status.SetDebug(m.debug)
	m.status.SetStats(m.active().Stats(), len(m.all))
	m.status.SetMessage("")
	switch m.state {
	case StateLoading:
		m.status.SetMessage(m.spinner.View())
		m.status.SetHelp(m.keys.Quit)
	case StateSearching:
		m.status.SetHelp(m.keys.searchHelp()...)
	case StateDetail:
		m.status.SetHelp(m.keys.detailHelp()...)
	default:
		m.status.SetHelp(m.keys.browseHelp()...)
	}
}

// saveConfig persists the theme and view choice.
func (m Model) saveConfig() tea.Cmd {
	if m.profileDir == "" {
		return nil
	}
	dir, cfg := m.profileDir, m.config
	return func() tea.Msg {
		return msg.ConfigSaved{Err: config.Save(dir, cfg)}
	}
}

// -- View ---------------------------------------------------------------------

// View returns the tea.View for the current frame.
// AltScreen and MouseMode are set on every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderView composes the full terminal frame as a string.
func (m Model) renderView() string {
	body := m.renderBody()
	if m.toasts.Len() > 0 {
		body = overlayBottom(body, m.toasts.View(m.layout.TermWidth))
	}
	return strings.Join([]string{m.header.View(), body, m.status.View()}, "\n")
}

func (m Model) renderBody() string {
	w, h := m.layout.BodyWidth, m.layout.BodyHeight
	switch {
	case m.state == StateDetail:
		return lipgloss.PlaceVertical(h, lipgloss.Top, m.detail.View())
	case m.state == StateLoading && len(m.all) == 0:
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, style.Hint.Render("Loading catalog…"))
	case m.active().Len() == 0:
		text := "No titles"
		if m.query.Search != "" || m.query.Tab != 0 {
			text = "No titles match · esc clears the search, tab changes kind"
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, style.Hint.Render(text))
	}
	lib := m.grid
	if m.config.View == config.ViewList {
		lib = m.list
	}
	return lib.View()
}

// overlayBottom replaces the last lines of body with overlay.
func overlayBottom(body, overlay string) string {
	lines := strings.Split(body, "\n")
	over := strings.Split(overlay, "\n")
	start := max(len(lines)-len(over), 0)
	for i, l := range over {
		if start+i < len(lines) {
			lines[start+i] = l
		}
	}
	return strings.Join(lines, "\n")
}
