// Package library is the scrolling poster wall. It keeps a windowed grid
// engine in step with the terminal: resize and wheel events are coalesced
// into frames, only the visible rows (plus overscan) are rendered, and each
// freshly rendered row reports its real line count back to the engine.
//
// Collections at or below the configured threshold skip windowing and are
// rendered in full into a bubbles viewport.
package library

import (
	"log/slog"
	"math"
	"strings"
	"sync/atomic"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/marquee/ui/common"
	"github.com/miosa/marquee/ui/grid"
)

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

var lastID atomic.Int64

func nextID() int { return int(lastID.Add(1)) }

// ---------------------------------------------------------------------------
// Public interfaces
// ---------------------------------------------------------------------------

// RowContext carries the geometry a row is rendered against.
type RowContext struct {
	Width     int // content width in cells
	Columns   int
	ItemWidth int
	Gap       int
	Aspect    float64
	First     int // sequence index of the row's first item
	Cursor    int // selected sequence index
}

// RowRenderer renders one row of items. The result's line count is taken as
// the row's measured height, so it must include any gap lines below the row.
type RowRenderer[T any] interface {
	RenderRow(items []T, ctx RowContext) string
}

// RowRendererFunc adapts a function to RowRenderer.
type RowRendererFunc[T any] func(items []T, ctx RowContext) string

// RenderRow calls f.
func (f RowRendererFunc[T]) RenderRow(items []T, ctx RowContext) string { return f(items, ctx) }

// RowMeasuredMsg reports the rendered height of a row. Gen is the engine
// generation the row was rendered under.
type RowMeasuredMsg struct {
	id     int
	Gen    uint64
	Row    int
	Height int
}

// Stats is a snapshot of the layout, for the status bar.
type Stats struct {
	Items       int
	Columns     int
	Rows        int
	Visible     grid.Range
	Phase       grid.Phase
	Generation  uint64
	Virtualized bool
	Scroll      float64
	MaxScroll   float64
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option is a functional option for New.
type Option func(*settings)

type settings struct {
	log  *slog.Logger
	keys KeyMap
}

// WithLogger sets the logger shared with the grid engine.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(s *settings) { s.keys = k }
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is a windowed grid of T. Copies share the engine and row cache, so
// keep a single live copy the way bubbletea models are normally threaded.
type Model[T any] struct {
	id     int
	grid   *grid.Grid[string]
	key    func(T) string
	render RowRenderer[T]
	keys   KeyMap
	log    *slog.Logger

	items   []T
	cursor  int
	width   int
	height  int
	heading string
	margin  int

	// Rendered rows by index, valid for cacheGen only.
	rows     map[int]string
	cacheGen uint64

	frame frameSub
	// reveal keeps the cursor row in view while measurements settle.
	reveal bool

	// Fallback rendering for small collections.
	flat       viewport.Model
	flatStarts []int
	flatLines  int
}

// New returns an empty model. keyOf must return a stable, unique key per
// item; it is used to carry measurements across rebuilds.
func New[T any](cfg grid.Config, keyOf func(T) string, r RowRenderer[T], opts ...Option) (Model[T], error) {
	s := settings{log: slog.New(slog.DiscardHandler), keys: DefaultKeyMap()}
	for _, o := range opts {
		o(&s)
	}
	g, err := grid.New[string](cfg, grid.WithLogger(s.log))
	if err != nil {
		return Model[T]{}, err
	}
	id := nextID()
	return Model[T]{
		id:     id,
		grid:   g,
		key:    keyOf,
		render: r,
		keys:   s.keys,
		log:    s.log,
		rows:   make(map[int]string),
		frame:  frameSub{id: id},
		flat:   viewport.New(),
	}, nil
}

// SetItems replaces the collection. The cursor is clamped, not reset.
func (m *Model[T]) SetItems(items []T) tea.Cmd {
	m.items = items
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = m.key(it)
	}
	m.grid.SetItems(keys)
	m.cursor = min(m.cursor, max(len(items)-1, 0))
	clear(m.rows)
	if !m.grid.Virtualized() {
		m.rebuildFlat()
		m.revealFlat()
	}
	return m.frame.Start()
}

// SetSize sets the outer size. One column on the right is kept for the
// scrollbar.
func (m *Model[T]) SetSize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	cw := m.contentWidth()
	m.grid.QueueResize(float64(cw), float64(height), float64(m.margin))
	m.flat.SetWidth(cw)
	m.flat.SetHeight(height)
	if !m.grid.Virtualized() {
		m.rebuildFlat()
		m.revealFlat()
	}
	return m.frame.Start()
}

// SetHeading sets a block drawn above the first row. It scrolls with the
// content; its height is the grid's scroll margin.
func (m *Model[T]) SetHeading(s string) tea.Cmd {
	if s == m.heading {
		return nil
	}
	m.heading = s
	m.margin = 0
	if s != "" {
		m.margin = lipgloss.Height(s)
	}
	if m.width > 0 {
		m.grid.QueueResize(float64(m.contentWidth()), float64(m.height), float64(m.margin))
	}
	if !m.grid.Virtualized() {
		m.rebuildFlat()
	}
	return m.frame.Start()
}

// SetCursor selects item i, clamped to the collection, and scrolls it into
// view.
func (m *Model[T]) SetCursor(i int) tea.Cmd {
	n := len(m.items)
	if n == 0 {
		m.cursor = 0
		return nil
	}
	i = min(max(i, 0), n-1)
	if i == m.cursor {
		return nil
	}
	prev := m.cursor
	m.cursor = i

	if !m.grid.Virtualized() {
		m.rebuildFlat()
		m.revealFlat()
		return nil
	}
	row := m.grid.RowForItem(i)
	if row < 0 {
		return nil
	}
	delete(m.rows, m.grid.RowForItem(prev))
	delete(m.rows, row)
	m.reveal = true
	m.scrollToCursor()
	return m.frame.Start()
}

func (m *Model[T]) scrollToCursor() {
	switch row := m.grid.RowForItem(m.cursor); {
	case row < 0:
	case row == 0:
		m.grid.ScrollTo(0)
	default:
		m.grid.ScrollToRow(row)
	}
}

// Invalidate drops every rendered row, e.g. after a theme change.
func (m *Model[T]) Invalidate() tea.Cmd {
	clear(m.rows)
	if !m.grid.Virtualized() {
		m.rebuildFlat()
	}
	return m.frame.Start()
}

// Items returns the current collection.
func (m Model[T]) Items() []T { return m.items }

// Len returns the number of items.
func (m Model[T]) Len() int { return len(m.items) }

// Cursor returns the selected index.
func (m Model[T]) Cursor() int { return m.cursor }

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor], true
}

// Grid exposes the engine for inspection.
func (m Model[T]) Grid() *grid.Grid[string] { return m.grid }

// KeyMap returns the active bindings.
func (m Model[T]) KeyMap() KeyMap { return m.keys }

// Stats returns a snapshot of the current layout.
func (m Model[T]) Stats() Stats {
	g := m.grid
	s := Stats{
		Items:       g.Len(),
		Phase:       g.Phase(),
		Generation:  g.Generation(),
		Virtualized: g.Virtualized(),
	}
	if !s.Virtualized {
		s.Columns = m.flatColumns()
		s.Rows = len(m.flatStarts)
		s.Visible = grid.EmptyRange
		s.Scroll = float64(m.flat.YOffset())
		s.MaxScroll = float64(max(m.flatLines-m.height, 0))
		return s
	}
	s.Columns = g.Columns()
	s.Rows = g.RowCount()
	s.Visible = g.VisibleRange()
	s.Scroll = g.Viewport().ScrollOffset
	s.MaxScroll = g.MaxScroll()
	return s
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles frame ticks, row measurements, cursor keys and the mouse
// wheel.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case frameMsg:
		if m.frame.accepts(msg) {
			cmd = m.onFrame()
		}
	case RowMeasuredMsg:
		if msg.id == m.id && m.grid.Measure(msg.Gen, msg.Row, float64(msg.Height)) {
			m.log.Debug("row measured", "row", msg.Row, "height", msg.Height, "phase", m.grid.Phase())
			cmd = m.frame.Start()
		}
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case tea.MouseWheelMsg:
		delta := 0
		switch msg.Button {
		case tea.MouseWheelUp:
			delta = -wheelStep
		case tea.MouseWheelDown:
			delta = wheelStep
		}
		if delta == 0 {
			break
		}
		if !m.grid.Virtualized() {
			m.flat.SetYOffset(m.flat.YOffset() + delta)
			break
		}
		m.reveal = false
		m.grid.QueueScrollBy(float64(delta))
		cmd = m.frame.Start()
	}
	return m, cmd
}

func (m *Model[T]) handleKey(k tea.KeyPressMsg) tea.Cmd {
	n := len(m.items)
	if n == 0 {
		return nil
	}
	cols := max(m.columns(), 1)
	switch {
	case key.Matches(k, m.keys.Up):
		if m.cursor >= cols {
			return m.SetCursor(m.cursor - cols)
		}
	case key.Matches(k, m.keys.Down):
		switch {
		case m.cursor+cols < n:
			return m.SetCursor(m.cursor + cols)
		case m.cursor/cols < (n-1)/cols:
			return m.SetCursor(n - 1)
		}
	case key.Matches(k, m.keys.Left):
		return m.SetCursor(m.cursor - 1)
	case key.Matches(k, m.keys.Right):
		return m.SetCursor(m.cursor + 1)
	case key.Matches(k, m.keys.PageUp):
		return m.SetCursor(m.cursor - m.pageRows()*cols)
	case key.Matches(k, m.keys.PageDown):
		return m.SetCursor(m.cursor + m.pageRows()*cols)
	case key.Matches(k, m.keys.Home):
		return m.SetCursor(0)
	case key.Matches(k, m.keys.End):
		return m.SetCursor(n - 1)
	}
	return nil
}

// onFrame applies queued events and renders rows that came into view. The
// frame keeps ticking while new rows are being measured.
func (m *Model[T]) onFrame() tea.Cmd {
	m.grid.Flush()
	if !m.grid.Virtualized() {
		m.frame.Stop()
		return nil
	}
	if m.reveal {
		m.scrollToCursor()
	}
	cmds := m.prepare()
	if len(cmds) == 0 && !m.grid.Pending() {
		m.reveal = false
		m.frame.Stop()
		return nil
	}
	return tea.Batch(append(cmds, m.frame.tick())...)
}

// prepare renders every visible row missing from the cache and returns a
// measurement for each one whose height disagrees with the engine.
func (m *Model[T]) prepare() []tea.Cmd {
	m.syncCache()
	r := m.grid.VisibleRange()
	if r.Empty() {
		return nil
	}
	gen := m.grid.Generation()
	var cmds []tea.Cmd
	for i := r.Start; i <= r.End; i++ {
		if _, ok := m.rows[i]; ok {
			continue
		}
		out := m.renderRow(i)
		m.rows[i] = out
		h := lipgloss.Height(out)
		if !m.grid.RowMeasured(i) || math.Abs(float64(h)-m.grid.RowHeight(i)) > grid.Epsilon {
			cmds = append(cmds, m.measure(gen, i, h))
		}
	}
	return cmds
}

func (m Model[T]) measure(gen uint64, row, height int) tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return RowMeasuredMsg{id: id, Gen: gen, Row: row, Height: height}
	}
}

func (m *Model[T]) syncCache() {
	if gen := m.grid.Generation(); gen != m.cacheGen {
		clear(m.rows)
		m.cacheGen = gen
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the window: the mounted rows placed at their offsets, and a
// scrollbar column.
func (m Model[T]) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if !m.grid.Virtualized() {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			m.flat.View(),
			common.Scrollbar(m.height, m.flatLines, m.flat.YOffset()),
		)
	}

	top := int(math.Round(m.grid.Viewport().ScrollOffset))
	lines := make([]string, m.height)
	place := func(y0 int, block string) {
		for k, l := range strings.Split(block, "\n") {
			if y := y0 + k - top; y >= 0 && y < len(lines) {
				lines[y] = l
			}
		}
	}
	if m.heading != "" {
		place(0, m.heading)
	}
	r := m.grid.VisibleRange()
	fresh := m.cacheGen == m.grid.Generation()
	for i := r.Start; i <= r.End; i++ {
		out, ok := m.rows[i]
		if !ok || !fresh {
			out = m.renderRow(i)
		}
		place(m.margin+int(math.Round(m.grid.RowOffset(i))), out)
	}

	cw := m.contentWidth()
	for i, l := range lines {
		lines[i] = common.PadRight(ansi.Truncate(l, cw, ""), cw)
	}
	total := m.margin + int(math.Ceil(m.grid.TotalHeight()))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(lines, "\n"),
		common.Scrollbar(m.height, total, top),
	)
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (m Model[T]) contentWidth() int { return max(m.width-1, 0) }

func (m Model[T]) columns() int {
	if m.grid.Virtualized() {
		return m.grid.Columns()
	}
	return m.flatColumns()
}

func (m Model[T]) flatColumns() int {
	if m.contentWidth() <= 0 {
		return 0
	}
	return m.grid.Config().Columns(float64(m.contentWidth()))
}

// pageRows is how many rows of average height fit in the window.
func (m Model[T]) pageRows() int {
	var avg float64
	if m.grid.Virtualized() {
		if n := m.grid.RowCount(); n > 0 {
			avg = m.grid.TotalHeight() / float64(n)
		}
	} else if n := len(m.flatStarts); n > 0 {
		avg = float64(m.flatLines-m.margin) / float64(n)
	}
	if avg <= 0 {
		return 1
	}
	return max(int(float64(m.height)/avg), 1)
}

func (m Model[T]) context(width, cols int) RowContext {
	cfg := m.grid.Config()
	return RowContext{
		Width:     width,
		Columns:   cols,
		ItemWidth: int(grid.ItemWidth(float64(width), cols, cfg.Gap)),
		Gap:       int(cfg.Gap),
		Aspect:    cfg.AspectRatio,
		Cursor:    m.cursor,
	}
}

func (m Model[T]) renderRow(i int) string {
	row := m.grid.Row(i)
	ctx := m.context(int(m.grid.Viewport().Width), m.grid.Columns())
	ctx.First = row.Start
	return m.render.RenderRow(grid.Slice(m.items, row), ctx)
}

// rebuildFlat renders the whole collection into the fallback viewport.
func (m *Model[T]) rebuildFlat() {
	cw, cols := m.contentWidth(), m.flatColumns()
	m.flatStarts = m.flatStarts[:0]
	m.flatLines = 0
	if cw <= 0 || cols == 0 {
		m.flat.SetContent("")
		return
	}

	var parts []string
	if m.heading != "" {
		parts = append(parts, m.heading)
		m.flatLines = m.margin
	}
	ctx := m.context(cw, cols)
	for _, row := range grid.GroupRows(len(m.items), cols) {
		ctx.First = row.Start
		out := m.render.RenderRow(grid.Slice(m.items, row), ctx)
		m.flatStarts = append(m.flatStarts, m.flatLines)
		m.flatLines += lipgloss.Height(out)
		parts = append(parts, out)
	}
	m.flat.SetContent(strings.Join(parts, "\n"))
}

// revealFlat scrolls the fallback viewport so the cursor row is visible.
func (m *Model[T]) revealFlat() {
	cols := m.flatColumns()
	if cols == 0 || len(m.flatStarts) == 0 {
		return
	}
	row := min(m.cursor/cols, len(m.flatStarts)-1)
	top := m.flatStarts[row]
	if row == 0 {
		top = 0
	}
	bottom := m.flatLines
	if row+1 < len(m.flatStarts) {
		bottom = m.flatStarts[row+1]
	}
	switch off := m.flat.YOffset(); {
	case top < off:
		m.flat.SetYOffset(top)
	case bottom > off+m.height:
		m.flat.SetYOffset(bottom - m.height)
	}
}
