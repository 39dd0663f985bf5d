package grid

import (
	"fmt"
	"log/slog"
)

// Phase is the layout state of a grid instance.
type Phase int

const (
	PhaseUninitialized Phase = iota // no geometry yet
	PhaseMeasuring                  // container reported zero size
	PhaseLaidOut                    // columns resolved, heights all estimated
	PhaseSettling                   // some rows measured, visible rows still pending
	PhaseStable                     // every visible row measured
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseMeasuring:
		return "measuring"
	case PhaseLaidOut:
		return "laid-out"
	case PhaseSettling:
		return "settling"
	case PhaseStable:
		return "stable"
	default:
		return "unknown"
	}
}

// Option configures New.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

// WithLogger routes rebuild and discard diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// rowKey identifies a row by its content so measurements survive a rebuild
// that leaves the row's items unchanged.
type rowKey[K comparable] struct {
	first, last K
	n           int
}

type pendingEvents struct {
	resize                bool
	width, height, margin float64

	// scroll is an absolute target; delta is a relative move applied after
	// it. A resize drops the target because the rebuild re-anchors.
	scroll bool
	offset float64
	nudge  bool
	delta  float64
}

// Grid coordinates resize, scroll and measurement events for one windowed
// collection keyed by K. It is not safe for concurrent use; every method is
// expected to run on the UI goroutine.
type Grid[K comparable] struct {
	cfg Config
	log *slog.Logger

	keys    []K
	virtual bool

	vp      Viewport
	columns int
	rows    []Row
	table   *HeightTable
	visible Range
	gen     uint64
	phase   Phase

	// Measured heights by row content. Only valid for the width they were
	// taken at; a width change clears it.
	cache map[rowKey[K]]float64

	pending pendingEvents
}

// New validates cfg and returns an empty grid. Misconfiguration is a caller
// bug and fails here rather than at the first resize.
func New[K comparable](cfg Config, opts ...Option) (*Grid[K], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new grid: %w", err)
	}
	s := settings{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(&s)
	}
	cfg.Breakpoints = append([]Breakpoint(nil), cfg.Breakpoints...)
	return &Grid[K]{
		cfg:     cfg,
		log:     s.logger,
		visible: EmptyRange,
		cache:   make(map[rowKey[K]]float64),
	}, nil
}

// ---------------------------------------------------------------------------
// Inputs
// ---------------------------------------------------------------------------

// SetItems replaces the ordered item sequence. Rows and heights are rebuilt
// and the generation advances, so measurements still in flight for the old
// sequence are discarded when they arrive.
func (g *Grid[K]) SetItems(keys []K) {
	g.keys = append(g.keys[:0:0], keys...)
	g.virtual = Virtualize(len(g.keys), g.cfg.VirtualizeThreshold)

	if !g.virtual {
		g.rows = nil
		g.table = nil
		g.gen++
		g.visible = EmptyRange
		if g.vp.Width > 0 {
			g.phase = PhaseLaidOut
		}
		g.log.Debug("grid fallback", "items", len(g.keys), "threshold", g.cfg.VirtualizeThreshold, "gen", g.gen)
		return
	}
	if g.columns == 0 {
		// Not laid out yet; the first usable Resize builds the rows.
		return
	}
	g.rebuild()
	g.clampScroll()
	g.recompute()
}

// Resize applies a new container geometry. Zero-sized containers are
// ignored so the last good layout survives until real dimensions arrive.
// It reports whether the layout changed.
func (g *Grid[K]) Resize(width, height, margin float64) bool {
	if width <= 0 || height <= 0 {
		if g.phase == PhaseUninitialized {
			g.phase = PhaseMeasuring
		}
		g.log.Debug("grid resize skipped", "width", width, "height", height)
		return false
	}

	widthChanged := width != g.vp.Width

	if !g.virtual {
		g.vp.Width, g.vp.Height, g.vp.ScrollMargin = width, height, margin
		g.columns = g.cfg.Columns(width)
		g.phase = PhaseLaidOut
		if widthChanged {
			clear(g.cache)
		}
		return widthChanged
	}
	if !widthChanged && g.table != nil {
		g.vp.Height, g.vp.ScrollMargin = height, margin
		g.clampScroll()
		g.recompute()
		return false
	}

	// The anchor is read against the old geometry, margin included.
	anchorItem, frac, anchored := g.anchor()
	g.vp.Width, g.vp.Height, g.vp.ScrollMargin = width, height, margin
	cols := g.cfg.Columns(width)
	if cols != g.columns {
		g.log.Debug("grid columns changed", "from", g.columns, "to", cols, "width", width)
	}
	g.columns = cols
	clear(g.cache)
	g.rebuild()

	if anchored {
		row := g.RowForItem(anchorItem)
		g.vp.ScrollOffset = g.vp.ScrollMargin + g.table.Offset(row) + frac*g.table.Height(row)
	}
	g.clampScroll()
	g.recompute()
	return true
}

// ScrollTo sets the scroll offset of the scrollable ancestor.
func (g *Grid[K]) ScrollTo(offset float64) {
	g.vp.ScrollOffset = offset
	g.clampScroll()
	g.recompute()
}

// ScrollBy moves the scroll offset by delta.
func (g *Grid[K]) ScrollBy(delta float64) {
	g.ScrollTo(g.vp.ScrollOffset + delta)
}

// ScrollToRow scrolls the minimum distance that brings row i fully into view.
// Rows taller than the viewport are aligned to the top.
func (g *Grid[K]) ScrollToRow(i int) {
	if g.table == nil || i < 0 || i >= g.table.Len() {
		return
	}
	top := g.table.Offset(i)
	bottom := top + g.table.Height(i)
	switch {
	case top < g.vp.Top() || bottom-top > g.vp.Height:
		g.ScrollTo(g.vp.ScrollMargin + top)
	case bottom > g.vp.Bottom():
		g.ScrollTo(g.vp.ScrollMargin + bottom - g.vp.Height)
	}
}

// QueueResize records a resize to be applied by the next Flush. Only the
// latest value is kept. An absolute scroll queued earlier is dropped: it was
// computed against the old layout, and the resize keeps the anchor item in
// place instead.
func (g *Grid[K]) QueueResize(width, height, margin float64) {
	g.pending.resize = true
	g.pending.width, g.pending.height, g.pending.margin = width, height, margin
	g.pending.scroll = false
}

// QueueScroll records a scroll offset to be applied by the next Flush. It
// replaces any relative scroll queued before it.
func (g *Grid[K]) QueueScroll(offset float64) {
	g.pending.scroll = true
	g.pending.offset = offset
	g.pending.nudge, g.pending.delta = false, 0
}

// QueueScrollBy queues a relative scroll. Several wheel events inside one
// frame add up, and the sum is applied after any queued resize.
func (g *Grid[K]) QueueScrollBy(delta float64) {
	g.pending.nudge = true
	g.pending.delta += delta
}

// Pending reports whether queued events are waiting for Flush.
func (g *Grid[K]) Pending() bool {
	return g.pending.resize || g.pending.scroll || g.pending.nudge
}

// Flush applies queued events once, in order: resize, absolute scroll,
// relative scroll. It reports whether there was anything to apply.
func (g *Grid[K]) Flush() bool {
	p := g.pending
	g.pending = pendingEvents{}
	if p.resize {
		g.Resize(p.width, p.height, p.margin)
	}
	if p.scroll {
		g.ScrollTo(p.offset)
	}
	if p.nudge {
		g.ScrollBy(p.delta)
	}
	return p.resize || p.scroll || p.nudge
}

// Measure records the real height of row, as rendered during generation gen.
// Reports from an older generation, for rows that no longer exist, or that
// repeat the stored value are dropped. It reports whether the table changed.
//
// When the corrected row lies wholly above the visible window the scroll
// offset moves by the same delta, so the rows on screen stay put.
func (g *Grid[K]) Measure(gen uint64, row int, height float64) bool {
	if !g.virtual || g.table == nil || gen != g.gen {
		g.log.Debug("grid measurement stale", "row", row, "gen", gen, "current", g.gen)
		return false
	}
	if row < 0 || row >= g.table.Len() {
		g.log.Debug("grid measurement out of range", "row", row, "rows", g.table.Len())
		return false
	}

	old := g.table.Height(row)
	top := g.vp.Top()
	above := top > 0 && g.table.Offset(row)+old <= top
	if !g.table.Set(row, height) {
		return false
	}
	g.cache[g.keyOf(g.rows[row])] = g.table.Height(row)
	if above {
		g.vp.ScrollOffset += g.table.Height(row) - old
	}
	g.clampScroll()
	g.recompute()
	return true
}

// ---------------------------------------------------------------------------
// Outputs
// ---------------------------------------------------------------------------

// Config returns the grid's configuration.
func (g *Grid[K]) Config() Config { return g.cfg }

// Len returns the number of items.
func (g *Grid[K]) Len() int { return len(g.keys) }

// Key returns the key of item i.
func (g *Grid[K]) Key(i int) K { return g.keys[i] }

// Virtualized reports whether the current items are windowed. When false the
// caller renders every item directly and the row outputs are empty.
func (g *Grid[K]) Virtualized() bool { return g.virtual }

// Columns returns the resolved column count, or 0 before the first usable
// resize.
func (g *Grid[K]) Columns() int { return g.columns }

// Rows returns the current row grouping. The slice must not be modified.
func (g *Grid[K]) Rows() []Row { return g.rows }

// RowCount returns the number of rows.
func (g *Grid[K]) RowCount() int { return len(g.rows) }

// Row returns row i.
func (g *Grid[K]) Row(i int) Row { return g.rows[i] }

// RowForItem returns the row holding item i, or -1.
func (g *Grid[K]) RowForItem(i int) int {
	if g.columns == 0 || i < 0 || i >= len(g.keys) {
		return -1
	}
	return i / g.columns
}

// RowOffset returns the container-relative top of row i, used to position
// mounted rows.
func (g *Grid[K]) RowOffset(i int) float64 {
	if g.table == nil {
		return 0
	}
	return g.table.Offset(i)
}

// RowHeight returns the current height of row i.
func (g *Grid[K]) RowHeight(i int) float64 {
	if g.table == nil || i < 0 || i >= g.table.Len() {
		return 0
	}
	return g.table.Height(i)
}

// RowMeasured reports whether row i holds a real measurement.
func (g *Grid[K]) RowMeasured(i int) bool {
	if g.table == nil || i < 0 || i >= g.table.Len() {
		return false
	}
	return g.table.Measured(i)
}

// TotalHeight returns the sum of all row heights, for sizing scroll space.
func (g *Grid[K]) TotalHeight() float64 {
	if g.table == nil {
		return 0
	}
	return g.table.Total()
}

// MaxScroll returns the largest useful scroll offset.
func (g *Grid[K]) MaxScroll() float64 {
	return max(g.vp.ScrollMargin+g.TotalHeight()-g.vp.Height, 0)
}

// VisibleRange returns the rows to mount.
func (g *Grid[K]) VisibleRange() Range { return g.visible }

// Viewport returns the current geometry and scroll position.
func (g *Grid[K]) Viewport() Viewport { return g.vp }

// Generation returns the rebuild counter measurements must echo back.
func (g *Grid[K]) Generation() uint64 { return g.gen }

// Phase returns the layout state.
func (g *Grid[K]) Phase() Phase { return g.phase }

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (g *Grid[K]) rebuild() {
	g.rows = GroupRows(len(g.keys), g.columns)
	g.table = NewHeightTable(len(g.rows), g.cfg.EstimateRowHeight(g.vp.Width, g.columns))
	reused := 0
	for i, r := range g.rows {
		if h, ok := g.cache[g.keyOf(r)]; ok {
			g.table.Set(i, h)
			reused++
		}
	}
	g.gen++
	g.phase = PhaseLaidOut
	g.log.Debug("grid rebuilt",
		"items", len(g.keys),
		"columns", g.columns,
		"rows", len(g.rows),
		"reused", reused,
		"gen", g.gen,
	)
}

// anchor returns the first item of the row at the top of the window and how
// far into that row the window starts. ok is false when the window is at or
// above the container start, where the raw offset is kept as is.
func (g *Grid[K]) anchor() (item int, frac float64, ok bool) {
	if g.table == nil || g.table.Len() == 0 || g.vp.Top() <= 0 {
		return 0, 0, false
	}
	top := g.vp.Top()
	row := g.table.RowAt(top)
	if h := g.table.Height(row); h > 0 {
		frac = min(max((top-g.table.Offset(row))/h, 0), 1)
	}
	return g.rows[row].Start, frac, true
}

func (g *Grid[K]) clampScroll() {
	if !g.virtual || g.table == nil {
		return
	}
	g.vp.ScrollOffset = min(max(g.vp.ScrollOffset, 0), g.MaxScroll())
}

func (g *Grid[K]) recompute() {
	if !g.virtual || g.table == nil {
		g.visible = EmptyRange
		return
	}
	g.visible = ComputeVisibleRange(g.table, g.vp, g.cfg.Overscan)
	g.updatePhase()
}

func (g *Grid[K]) updatePhase() {
	if g.table.MeasuredCount() == 0 {
		g.phase = PhaseLaidOut
		return
	}
	for i := g.visible.Start; i <= g.visible.End; i++ {
		if !g.table.Measured(i) {
			g.phase = PhaseSettling
			return
		}
	}
	g.phase = PhaseStable
}

func (g *Grid[K]) keyOf(r Row) rowKey[K] {
	return rowKey[K]{first: g.keys[r.Start], last: g.keys[r.End-1], n: r.Len()}
}
