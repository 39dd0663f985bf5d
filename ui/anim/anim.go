// Package anim provides the gradient spinner shown while a catalog loads.
package anim

import (
	"image/color"
	"math"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/marquee/style"
)

const (
	fps           = 12
	frameDuration = time.Second / fps
	// ellipsisFrames is how many frames each ellipsis state lasts.
	ellipsisFrames = 4
)

var glyphs = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var ellipsis = []string{"", ".", "..", "..."}

var lastID atomic.Int64

// TickMsg advances the spinner with the matching ID.
type TickMsg struct {
	ID  int64
	seq int
}

// Model is a braille spinner whose glyph color sweeps between the theme's
// gradient endpoints.
type Model struct {
	id       int64
	seq      int
	label    string
	spinning bool
	frame    int

	// frames are pre-rendered for the colors in from and to.
	from, to color.Color
	frames   []string
}

// New returns a stopped spinner with label.
func New(label string) Model {
	return Model{id: lastID.Add(1), label: label}
}

// SetLabel changes the text after the glyph.
func (m *Model) SetLabel(s string) { m.label = s }

// Spinning reports whether the spinner is running.
func (m Model) Spinning() bool { return m.spinning }

// Start runs the spinner and returns its first tick. Starting a running
// spinner returns nil so only one tick chain is ever live.
func (m *Model) Start() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	m.seq++
	m.frame = 0
	return m.tick()
}

// Tick returns the next frame command for a running spinner, or nil.
func (m Model) Tick() tea.Cmd {
	if !m.spinning {
		return nil
	}
	return m.tick()
}

// Stop halts the spinner. Ticks already scheduled are dropped.
func (m *Model) Stop() { m.spinning = false }

// Update advances one frame on a tick addressed to this spinner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	t, ok := msg.(TickMsg)
	if !ok || t.ID != m.id || t.seq != m.seq || !m.spinning {
		return m, nil
	}
	m.frame++
	return m, m.tick()
}

// View renders the glyph and label, or nothing when stopped.
func (m *Model) View() string {
	if !m.spinning {
		return ""
	}
	if m.frames == nil || m.from != style.GradColorA || m.to != style.GradColorB {
		m.render()
	}
	glyph := m.frames[m.frame%len(m.frames)]
	if m.label == "" {
		return glyph
	}
	dots := ellipsis[(m.frame/ellipsisFrames)%len(ellipsis)]
	return glyph + " " + style.Hint.Render(m.label+dots)
}

func (m Model) tick() tea.Cmd {
	id, seq := m.id, m.seq
	return tea.Tick(frameDuration, func(time.Time) tea.Msg {
		return TickMsg{ID: id, seq: seq}
	})
}

// render colors each glyph along a sine sweep so the gradient rocks back and
// forth instead of wrapping.
func (m *Model) render() {
	m.from, m.to = style.GradColorA, style.GradColorB
	n := len(glyphs)
	m.frames = make([]string, n)
	for i, g := range glyphs {
		t := math.Sin(math.Pi * float64(i) / float64(n-1))
		m.frames[i] = lipgloss.NewStyle().Foreground(style.LerpColor(m.from, m.to, t)).Render(g)
	}
}
