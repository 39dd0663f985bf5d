// Package toast provides auto-dismissing notification toasts.
package toast

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/marquee/style"
)

// Level classifies toast severity.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

const (
	maxToasts = 3
	ttl       = 4 * time.Second
)

// ExpireMsg asks the toasts model to drop expired entries.
type ExpireMsg struct{}

type toast struct {
	message string
	level   Level
	expiry  time.Time
}

// Model manages a queue of auto-dismissing toast notifications.
type Model struct {
	queue []toast
	now   func() time.Time
}

// New creates an empty Model.
func New() Model {
	return Model{now: time.Now}
}

// Add enqueues a toast and returns the command that expires it. Oldest
// toasts are dropped when the queue exceeds maxToasts.
func (m *Model) Add(message string, level Level) tea.Cmd {
	m.queue = append(m.queue, toast{
		message: message,
		level:   level,
		expiry:  m.clock().Add(ttl),
	})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return ExpireMsg{} })
}

// Update prunes expired toasts on ExpireMsg.
func (m Model) Update(msg tea.Msg) Model {
	if _, ok := msg.(ExpireMsg); !ok {
		return m
	}
	now := m.clock()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
	return m
}

// Len returns the number of visible toasts.
func (m Model) Len() int { return len(m.queue) }

// View renders visible toasts as right-aligned colored lines.
func (m Model) View(termWidth int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, col := iconColor(t.level)
		rendered := lipgloss.NewStyle().Foreground(col).Background(style.PanelBgColor).Render(fmt.Sprintf(" %s %s ", icon, t.message))
		pad := max(termWidth-lipgloss.Width(rendered), 0)
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func (m Model) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

func iconColor(level Level) (string, color.Color) {
	switch level {
	case Warning:
		return "⚠", style.Warning
	case Error:
		return "✘", style.Error
	default:
		return "✓", style.Success
	}
}
