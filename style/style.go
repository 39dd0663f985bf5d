package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors start as the dark theme. SetTheme replaces them.
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	PanelBgColor     color.Color = lipgloss.Color("#111827")
	SelectionBgColor color.Color = lipgloss.Color("#312E81")

	// Gradient endpoints, violet to cyan in the dark theme.
	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Base styles, rebuilt by rebuildStyles on every theme change.
var (
	Faint lipgloss.Style
	Hint  lipgloss.Style

	// Header
	HeaderSeparator lipgloss.Style
	TabActive       lipgloss.Style
	TabInactive     lipgloss.Style
	SearchPrompt    lipgloss.Style

	// -------------------------------------------------------------------------
	// Poster cards
	// -------------------------------------------------------------------------

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	CardRating   lipgloss.Style

	// -------------------------------------------------------------------------
	// List rows
	// -------------------------------------------------------------------------

	ListRow      lipgloss.Style
	ListSelected lipgloss.Style
	ListKind     lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusPhase lipgloss.Style

	// Detail pane
	DetailBorder lipgloss.Style

	// Help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	PanelBgColor = t.PanelBg
	SelectionBgColor = t.SelectionBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Faint = lipgloss.NewStyle().Foreground(Muted)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	HeaderSeparator = lipgloss.NewStyle().Foreground(Border)
	TabActive = lipgloss.NewStyle().Foreground(Primary).Bold(true).Underline(true)
	TabInactive = lipgloss.NewStyle().Foreground(Muted)
	SearchPrompt = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
	CardSelected = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(Primary)
	CardTitle = lipgloss.NewStyle().Bold(true)
	CardMeta = lipgloss.NewStyle().Foreground(Muted)
	CardRating = lipgloss.NewStyle().Foreground(Warning)

	ListRow = lipgloss.NewStyle().PaddingLeft(1)
	ListSelected = lipgloss.NewStyle().
		PaddingLeft(1).
		Background(SelectionBgColor).
		Bold(true)
	ListKind = lipgloss.NewStyle().Foreground(Secondary)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusKey = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)
	StatusPhase = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	DetailBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
}
