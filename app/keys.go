package app

import "charm.land/bubbles/v2/key"

// KeyMap defines all global keybindings. Cursor movement lives in the
// library view's own key map.
type KeyMap struct {
	// Global
	Quit   key.Binding
	Escape key.Binding

	// Browsing
	Search     key.Binding
	Open       key.Binding
	ToggleView key.Binding
	Theme      key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Sort       key.Binding
	Reload     key.Binding
	Debug      key.Binding
	Copy       key.Binding

	// Searching
	Accept key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "grid/list"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "kind"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev kind"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "layout info"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy title"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
	}
}

// browseHelp is the short help shown while browsing.
func (k KeyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.ToggleView, k.NextTab, k.Sort, k.Theme, k.Quit}
}

// searchHelp is the short help shown while the search box has focus.
func (k KeyMap) searchHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Escape}
}

// detailHelp is the short help shown with the detail pane open.
func (k KeyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Escape, k.Quit}
}
