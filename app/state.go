package app

// State represents the current application state.
type State int

const (
	StateLoading   State = iota // Waiting for the catalog
	StateBrowsing               // Moving around the grid or list
	StateSearching              // Search box has focus
	StateDetail                 // Detail pane open
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateBrowsing:
		return "browsing"
	case StateSearching:
		return "searching"
	case StateDetail:
		return "detail"
	default:
		return "unknown"
	}
}
