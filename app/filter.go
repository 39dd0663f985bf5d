package app

import (
	"cmp"
	"slices"
	"strings"

	"github.com/miosa/marquee/client"
)

// Tab is one kind filter shown in the header.
type Tab struct {
	Label string
	Kind  client.Kind // empty matches every kind
}

// Tabs are the kind filters in header order.
var Tabs = []Tab{
	{Label: "All"},
	{Label: "Movies", Kind: client.KindMovie},
	{Label: "Shows", Kind: client.KindShow},
}

// SortOrder is the order of the filtered sequence.
type SortOrder int

const (
	SortTitle  SortOrder = iota // A→Z
	SortYear                    // newest first
	SortRating                  // best first
)

func (s SortOrder) String() string {
	switch s {
	case SortTitle:
		return "title"
	case SortYear:
		return "year"
	case SortRating:
		return "rating"
	default:
		return "unknown"
	}
}

// Next cycles title → year → rating → title.
func (s SortOrder) Next() SortOrder {
	return (s + 1) % 3
}

// Query is the full filter/sort state.
type Query struct {
	Tab    int
	Search string
	Sort   SortOrder
}

// Apply returns the items matching q in q's order. The input is not modified.
// Search is case-insensitive and every word must appear in the title.
func Apply(items []client.Item, q Query) []client.Item {
	var kind client.Kind
	if q.Tab > 0 && q.Tab < len(Tabs) {
		kind = Tabs[q.Tab].Kind
	}
	words := strings.Fields(strings.ToLower(q.Search))

	out := make([]client.Item, 0, len(items))
	for _, it := range items {
		if kind != "" && it.Kind != kind {
			continue
		}
		if !matches(strings.ToLower(it.Title), words) {
			continue
		}
		out = append(out, it)
	}
	slices.SortStableFunc(out, compareBy(q.Sort))
	return out
}

func matches(title string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(title, w) {
			return false
		}
	}
	return true
}

func compareBy(s SortOrder) func(a, b client.Item) int {
	byTitle := func(a, b client.Item) int {
		return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
	switch s {
	case SortYear:
		return func(a, b client.Item) int {
			return cmp.Or(cmp.Compare(b.Year, a.Year), byTitle(a, b))
		}
	case SortRating:
		return func(a, b client.Item) int {
			return cmp.Or(cmp.Compare(b.Rating, a.Rating), byTitle(a, b))
		}
	default:
		return func(a, b client.Item) int {
			return cmp.Or(byTitle(a, b), cmp.Compare(a.Year, b.Year))
		}
	}
}

// indexOf returns the position of the item whose itemKey is key, or -1. IDs
// are only unique within a kind.
func indexOf(items []client.Item, key string) int {
	return slices.IndexFunc(items, func(it client.Item) bool { return itemKey(it) == key })
}
