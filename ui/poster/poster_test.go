package poster

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/miosa/marquee/client"
)

func item(title string) client.Item {
	return client.Item{ID: "id-" + title, Title: title, Kind: client.KindMovie, Year: 1999, Rating: 7.8, Runtime: 120}
}

// ---------------------------------------------------------------------------
// Truncate / wrap
// ---------------------------------------------------------------------------

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Hello World", 20, "Hello World"},
		{"Hello World", 8, "Hello W…"},
		{"日本語のタイトル", 7, "日本語…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "%q/%d", tt.in, tt.width)
	}
}

func TestWrapTitle(t *testing.T) {
	assert.Equal(t, []string{"Short"}, wrapTitle("Short", 10))
	assert.Equal(t, []string{"The Quick", "Brown Fox"}, wrapTitle("The Quick Brown Fox", 10))
	assert.Equal(t, []string{"The Quick", "Brown Fox…"}, wrapTitle("The Quick Brown Fox Jumps", 10))
	assert.Equal(t, []string{"Supercali…"}, wrapTitle("Supercalifragilistic", 10))
}

// ---------------------------------------------------------------------------
// Card / Row
// ---------------------------------------------------------------------------

func TestCard_ExactWidth(t *testing.T) {
	for _, w := range []int{6, 12, 30, 41} {
		card := Card(item("Paper Harbor"), w, 1.5, false)
		assert.Equal(t, w, lipgloss.Width(card), "width %d", w)
	}
}

func TestCard_HeightTracksWidthAndTitle(t *testing.T) {
	short := Card(item("Tide"), 30, 1.5, false)
	// 2 border + 15 art + 1 title + 1 meta
	assert.Equal(t, 19, lipgloss.Height(short))

	long := Card(item("The Extraordinarily Long Northern Lantern"), 30, 1.5, false)
	assert.Equal(t, 20, lipgloss.Height(long))
}

func TestCard_SelectedSameSize(t *testing.T) {
	a := Card(item("Tide"), 24, 1.5, false)
	b := Card(item("Tide"), 24, 1.5, true)
	assert.Equal(t, lipgloss.Width(a), lipgloss.Width(b))
	assert.Equal(t, lipgloss.Height(a), lipgloss.Height(b))
	assert.NotEqual(t, a, b)
}

func TestRow_GapAndHeight(t *testing.T) {
	items := []client.Item{item("Tide"), item("The Extraordinarily Long Northern Lantern"), item("Orchard")}
	row := Row(items, 0, -1, 30, 1, 1.5)
	assert.Equal(t, 3*30+2, lipgloss.Width(row))
	// tallest card (wrapped title) plus one gap line
	assert.Equal(t, 21, lipgloss.Height(row))

	noGap := Row(items[:1], 0, -1, 30, 0, 1.5)
	assert.Equal(t, 19, lipgloss.Height(noGap))
}

// ---------------------------------------------------------------------------
// Line / Markdown
// ---------------------------------------------------------------------------

func TestLine_Width(t *testing.T) {
	for _, w := range []int{10, 40, 120} {
		for _, sel := range []bool{false, true} {
			l := Line(item("The Extraordinarily Long Northern Lantern"), w, sel)
			assert.Equal(t, w, lipgloss.Width(l), "width %d", w)
			assert.Equal(t, 1, lipgloss.Height(l))
		}
	}
	assert.Equal(t, "", Line(item("x"), 2, false))
}

func TestMarkdown(t *testing.T) {
	it := item("Paper Harbor")
	it.Genres = []string{"Drama", "Crime"}
	it.Overview = "Two rivals share a dock."
	md := Markdown(it)
	assert.True(t, strings.HasPrefix(md, "# Paper Harbor\n"))
	assert.Contains(t, md, "*1999 · movie · 120 min · ★ 7.8*")
	assert.Contains(t, md, "**Genres:** Drama, Crime")
	assert.Contains(t, md, "Two rivals share a dock.")
}
