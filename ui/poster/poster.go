// Package poster draws catalog items as terminal poster cards and list lines.
package poster

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/miosa/marquee/client"
	"github.com/miosa/marquee/style"
	"github.com/miosa/marquee/ui/common"
)

const (
	ellipsis = "…"
	artFill  = "▓"

	// chrome is the card's non-art lines: two border lines, the title and
	// the meta line. A wrapped title adds one more.
	chrome = 4

	minCardWidth = 6
)

// Card renders it as a bordered poster exactly width cells wide. The art
// area is sized from width and aspect (cell width / cell height), so cards
// in one row share a height unless a title wraps.
func Card(it client.Item, width int, aspect float64, selected bool) string {
	width = max(width, minCardWidth)
	inner := width - 2

	artH := 1
	if aspect > 0 {
		artH = max(int(float64(width)/aspect)-chrome-1, 1)
	}
	from, to := artColors(it.ID)
	art := style.GradientBlock(inner, artH, artFill, from, to)

	lines := []string{art}
	for _, l := range wrapTitle(it.Title, inner) {
		lines = append(lines, style.CardTitle.Render(common.PadCenter(l, inner)))
	}
	lines = append(lines, common.PadRight(meta(it, inner), inner))

	box := style.Card
	if selected {
		box = style.CardSelected
	}
	return box.Render(strings.Join(lines, "\n"))
}

// Row renders items side by side as cards of itemWidth separated by gap
// columns, followed by gap blank lines. first is the sequence index of
// items[0] and cursor the selected index.
func Row(items []client.Item, first, cursor, itemWidth, gap int, aspect float64) string {
	cards := make([]string, 0, 2*len(items))
	for i, it := range items {
		if i > 0 && gap > 0 {
			cards = append(cards, strings.Repeat(" ", gap))
		}
		cards = append(cards, Card(it, itemWidth, aspect, first+i == cursor))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if gap > 0 {
		row += strings.Repeat("\n", gap)
	}
	return row
}

// Line renders it as one list line of width cells.
func Line(it client.Item, width int, selected bool) string {
	if width <= 2 {
		return ""
	}
	inner := width - 1 // ListRow left padding
	right := fmt.Sprintf("  %-5s ★ %4.1f", it.Kind, it.Rating)
	left := it.Title
	if it.Year > 0 {
		left += fmt.Sprintf(" (%d)", it.Year)
	}
	room := inner - uniseg.StringWidth(right)
	if room < 4 {
		return renderLine(Truncate(left, inner), inner, selected)
	}
	return renderLine(common.PadRight(Truncate(left, room), room)+style.ListKind.Render(right), inner, selected)
}

func renderLine(s string, inner int, selected bool) string {
	if selected {
		return style.ListSelected.Render(common.PadRight(s, inner))
	}
	return style.ListRow.Render(common.PadRight(s, inner))
}

// Markdown returns the detail pane source for it.
func Markdown(it client.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", it.Title)
	facts := []string{fmt.Sprint(it.Year), string(it.Kind)}
	switch {
	case it.Runtime > 0:
		facts = append(facts, fmt.Sprintf("%d min", it.Runtime))
	case it.Seasons > 0:
		facts = append(facts, fmt.Sprintf("%d seasons", it.Seasons))
	}
	facts = append(facts, fmt.Sprintf("★ %.1f", it.Rating))
	fmt.Fprintf(&b, "*%s*\n\n", strings.Join(facts, " · "))
	if len(it.Genres) > 0 {
		fmt.Fprintf(&b, "**Genres:** %s\n\n", strings.Join(it.Genres, ", "))
	}
	if it.Overview != "" {
		b.WriteString(it.Overview)
	}
	return b.String()
}

// Truncate shortens s to at most width display cells, ending in an ellipsis
// when anything was cut. Grapheme clusters are never split.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	target := width - uniseg.StringWidth(ellipsis)
	var sb strings.Builder
	cur, state := 0, -1
	for rest := s; len(rest) > 0; {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cur+w > target {
			break
		}
		cur += w
		sb.WriteString(cluster)
	}
	return sb.String() + ellipsis
}

// wrapTitle fits title into one line, or two when it is longer, breaking at
// the last space that fits. The second line is truncated.
func wrapTitle(title string, width int) []string {
	if uniseg.StringWidth(title) <= width {
		return []string{title}
	}
	words := strings.Fields(title)
	first, n := "", 0
	for n < len(words) {
		next := words[n]
		if first != "" {
			next = first + " " + words[n]
		}
		if uniseg.StringWidth(next) > width {
			break
		}
		first = next
		n++
	}
	if n == 0 {
		return []string{Truncate(title, width)}
	}
	return []string{first, Truncate(strings.Join(words[n:], " "), width)}
}

func meta(it client.Item, width int) string {
	year := ""
	if it.Year > 0 {
		year = fmt.Sprint(it.Year)
	}
	rating := style.CardRating.Render(fmt.Sprintf("★%.1f", it.Rating))
	gap := width - uniseg.StringWidth(year) - lipgloss.Width(rating)
	if gap < 1 {
		return style.CardMeta.Render(Truncate(year, width))
	}
	return style.CardMeta.Render(year) + strings.Repeat(" ", gap) + rating
}

// artColors picks a stable slice of the theme gradient for id.
func artColors(id string) (from, to color.Color) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	t := float64(h.Sum32()%100) / 100
	return style.LerpColor(style.GradColorA, style.GradColorB, t), style.LerpColor(style.GradColorB, style.GradColorA, t)
}
