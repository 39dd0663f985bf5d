package style

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"
)

// LerpColor blends a toward b. t is clamped to [0,1].
func LerpColor(a, b color.Color, t float64) color.Color {
	t = min(max(t, 0), 1)
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8(math.Round(float64(x>>8)*(1-t) + float64(y>>8)*t))
	}
	return color.NRGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}

// Hex formats c as "#RRGGBB", dropping alpha.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// GradientText colors each grapheme of text along a left-to-right sweep.
func GradientText(text string, from, to color.Color) string {
	n := uniseg.GraphemeClusterCount(text)
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(text)
	for i := 0; g.Next(); i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(LerpColor(from, to, t)).Render(g.Str()))
	}
	return sb.String()
}

// GradientBlock fills a width x height block with fill, shading from the top
// line to the bottom one.
func GradientBlock(width, height int, fill string, from, to color.Color) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(fill, width)
	lines := make([]string, height)
	for i := range lines {
		t := 0.0
		if height > 1 {
			t = float64(i) / float64(height-1)
		}
		lines[i] = lipgloss.NewStyle().Foreground(LerpColor(from, to, t)).Render(line)
	}
	return strings.Join(lines, "\n")
}
