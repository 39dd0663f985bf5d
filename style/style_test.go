package style

import (
	"image/color"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	assert.False(t, SetTheme("solarized"))
	assert.Equal(t, "dark", CurrentThemeName)

	assert.True(t, SetTheme("light"))
	assert.Equal(t, "light", CurrentThemeName)
	assert.False(t, IsDark())
	assert.Equal(t, Themes["light"].Primary, Primary)
}

func TestNextThemeCycles(t *testing.T) {
	name := ThemeNames[0]
	for range ThemeNames {
		name = NextTheme(name)
	}
	assert.Equal(t, ThemeNames[0], name)
	assert.Equal(t, ThemeNames[0], NextTheme("unknown"))
}

func TestLerpColorEndpoints(t *testing.T) {
	a := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	b := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, "#000000", Hex(LerpColor(a, b, -1)))
	assert.Equal(t, "#C86432", Hex(LerpColor(a, b, 2)))
	assert.Equal(t, "#643219", Hex(LerpColor(a, b, 0.5)))
}

func TestGradientBlockSize(t *testing.T) {
	block := GradientBlock(6, 4, "▓", Primary, Secondary)
	assert.Equal(t, 4, lipgloss.Height(block))
	assert.Equal(t, 6, lipgloss.Width(block))
	assert.Equal(t, "", GradientBlock(0, 3, "▓", Primary, Secondary))
}

func TestGradientText(t *testing.T) {
	assert.Equal(t, "", GradientText("", Primary, Secondary))
	out := GradientText("◈ marquee", Primary, Secondary)
	assert.Equal(t, 9, lipgloss.Width(out))
}
