// Package markdown renders detail text with glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type rendererKey struct {
	width int
	dark  bool
}

var (
	mu        sync.Mutex
	renderers = map[rendererKey]*glamour.TermRenderer{}
)

// Render converts markdown text to styled ANSI output wrapped at width.
// Falls back to the raw text if glamour fails.
func Render(md string, width int, dark bool) string {
	if strings.TrimSpace(md) == "" || width <= 0 {
		return md
	}
	r, err := renderer(width, dark)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour pads with blank lines; trim for inline display.
	return strings.Trim(out, "\n")
}

func renderer(width int, dark bool) (*glamour.TermRenderer, error) {
	mu.Lock()
	defer mu.Unlock()
	k := rendererKey{width: width, dark: dark}
	if r, ok := renderers[k]; ok {
		return r, nil
	}
	name := styles.LightStyle
	if dark {
		name = styles.DarkStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(name),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[k] = r
	return r, nil
}
