package common

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/miosa/marquee/style"
)

// KeyHelp renders "key desc · key desc" for the enabled bindings. A binding
// without help text is labelled with its first key.
func KeyHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" && len(b.Keys()) > 0 {
			h.Key = b.Keys()[0]
		}
		part := style.HelpKey.Render(h.Key)
		if h.Desc != "" {
			part += style.HelpDesc.Render(" " + h.Desc)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, style.HelpSeparator.Render(" · "))
}
