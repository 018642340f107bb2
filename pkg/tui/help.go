package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Routines

| Key | Action |
|---|---|
| tab / shift+tab | move between fields, filters and the list |
| enter | add the routine, or update it while editing |
| esc | cancel the edit, or leave a field |
| j / k | move through the list |
| e | edit the selected routine |
| d | delete the selected routine |
| c | clear both filters |
| ? | toggle this help |
| q, ctrl+c | quit |

Datetimes look like ` + "`2024-05-01T07:00`" + `. The date filter keeps routines
whose datetime starts with what you type, the name filter ignores case.
`

// renderHelp renders the key reference for the given width. It falls back to
// the raw markdown when glamour cannot render.
func renderHelp(width int) string {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("dark")}
	if width > 20 {
		opts = append(opts, glamour.WithWordWrap(width-4))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n")
}
