package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/routines/pkg/routine"
)

// RevealDelay staggers the entrance of consecutive rows.
const RevealDelay = 75 * time.Millisecond

type revealMsg struct {
	gen   int
	index int
}

// rowList is the list renderer of the UI. Every render replaces the rows and
// starts a new entrance animation generation, so rows already on screen
// animate again from the start.
type rowList struct {
	rows     routine.Collection
	gen      int
	revealed int
	cursor   int
	layout   string
	width    int
}

func (l *rowList) RenderList(c routine.Collection) {
	l.rows = c.Clone()
	l.gen++
	l.revealed = 0
	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// revealCmd schedules the entrance of every row of the current generation.
func (l *rowList) revealCmd() tea.Cmd {
	if len(l.rows) == 0 {
		return nil
	}
	gen := l.gen
	cmds := make([]tea.Cmd, len(l.rows))
	for i := range l.rows {
		i := i
		cmds[i] = tea.Tick(time.Duration(i)*RevealDelay, func(time.Time) tea.Msg {
			return revealMsg{gen: gen, index: i}
		})
	}
	return tea.Batch(cmds...)
}

// reveal applies msg, ignoring ones from older generations.
func (l *rowList) reveal(msg revealMsg) {
	if msg.gen != l.gen {
		return
	}
	if msg.index+1 > l.revealed {
		l.revealed = msg.index + 1
	}
}

func (l *rowList) selected() (routine.Routine, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return routine.Routine{}, false
	}
	return l.rows[l.cursor], true
}

func (l *rowList) move(delta int) {
	if len(l.rows) == 0 {
		return
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= len(l.rows) {
		l.cursor = len(l.rows) - 1
	}
}

func (l *rowList) view(t RowTheme, focused bool) string {
	if len(l.rows) == 0 {
		return t.Empty.Render("No routines.")
	}
	var b strings.Builder
	for i, r := range l.rows {
		plain := l.line(r, RowTheme{})
		line := l.line(r, t)
		if l.width > 4 {
			line = truncate.StringWithTail(line, uint(l.width-2), "…")
		}
		prefix := "  "
		switch {
		case i >= l.revealed:
			line = t.Hidden.Render(strings.Repeat("·", min(len(plain), 12)))
		case focused && i == l.cursor:
			prefix = t.Selected.Render("» ")
		}
		b.WriteString(prefix)
		b.WriteString(line)
		if i < len(l.rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (l *rowList) line(r routine.Routine, t RowTheme) string {
	s := fmt.Sprintf("%s  %s", t.Name.Render(r.Name), t.When.Render(routine.FormatTime(r.Datetime, l.layout)))
	if r.StudentName != "" {
		s += "  " + t.Student.Render("@ "+r.StudentName)
	}
	return s
}
