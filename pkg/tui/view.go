package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/routines/pkg/chart"
)

// View renders the form, filters, list, chart and status line.
func (m Model) View() string {
	if m.mode == modeHelp {
		help := m.help
		if help == "" {
			help = renderHelp(m.termWidth)
		}
		return help + "\n\n" + m.theme.Status.Render("?/esc: close help")
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Routines"))
	b.WriteString("\n\n")
	b.WriteString(m.formView())
	b.WriteString("\n\n")
	b.WriteString(m.filterView())
	b.WriteString("\n\n")

	list := m.theme.Pane.Render(m.rows.view(m.theme.Row, m.current() == fieldList))
	if tc, ok := m.chart.Widget().(*chart.TermChart); ok {
		b.WriteString(joinPanes(m.sideBySide(), list, m.theme.Pane.Render(tc.View())))
	} else {
		b.WriteString(list)
	}

	b.WriteString("\n")
	status := m.theme.Status
	if m.failed {
		status = m.theme.Error
	}
	b.WriteString(status.Render(m.status))
	return b.String()
}

func (m Model) formView() string {
	rows := []string{
		m.inputRow("Name", fieldName),
		m.inputRow("Datetime", fieldDatetime),
	}
	if m.form.Config().StudentName {
		rows = append(rows, m.inputRow("Student", fieldStudent))
	}

	buttons := m.theme.Button.Render(m.form.SubmitLabel())
	if m.form.CancelVisible() {
		buttons += " " + m.theme.Secondary.Render("Cancel (esc)")
	}
	rows = append(rows, "", buttons)
	return strings.Join(rows, "\n")
}

func (m Model) filterView() string {
	parts := []string{
		m.inputRow("Date", fieldDateFilter),
		m.inputRow("Name has", fieldNameFilter),
	}
	if m.form.Config().ClearFilters && !m.form.Criteria().IsZero() {
		parts = append(parts, m.theme.Status.Render("c: clear filters"))
	}
	return strings.Join(parts, "\n")
}

func (m Model) inputRow(label string, f field) string {
	style := m.theme.Label
	if m.current() == f {
		style = m.theme.Focused
	}
	return style.Render(label) + " " + m.inputs[f].View()
}

func joinPanes(side bool, panes ...string) string {
	if side {
		return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panes...)
}
