package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/routines/pkg/routine"
)

type PrettyPrint struct {
	ShowID bool
	// TimeLayout is a Go time layout for the datetime column.
	TimeLayout string
	Out        io.Writer
}

// UseColorFor turns colored output off unless f is a terminal.
func UseColorFor(f *os.File) {
	fd := f.Fd()
	color.NoColor = os.Getenv("NO_COLOR") != "" || (!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd))
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " routine")
	default:
		_, _ = c.Fprintln(pp.out(), " routines")
	}
}

// Routines prints c as a table, in the order given.
func (pp *PrettyPrint) Routines(c routine.Collection) {
	if len(c) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	when := color.New(color.FgCyan)
	who := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, r := range c {
		student := ""
		if r.StudentName != "" {
			student = who.Sprint("@ " + r.StudentName)
		}
		dt := when.Sprint(routine.FormatTime(r.Datetime, pp.TimeLayout))
		if pp.ShowID {
			tbl.AddRow(y.Sprint(r.ID), dt, r.Name, student)
		} else {
			tbl.AddRow(dt, r.Name, student)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(tbl.String(), " "))
	_, _ = fmt.Fprintln(pp.out())
}

// Routine prints a single routine as a key/value block.
func (pp *PrettyPrint) Routine(r routine.Routine) {
	b := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("id"), r.ID)
	tbl.AddRow(b.Sprint("name"), r.Name)
	tbl.AddRow(b.Sprint("datetime"), routine.FormatTime(r.Datetime, pp.TimeLayout))
	if r.StudentName != "" {
		tbl.AddRow(b.Sprint("student"), r.StudentName)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
