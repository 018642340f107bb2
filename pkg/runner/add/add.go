package add

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/printers"
	"tableflip.dev/routines/pkg/routine"
)

type Add struct {
	Name        string
	Datetime    string
	Student     string
	StudentName bool
	Interactive bool

	Routines *app.Service
	Printer  printers.PrettyPrint
	// Prompter asks for missing values in interactive mode; promptui when nil.
	Prompter Prompter
}

func (n *Add) Do(ctx context.Context) error {
	if n.Routines == nil {
		return errors.New("can not add, no storage")
	}

	if n.Interactive {
		p := n.Prompter
		if p == nil {
			p = TerminalPrompter{}
		}
		if err := n.prompt(p); err != nil {
			return err
		}
	}

	r, err := n.Routines.Add(ctx, routine.Fields{
		Name:       n.Name,
		Datetime:   n.Datetime,
		Student:    n.Student,
		HasStudent: n.StudentName,
	})
	if err != nil {
		return err
	}

	n.Printer.Title("Added")
	n.Printer.Routine(r)
	return nil
}

func (n *Add) prompt(p Prompter) error {
	var err error
	if n.Name, err = p.Ask("Name", n.Name, true); err != nil {
		return err
	}
	def := n.Datetime
	if def == "" {
		def = time.Now().Format(routine.InputLayout)
	}
	if n.Datetime, err = p.Ask("Datetime", def, true); err != nil {
		return err
	}
	if n.StudentName {
		if n.Student, err = p.Ask("Student", n.Student, false); err != nil {
			return err
		}
	}
	return nil
}
