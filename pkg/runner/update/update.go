package update

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/printers"
	"tableflip.dev/routines/pkg/routine"
)

// Update changes the routine with ID. Only the Set fields are replaced.
type Update struct {
	ID string

	Name, Datetime, Student          string
	SetName, SetDatetime, SetStudent bool
	StudentName                      bool

	Routines *app.Service
	Printer  printers.PrettyPrint
}

func (n *Update) Do(ctx context.Context) error {
	if n.Routines == nil {
		return errors.New("can not update, no storage")
	}

	current, err := n.Routines.Get(ctx, n.ID)
	if errors.Is(err, app.ErrNotFound) {
		return fmt.Errorf("routine %q: %w", n.ID, err)
	}
	if err != nil {
		return err
	}

	f := routine.Fields{
		Name:       current.Name,
		Datetime:   current.Datetime,
		Student:    current.StudentName,
		HasStudent: n.StudentName,
	}
	if n.SetName {
		f.Name = n.Name
	}
	if n.SetDatetime {
		f.Datetime = n.Datetime
	}
	if n.SetStudent {
		f.Student = n.Student
	}

	r, err := n.Routines.Update(ctx, n.ID, f)
	if err != nil {
		return err
	}

	n.Printer.Title("Updated")
	n.Printer.Routine(r)
	return nil
}
