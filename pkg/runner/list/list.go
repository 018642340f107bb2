package list

import (
	"context"
	"errors"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/filter"
	"tableflip.dev/routines/pkg/printers"
)

type List struct {
	Criteria filter.Criteria
	Format   printers.Format
	Calendar bool

	Routines *app.Service
	Printer  printers.PrettyPrint
}

func (n *List) Do(ctx context.Context) error {
	if n.Routines == nil {
		return errors.New("can not list, no storage")
	}

	all, err := n.Routines.List(ctx)
	if err != nil {
		return err
	}
	shown := filter.Apply(all, n.Criteria)

	if n.Calendar {
		n.Printer.Calendar(shown)
		return nil
	}
	if n.Format == printers.FormatTable || n.Format == "" {
		n.Printer.TitleWithCount("Routines", len(shown))
	}
	return n.Printer.Write(n.Format, shown)
}
