package remove

import (
	"context"
	"errors"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/filter"
	"tableflip.dev/routines/pkg/printers"
)

// Remove deletes routines by id. Unknown ids are ignored.
type Remove struct {
	IDs []string

	Routines *app.Service
	Printer  printers.PrettyPrint
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Routines == nil {
		return errors.New("can not delete, no storage")
	}

	for _, id := range n.IDs {
		if err := n.Routines.Remove(ctx, id); err != nil {
			return err
		}
	}

	all, err := n.Routines.List(ctx)
	if err != nil {
		return err
	}
	n.Printer.TitleWithCount("Routines", len(all))
	n.Printer.Routines(filter.Apply(all, filter.Criteria{}))
	return nil
}
