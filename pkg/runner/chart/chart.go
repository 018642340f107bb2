package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/chart"
	"tableflip.dev/routines/pkg/logging"
)

// Chart draws the per-day counts, to Path as an image when set, otherwise as
// text on Out.
type Chart struct {
	Path   string
	Width  int
	Height int

	Routines *app.Service
	Out      io.Writer
	Logger   *zap.Logger
}

func (n *Chart) Do(ctx context.Context) error {
	if n.Routines == nil {
		return errors.New("can not chart, no storage")
	}
	all, err := n.Routines.List(ctx)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if n.Path != "" {
		b := chart.NewBinder(chart.FileSurface{Path: n.Path, Height: n.Height}, n.Logger)
		if err := b.Update(all); err != nil {
			return err
		}
		if len(all) == 0 {
			_, _ = fmt.Fprintln(out, "no routines, nothing to chart")
			return nil
		}
		logging.OrNop(n.Logger).Debug("chart written", zap.String("path", n.Path))
		_, _ = fmt.Fprintf(out, "chart written to %s\n", n.Path)
		return nil
	}

	b := chart.NewBinder(chart.TermSurface{Width: n.Width}, n.Logger)
	if err := b.Update(all); err != nil {
		return err
	}
	w := b.Widget().(*chart.TermChart)
	w.Step(chart.AnimationDuration)
	_, _ = fmt.Fprintln(out, w.View())
	return nil
}
