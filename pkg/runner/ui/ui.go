package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/form"
	"tableflip.dev/routines/pkg/logging"
	"tableflip.dev/routines/pkg/store"
	"tableflip.dev/routines/pkg/tui"
)

type UI struct {
	Routines   *app.Service
	Form       form.Config
	TimeLayout string
	Chart      bool
	// Logger only receives diagnostics from outside the alt screen.
	Logger *zap.Logger
}

// Options builds the TUI options, starting the storage watcher when the
// backend supports one. The watcher stops with ctx.
func (d *UI) Options(ctx context.Context) tui.Options {
	opts := tui.Options{
		Form:       d.Form,
		TimeLayout: d.TimeLayout,
		Chart:      d.Chart,
	}
	if w, ok := d.Routines.Storage.(store.Watcher); ok {
		ch, err := w.Watch(ctx)
		if err != nil {
			logging.OrNop(d.Logger).Warn("storage watch unavailable", zap.Error(err))
		} else {
			opts.Watch = ch
		}
	}
	return opts
}

func (d *UI) Do(ctx context.Context) error {
	if d.Routines == nil || d.Routines.Storage == nil {
		return errors.New("can not open ui, no storage")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return tui.Run(ctx, d.Routines, d.Options(ctx))
}
