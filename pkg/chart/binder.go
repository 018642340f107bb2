package chart

import (
	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/logging"
	"tableflip.dev/routines/pkg/routine"
)

// Surface is somewhere a chart can be drawn.
type Surface interface {
	NewChart(spec Spec) (Widget, error)
}

// Widget is a live chart. Its data can be replaced in place and redrawn.
type Widget interface {
	SetData(labels []string, counts []int)
	Update() error
}

// Binder keeps one widget per surface and feeds it the per-day counts of the
// full, unfiltered collection.
type Binder struct {
	surface Surface
	widget  Widget
	log     *zap.Logger
}

// NewBinder binds to s. A nil surface makes every Update a no-op.
func NewBinder(s Surface, log *zap.Logger) *Binder {
	return &Binder{surface: s, log: logging.OrNop(log)}
}

// Update redraws the chart for c. The widget is created on first use and
// reused afterwards so transitions carry over between updates.
func (b *Binder) Update(c routine.Collection) error {
	if b == nil || b.surface == nil {
		return nil
	}
	s := Aggregate(c)
	if b.widget == nil {
		w, err := b.surface.NewChart(NewSpec(s))
		if err != nil {
			return err
		}
		b.widget = w
		b.log.Debug("chart created", zap.Int("days", len(s.Labels)))
	} else {
		b.widget.SetData(s.Labels, s.Counts)
	}
	return b.widget.Update()
}

// Widget returns the bound widget, nil before the first Update.
func (b *Binder) Widget() Widget {
	if b == nil {
		return nil
	}
	return b.widget
}
