// Package form holds the add/edit form logic shared by the interactive hosts:
// it owns the add-vs-edit mode, validates input, writes through the
// repository and re-renders the list and chart after every change.
package form

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/chart"
	"tableflip.dev/routines/pkg/filter"
	"tableflip.dev/routines/pkg/logging"
	"tableflip.dev/routines/pkg/routine"
)

const (
	AddLabel    = "Add Routine"
	UpdateLabel = "Update Routine"
)

// Config enumerates the optional parts of the form, resolved once.
type Config struct {
	StudentName  bool
	CancelEdit   bool
	ClearFilters bool
}

// DefaultConfig enables every optional part.
func DefaultConfig() Config {
	return Config{StudentName: true, CancelEdit: true, ClearFilters: true}
}

// ListRenderer displays the filtered, sorted routines.
type ListRenderer interface {
	RenderList(c routine.Collection)
}

// ActionKind is an affordance attached to a listed routine.
type ActionKind int

const (
	ActionEdit ActionKind = iota
	ActionDelete
)

func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Action is a click on an affordance of the routine with ID.
type Action struct {
	Kind ActionKind
	ID   string
}

// Values are the current contents of the form fields.
type Values struct {
	Name     string
	Datetime string
	Student  string
}

// Controller is one form instance. It is not safe for concurrent use; hosts
// drive it from their single event loop.
type Controller struct {
	cfg   Config
	svc   *app.Service
	list  ListRenderer
	chart *chart.Binder
	log   *zap.Logger

	editingID string
	values    Values
	criteria  filter.Criteria
}

// New creates a controller. list and binder may be nil.
func New(cfg Config, svc *app.Service, list ListRenderer, binder *chart.Binder, log *zap.Logger) *Controller {
	return &Controller{
		cfg:   cfg,
		svc:   svc,
		list:  list,
		chart: binder,
		log:   logging.OrNop(log),
	}
}

func (c *Controller) Config() Config { return c.cfg }

// Editing returns the id being edited, "" in add mode.
func (c *Controller) Editing() string { return c.editingID }

func (c *Controller) Values() Values { return c.values }

func (c *Controller) Criteria() filter.Criteria { return c.criteria }

// SubmitLabel is the text of the submit control for the current mode.
func (c *Controller) SubmitLabel() string {
	if c.editingID != "" {
		return UpdateLabel
	}
	return AddLabel
}

// CancelVisible reports whether the cancel-edit control should show.
func (c *Controller) CancelVisible() bool {
	return c.cfg.CancelEdit && c.editingID != ""
}

func (c *Controller) SetName(v string)     { c.values.Name = v }
func (c *Controller) SetDatetime(v string) { c.values.Datetime = v }

// SetStudent is ignored when the student field is disabled.
func (c *Controller) SetStudent(v string) {
	if c.cfg.StudentName {
		c.values.Student = v
	}
}

// Fields reads the form the way a submit does.
func (c *Controller) Fields() routine.Fields {
	f := routine.Fields{
		Name:       strings.TrimSpace(c.values.Name),
		Datetime:   strings.TrimSpace(c.values.Datetime),
		HasStudent: c.cfg.StudentName,
	}
	if c.cfg.StudentName {
		f.Student = strings.TrimSpace(c.values.Student)
	}
	return f
}

// Submit adds or updates a routine from the form. An empty name or datetime
// aborts without touching anything and reports false.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	f := c.Fields()
	if f.Name == "" || f.Datetime == "" {
		return false, nil
	}

	if c.editingID != "" {
		if _, err := c.svc.Update(ctx, c.editingID, f); err != nil && !errors.Is(err, app.ErrNotFound) {
			return false, err
		}
	} else {
		if _, err := c.svc.Add(ctx, f); err != nil {
			return false, err
		}
	}

	err := c.Render(ctx)
	c.reset()
	return true, err
}

// Dispatch handles an affordance on a listed routine.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	switch a.Kind {
	case ActionEdit:
		return c.startEdit(ctx, a.ID)
	case ActionDelete:
		if err := c.svc.Remove(ctx, a.ID); err != nil {
			return err
		}
		return c.Render(ctx)
	default:
		c.log.Debug("ignoring unknown action", zap.Stringer("kind", a.Kind))
		return nil
	}
}

func (c *Controller) startEdit(ctx context.Context, id string) error {
	r, err := c.svc.Get(ctx, id)
	if errors.Is(err, app.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	c.values.Name = r.Name
	c.values.Datetime = r.Datetime
	if c.cfg.StudentName {
		c.values.Student = r.StudentName
	}
	c.editingID = id
	return nil
}

// CancelEdit resets the form back to add mode without saving.
func (c *Controller) CancelEdit() {
	c.reset()
}

func (c *Controller) reset() {
	c.values = Values{}
	c.editingID = ""
}

// SetDateFilter changes the date prefix filter and re-renders.
func (c *Controller) SetDateFilter(ctx context.Context, v string) error {
	c.criteria.DatePrefix = v
	return c.Render(ctx)
}

// SetNameFilter changes the name filter and re-renders.
func (c *Controller) SetNameFilter(ctx context.Context, v string) error {
	c.criteria.NameSubstring = v
	return c.Render(ctx)
}

// ClearFilters empties both filters and re-renders. It does nothing when the
// form has no clear control.
func (c *Controller) ClearFilters(ctx context.Context) error {
	if !c.cfg.ClearFilters {
		return nil
	}
	c.criteria = filter.Criteria{}
	return c.Render(ctx)
}

// Render re-derives the list from the filtered collection and the chart from
// all of it.
func (c *Controller) Render(ctx context.Context) error {
	all, err := c.svc.List(ctx)
	if err != nil {
		return err
	}
	if c.list != nil {
		c.list.RenderList(filter.Apply(all, c.criteria))
	}
	return c.chart.Update(all)
}
