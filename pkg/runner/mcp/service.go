// Package mcp provides the Model Context Protocol server integration for routines.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/chart"
	"tableflip.dev/routines/pkg/filter"
	"tableflip.dev/routines/pkg/routine"
)

// Service adapts the routine repository to the shapes the MCP tools return.
type Service struct {
	Routines *app.Service
	// StudentName mirrors the form setting: when false, student names sent
	// by clients are ignored.
	StudentName bool
	TimeLayout  string
}

// RoutineDTO is a transport-friendly projection of a routine.
type RoutineDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Datetime    string `json:"datetime"`
	StudentName string `json:"studentName,omitempty"`
	Display     string `json:"display"`
	Day         string `json:"day"`
}

// DayCount is one bar of the per-day chart.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// RoutineOptions are the inputs of add and update.
type RoutineOptions struct {
	Name     string
	Datetime string
	Student  string
}

// NewService builds a service over the repository.
func NewService(svc *app.Service, student bool) *Service {
	return &Service{Routines: svc, StudentName: student}
}

func (s *Service) toDTO(r routine.Routine) RoutineDTO {
	return RoutineDTO{
		ID:          r.ID,
		Name:        r.Name,
		Datetime:    r.Datetime,
		StudentName: r.StudentName,
		Display:     routine.FormatTime(r.Datetime, s.TimeLayout),
		Day:         r.Day(),
	}
}

func (s *Service) fields(o RoutineOptions) routine.Fields {
	return routine.Fields{
		Name:       o.Name,
		Datetime:   o.Datetime,
		Student:    o.Student,
		HasStudent: s.StudentName,
	}
}

func (s *Service) repo() (*app.Service, error) {
	if s == nil || s.Routines == nil {
		return nil, errors.New("routines service is not configured")
	}
	return s.Routines, nil
}

// ListRoutines returns the filtered routines in display order.
func (s *Service) ListRoutines(ctx context.Context, crit filter.Criteria) ([]RoutineDTO, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	shown := filter.Apply(all, crit)
	out := make([]RoutineDTO, 0, len(shown))
	for _, r := range shown {
		out = append(out, s.toDTO(r))
	}
	return out, nil
}

// AddRoutine creates a routine.
func (s *Service) AddRoutine(ctx context.Context, o RoutineOptions) (RoutineDTO, error) {
	repo, err := s.repo()
	if err != nil {
		return RoutineDTO{}, err
	}
	r, err := repo.Add(ctx, s.fields(o))
	if err != nil {
		return RoutineDTO{}, err
	}
	return s.toDTO(r), nil
}

// UpdateRoutine replaces the fields of routine id. Blank options keep the
// current value, so clients can send only what changes.
func (s *Service) UpdateRoutine(ctx context.Context, id string, o RoutineOptions) (RoutineDTO, error) {
	repo, err := s.repo()
	if err != nil {
		return RoutineDTO{}, err
	}
	current, err := repo.Get(ctx, id)
	if err != nil {
		return RoutineDTO{}, err
	}
	if strings.TrimSpace(o.Name) == "" {
		o.Name = current.Name
	}
	if strings.TrimSpace(o.Datetime) == "" {
		o.Datetime = current.Datetime
	}
	if strings.TrimSpace(o.Student) == "" {
		o.Student = current.StudentName
	}
	r, err := repo.Update(ctx, id, s.fields(o))
	if err != nil {
		return RoutineDTO{}, err
	}
	return s.toDTO(r), nil
}

// DeleteRoutine removes routine id and reports whether it existed.
func (s *Service) DeleteRoutine(ctx context.Context, id string) (bool, error) {
	repo, err := s.repo()
	if err != nil {
		return false, err
	}
	if _, err := repo.Get(ctx, id); errors.Is(err, app.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := repo.Remove(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Chart returns the per-day counts over every routine.
func (s *Service) Chart(ctx context.Context) ([]DayCount, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	series := chart.Aggregate(all)
	out := make([]DayCount, len(series.Labels))
	for i, day := range series.Labels {
		out[i] = DayCount{Day: day, Count: series.Counts[i]}
	}
	return out, nil
}
