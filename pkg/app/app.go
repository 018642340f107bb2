package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/logging"
	"tableflip.dev/routines/pkg/routine"
	"tableflip.dev/routines/pkg/store"
)

// Service is the routine repository. It wraps a Storage so the TUI, the CLI
// and the MCP tools share one set of operations. It keeps no cache: every
// call reads the collection fresh and writes it back whole.
type Service struct {
	Storage store.Storage
	// Clock is used to generate ids; time.Now when nil.
	Clock  func() time.Time
	Logger *zap.Logger
}

var (
	ErrNoStorage = errors.New("app: no storage configured")
	ErrNotFound  = errors.New("app: routine not found")
	ErrInvalid   = errors.New("app: invalid routine")
)

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *Service) log() *zap.Logger {
	return logging.OrNop(s.Logger)
}

// List returns the collection as currently persisted.
func (s *Service) List(ctx context.Context) (routine.Collection, error) {
	if s.Storage == nil {
		return nil, ErrNoStorage
	}
	return s.Storage.Load(ctx), nil
}

// Get finds the routine with id.
func (s *Service) Get(ctx context.Context, id string) (routine.Routine, error) {
	all, err := s.List(ctx)
	if err != nil {
		return routine.Routine{}, err
	}
	r, ok := all.Find(id)
	if !ok {
		return routine.Routine{}, ErrNotFound
	}
	return r, nil
}

// Add creates a routine with a fresh id, appends it and persists.
func (s *Service) Add(ctx context.Context, f routine.Fields) (routine.Routine, error) {
	if err := f.Validate(); err != nil {
		return routine.Routine{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	all, err := s.List(ctx)
	if err != nil {
		return routine.Routine{}, err
	}
	r := routine.New(routine.NewID(s.now(), all), f)
	all = append(all, r)
	if err := s.Storage.Save(ctx, all); err != nil {
		return routine.Routine{}, err
	}
	s.log().Debug("added routine", zap.String("id", r.ID), zap.String("name", r.Name))
	return r, nil
}

// Update replaces the fields of the routine with id in place and persists.
// Nothing is written when id is unknown.
func (s *Service) Update(ctx context.Context, id string, f routine.Fields) (routine.Routine, error) {
	if err := f.Validate(); err != nil {
		return routine.Routine{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	all, err := s.List(ctx)
	if err != nil {
		return routine.Routine{}, err
	}
	i := all.Index(id)
	if i < 0 {
		return routine.Routine{}, ErrNotFound
	}
	all[i] = all[i].Apply(f)
	if err := s.Storage.Save(ctx, all); err != nil {
		return routine.Routine{}, err
	}
	s.log().Debug("updated routine", zap.String("id", id))
	return all[i], nil
}

// Remove deletes the routine with id. Unknown ids are ignored.
func (s *Service) Remove(ctx context.Context, id string) error {
	all, err := s.List(ctx)
	if err != nil {
		return err
	}
	if all.Index(id) < 0 {
		s.log().Debug("remove of unknown routine ignored", zap.String("id", id))
		return nil
	}
	if err := s.Storage.Save(ctx, all.Without(id)); err != nil {
		return err
	}
	s.log().Debug("removed routine", zap.String("id", id))
	return nil
}
