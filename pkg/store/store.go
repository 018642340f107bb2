// Package store persists the routine collection as one serialized list under
// a single storage key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/routine"
)

// Storage is the only persistence boundary of the repository. Load never
// fails: absent or malformed content reads as an empty collection.
type Storage interface {
	Load(ctx context.Context) routine.Collection
	Save(ctx context.Context, c routine.Collection) error
	Close() error
}

// Watcher is implemented by backends that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger routes storage diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Open creates the Storage selected by cfg. A nil cfg loads the config file.
func Open(cfg Config, opts ...Option) (Storage, error) {
	if cfg == nil {
		s, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = s
	}
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	key := cfg.Key()
	if err := validKey(key); err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Backend()) {
	case "", BackendDiskv:
		return openDiskv(cfg.BasePath(), key, o.log)
	case BackendSQLite:
		return openSQLite(cfg.BasePath(), key, o.log)
	case BackendMemory:
		return NewMemory(key, o.log), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func validKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.New("store: storage key required")
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("store: storage key %q must not contain path separators", key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("store: storage key %q must not start with a dot", key)
	}
	return nil
}

// decode reads a serialized collection. Anything that is not a JSON array of
// routines is treated as empty.
func decode(key string, data []byte, log *zap.Logger) routine.Collection {
	if len(strings.TrimSpace(string(data))) == 0 {
		return routine.Collection{}
	}
	var c routine.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		log.Warn("discarding malformed collection", zap.String("key", key), zap.Error(err))
		return routine.Collection{}
	}
	if c == nil {
		return routine.Collection{}
	}
	return c
}

func encode(c routine.Collection) ([]byte, error) {
	return json.Marshal(c.Clone())
}
