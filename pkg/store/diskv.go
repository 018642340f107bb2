package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/routine"
)

const tempDirName = ".tmp"

type diskvStore struct {
	d        *diskv.Diskv
	basePath string
	key      string
	log      *zap.Logger

	mu sync.Mutex
	// written is the content of the last Save through this store.
	written []byte
}

func openDiskv(basePath, key string, log *zap.Logger) (*diskvStore, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(filepath.Join(basePath, tempDirName), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvStore{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			// Writes land in TempDir first and are renamed into place.
			TempDir: filepath.Join(basePath, tempDirName),
			// No cache: every Load reads what is on disk now.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		key:      key,
		log:      log,
	}, nil
}

func (p *diskvStore) Load(_ context.Context) routine.Collection {
	val, err := p.d.Read(p.key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			p.log.Warn("reading collection", zap.String("key", p.key), zap.Error(err))
		}
		return routine.Collection{}
	}
	return decode(p.key, val, p.log)
}

func (p *diskvStore) Save(_ context.Context, c routine.Collection) error {
	data, err := encode(c)
	if err != nil {
		return err
	}
	if err := p.d.Write(p.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", p.key, err)
	}
	p.mu.Lock()
	p.written = data
	p.mu.Unlock()
	p.log.Debug("saved collection", zap.String("key", p.key), zap.Int("routines", len(c)))
	return nil
}

func (p *diskvStore) Close() error { return nil }

// ownWrite reports whether the key still holds what this store last saved.
func (p *diskvStore) ownWrite() bool {
	data, err := p.d.Read(p.key)
	if err != nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written != nil && bytes.Equal(data, p.written)
}

func (p *diskvStore) path() string {
	return filepath.Join(p.basePath, p.key)
}
