package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tableflip.dev/routines/pkg/routine"
)

const sqliteFile = "routines.sqlite"

// sqliteStore keeps the serialized collection as one row of a key/value table.
type sqliteStore struct {
	db  *sql.DB
	key string
	log *zap.Logger
}

func openSQLite(basePath, key string, log *zap.Logger) (*sqliteStore, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// One connection keeps writes serialized.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create table: %w", err)
	}
	return &sqliteStore{db: db, key: key, log: log}, nil
}

func (s *sqliteStore) Load(ctx context.Context) routine.Collection {
	var val []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&val)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("reading collection", zap.String("key", s.key), zap.Error(err))
		}
		return routine.Collection{}
	}
	return decode(s.key, val, s.log)
}

func (s *sqliteStore) Save(ctx context.Context, c routine.Collection) error {
	data, err := encode(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		s.key, data)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", s.key, err)
	}
	s.log.Debug("saved collection", zap.String("key", s.key), zap.Int("routines", len(c)))
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
