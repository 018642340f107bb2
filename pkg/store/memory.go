package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/routine"
)

// Memory holds serialized collections in a map. It goes through the same
// codec as the disk backends, so malformed content behaves identically.
type Memory struct {
	mu   sync.Mutex
	key  string
	data map[string][]byte
	log  *zap.Logger

	// Saves counts successful writes.
	Saves int
}

func NewMemory(key string, log *zap.Logger) *Memory {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Memory{key: key, data: make(map[string][]byte), log: log}
}

func (m *Memory) Load(_ context.Context) routine.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[m.key]
	if !ok {
		return routine.Collection{}
	}
	return decode(m.key, val, m.log)
}

func (m *Memory) Save(_ context.Context, c routine.Collection) error {
	data, err := encode(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key] = data
	m.Saves++
	return nil
}

// Raw returns the serialized content under the key.
func (m *Memory) Raw() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[m.key]
	return append([]byte(nil), val...), ok
}

// SetRaw replaces the serialized content, bypassing the codec.
func (m *Memory) SetRaw(val []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key] = append([]byte(nil), val...)
}

func (m *Memory) Close() error { return nil }
