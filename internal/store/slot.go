package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Slot is a synchronous key-value store holding serialized text values.
// Get reports ok=false when the key was never written.
type Slot interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// fileSlot keeps one <key>.json file per key inside dir.
type fileSlot struct {
	dir string
}

func (f fileSlot) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f fileSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (f fileSlot) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(f.dir, key+".json.*.tmp", f.path(key), value, 0o644)
}

// MemorySlot is an in-process Slot, mainly for tests.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte

	// FailWrites makes Set return an error (simulates a full disk/quota).
	FailWrites error
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: map[string][]byte{}}
}

func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemorySlot) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Memory exposes the slot behind a memory Store so tests can seed or break it.
func (s Store) Memory() *MemorySlot { return s.mem }
