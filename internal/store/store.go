package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/model"
)

const (
	// TasksKey is the single slot holding the serialized task collection.
	TasksKey = "todos"
	// CorruptTasksKey receives the raw bytes of an unparseable collection before it is replaced.
	CorruptTasksKey = "todos.corrupt"
)

var (
	// ErrAbsent is returned by LoadTasks when nothing was ever saved.
	ErrAbsent = errors.New("no saved tasks")
	// ErrInvalid is wrapped by LoadTasks when the saved value is not a valid collection.
	ErrInvalid = errors.New("invalid saved tasks")
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendFile:
		return BackendFile, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown backend: %s (want file|sqlite)", s)
	}
}

// Store is the persistence adapter: it mirrors the task collection into one
// key-value slot of the configured backend.
type Store struct {
	Dir     string
	Backend Backend

	mem *MemorySlot
}

// NewMemory returns a Store backed by an in-process slot. Copies of the returned
// value share the same slot.
func NewMemory() Store {
	return Store{Backend: BackendMemory, mem: NewMemorySlot()}
}

func DefaultDir() (string, error) {
	return WorkspaceDir(DefaultWorkspace)
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	if s.Backend == BackendMemory {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// Slot returns the key-value slot for the configured backend.
func (s Store) Slot() (Slot, error) {
	switch s.Backend {
	case "", BackendFile:
		return fileSlot{dir: s.Dir}, nil
	case BackendSQLite:
		return sqliteSlot{path: s.sqlitePath()}, nil
	case BackendMemory:
		if s.mem == nil {
			return nil, errors.New("memory store not initialized (use NewMemory)")
		}
		return s.mem, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", s.Backend)
	}
}

// Path returns the on-disk location of the tasks slot ("" for memory stores).
func (s Store) Path() string {
	switch s.Backend {
	case "", BackendFile:
		return fileSlot{dir: s.Dir}.path(TasksKey)
	case BackendSQLite:
		return s.sqlitePath()
	default:
		return ""
	}
}

func (s Store) LoadTasks(ctx context.Context) ([]model.Task, error) {
	b, ok, err := s.loadRaw(ctx, TasksKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAbsent
	}
	return decodeTasks(b)
}

func (s Store) SaveTasks(ctx context.Context, tasks []model.Task) error {
	b, err := encodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	slot, err := s.Slot()
	if err != nil {
		return err
	}
	if err := slot.Set(ctx, TasksKey, b); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// PreserveInvalid copies the current raw tasks value into CorruptTasksKey,
// or into CorruptTasksKey.2, .3, ... when an earlier, different copy is there.
// A value that is already preserved is not written again. It returns the key
// holding the copy, or "" when there was nothing to copy.
func (s Store) PreserveInvalid(ctx context.Context) (string, error) {
	b, ok, err := s.loadRaw(ctx, TasksKey)
	if err != nil || !ok {
		return "", err
	}
	slot, err := s.Slot()
	if err != nil {
		return "", err
	}
	for i := 1; i <= maxCorruptCopies; i++ {
		key := corruptKey(i)
		prev, exists, err := slot.Get(ctx, key)
		if err != nil {
			return "", err
		}
		if exists && bytes.Equal(prev, b) {
			return key, nil
		}
		if exists {
			continue
		}
		if err := slot.Set(ctx, key, b); err != nil {
			return "", err
		}
		return key, nil
	}
	return "", fmt.Errorf("preserve invalid tasks: %d copies already kept", maxCorruptCopies)
}

const maxCorruptCopies = 20

func corruptKey(n int) string {
	if n <= 1 {
		return CorruptTasksKey
	}
	return fmt.Sprintf("%s.%d", CorruptTasksKey, n)
}

func (s Store) loadRaw(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.Ensure(); err != nil {
		return nil, false, err
	}
	slot, err := s.Slot()
	if err != nil {
		return nil, false, err
	}
	return slot.Get(ctx, key)
}
