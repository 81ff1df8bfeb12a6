// Package tasklist owns the in-memory ordered task collection and every
// mutation applied to it. Each successful mutation rewrites the whole
// collection to the Persister and then notifies subscribers.
//
// A List is driven from one goroutine (a UI event loop or a single CLI
// command) and does no locking of its own.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/store"

	"github.com/charmbracelet/log"
)

// Persister reads and writes the full task collection.
//
// LoadTasks returns store.ErrAbsent when nothing was saved and an error
// wrapping store.ErrInvalid when the saved value cannot be parsed.
type Persister interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
}

// invalidPreserver is implemented by persisters that can keep a copy of an
// unparseable value before it is overwritten.
type invalidPreserver interface {
	PreserveInvalid(ctx context.Context) (string, error)
}

const maxIDAttempts = 8

type Options struct {
	// NewID generates task ids. Defaults to store.IDGenerator(store.IDStyleShort).
	NewID func() (string, error)
	// Logger defaults to a logger that discards everything.
	Logger *log.Logger
}

type List struct {
	persister Persister
	newID     func() (string, error)
	log       *log.Logger

	tasks []model.Task
	input string

	subscribers []func([]model.Task)
}

func New(p Persister, opt Options) *List {
	l := &List{
		persister: p,
		newID:     opt.NewID,
		log:       opt.Logger,
		tasks:     []model.Task{},
	}
	if l.newID == nil {
		l.newID = store.IDGenerator(store.IDStyleShort)
	}
	if l.log == nil {
		l.log = log.New(io.Discard)
	}
	return l
}

// Load replaces the collection with the persisted one. A missing value starts
// an empty collection. An invalid value is logged, preserved when the
// persister supports it, and also starts an empty collection; it is never
// returned as an error. Only storage access failures are returned.
func (l *List) Load(ctx context.Context) error {
	tasks, err := l.persister.LoadTasks(ctx)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrAbsent):
		tasks = []model.Task{}
	case errors.Is(err, store.ErrInvalid):
		l.log.Error("failed to parse saved tasks; starting empty", "err", err)
		if p, ok := l.persister.(invalidPreserver); ok {
			if key, perr := p.PreserveInvalid(ctx); perr != nil {
				l.log.Warn("could not preserve invalid tasks", "err", perr)
			} else if key != "" {
				l.log.Warn("kept a copy of the invalid tasks", "key", key)
			}
		}
		tasks = []model.Task{}
	default:
		return fmt.Errorf("load tasks: %w", err)
	}
	l.tasks = model.CloneTasks(tasks)
	l.log.Debug("loaded tasks", "count", len(l.tasks))
	l.notify()
	return nil
}

// Subscribe registers fn to be called with the new collection after every
// change (successful mutation or Load).
func (l *List) Subscribe(fn func([]model.Task)) {
	if fn != nil {
		l.subscribers = append(l.subscribers, fn)
	}
}

func (l *List) Tasks() []model.Task { return model.CloneTasks(l.tasks) }

func (l *List) Len() int { return len(l.tasks) }

func (l *List) Find(id string) (model.Task, bool) {
	i := model.IndexOf(l.tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return l.tasks[i], true
}

// Input is the pending, not yet submitted add-text.
func (l *List) Input() string { return l.input }

func (l *List) SetInput(s string) { l.input = s }

// Submit adds the pending input as a task.
func (l *List) Submit() (model.Task, bool, error) {
	return l.Add(l.input)
}

// Add appends a task with the trimmed text. Blank text is a silent no-op that
// also leaves the pending input untouched; otherwise the pending input is cleared.
func (l *List) Add(rawText string) (model.Task, bool, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return model.Task{}, false, nil
	}
	id, err := l.uniqueID()
	if err != nil {
		return model.Task{}, false, err
	}
	t := model.Task{ID: id, Text: text, Completed: false}

	next := make([]model.Task, 0, len(l.tasks)+1)
	next = append(next, l.tasks...)
	next = append(next, t)
	l.input = ""
	return t, true, l.commit("add", next)
}

// Remove deletes the task with id; unknown ids are a no-op.
func (l *List) Remove(id string) (bool, error) {
	if model.IndexOf(l.tasks, id) < 0 {
		return false, nil
	}
	next := make([]model.Task, 0, len(l.tasks)-1)
	for _, t := range l.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	return true, l.commit("remove", next)
}

// ToggleComplete flips the completed flag of the task with id; unknown ids are a no-op.
func (l *List) ToggleComplete(id string) (bool, error) {
	i := model.IndexOf(l.tasks, id)
	if i < 0 {
		return false, nil
	}
	next := model.CloneTasks(l.tasks)
	next[i].Completed = !next[i].Completed
	return true, l.commit("toggle", next)
}

// Reorder moves sourceID to targetID's position (see Move).
func (l *List) Reorder(sourceID, targetID string) (bool, error) {
	next, ok := Move(l.tasks, sourceID, targetID)
	if !ok {
		return false, nil
	}
	return true, l.commit("reorder", next)
}

// commit installs next as the collection, persists it and notifies. The new
// collection is kept even when the write fails; the write error is returned
// as is, without retry.
func (l *List) commit(op string, next []model.Task) error {
	l.tasks = next
	err := l.persister.SaveTasks(context.Background(), l.Tasks())
	if err != nil {
		l.log.Error("failed to save tasks", "op", op, "err", err)
	} else {
		l.log.Debug("saved tasks", "op", op, "count", len(l.tasks))
	}
	l.notify()
	return err
}

func (l *List) notify() {
	for _, fn := range l.subscribers {
		fn(l.Tasks())
	}
}

func (l *List) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := l.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		id = strings.TrimSpace(id)
		if id != "" && model.IndexOf(l.tasks, id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("generate id: too many collisions")
}
