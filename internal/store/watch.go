package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch reports on-disk changes to the tasks slot, e.g. a CLI command run from
// another terminal while the TUI is open. Bursts of events are coalesced and the
// channel never holds more than one pending notification. A burst only notifies
// when the saved tasks value differs from the last one seen, so writes to other
// keys (such as CorruptTasksKey) stay silent. Errors from the watcher are
// dropped. The channel is closed when ctx is done.
//
// Memory stores have nothing to watch; they get a channel that only closes.
func (s Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)
	if s.Backend == BackendMemory {
		go func() {
			<-ctx.Done()
			close(out)
		}()
		return out, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	names := s.watchedNames()
	ops := s.watchedOps()
	last, lastOK, _ := s.loadRaw(ctx, TasksKey)
	changed := func() bool {
		b, ok, err := s.loadRaw(ctx, TasksKey)
		if err != nil {
			return true
		}
		if ok == lastOK && bytes.Equal(b, last) {
			return false
		}
		last, lastOK = b, ok
		return true
	}

	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !names[filepath.Base(ev.Name)] {
					continue
				}
				if ev.Op&ops == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if !changed() {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if errors.Is(err, fsnotify.ErrEventOverflow) {
					select {
					case out <- struct{}{}:
					default:
					}
				}
			}
		}
	}()
	return out, nil
}

// watchedOps is the set of events that may carry a new tasks value. Opening a
// sqlite database creates and removes its -wal file without changing content,
// so only writes count there.
func (s Store) watchedOps() fsnotify.Op {
	if s.Backend == BackendSQLite {
		return fsnotify.Write
	}
	return fsnotify.Write | fsnotify.Create | fsnotify.Rename
}

func (s Store) watchedNames() map[string]bool {
	switch s.Backend {
	case BackendSQLite:
		return map[string]bool{
			sqliteFileName:          true,
			sqliteFileName + "-wal": true,
		}
	default:
		return map[string]bool{filepath.Base(s.Path()): true}
	}
}
