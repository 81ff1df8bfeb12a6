package store

import (
	"context"
	"errors"
	"strings"
)

type SlotState string

const (
	SlotAbsent  SlotState = "absent"
	SlotOK      SlotState = "ok"
	SlotInvalid SlotState = "invalid"
)

// DoctorReport describes the tasks slot without modifying it.
type DoctorReport struct {
	Backend Backend   `json:"backend" yaml:"backend"`
	Path    string    `json:"path,omitempty" yaml:"path,omitempty"`
	Key     string    `json:"key" yaml:"key"`
	State   SlotState `json:"state" yaml:"state"`
	Count   int       `json:"count" yaml:"count"`
	Reason  string    `json:"reason,omitempty" yaml:"reason,omitempty"`

	// HasCorruptBackup reports whether a previous invalid value was preserved.
	HasCorruptBackup bool `json:"hasCorruptBackup" yaml:"hasCorruptBackup"`
}

func (r DoctorReport) HasErrors() bool {
	return r.State == SlotInvalid
}

// Doctor inspects the tasks slot. Only storage access failures are returned as
// errors; an unparseable value is reported in the DoctorReport.
func (s Store) Doctor(ctx context.Context) (DoctorReport, error) {
	backend := s.Backend
	if backend == "" {
		backend = BackendFile
	}
	rep := DoctorReport{
		Backend: backend,
		Path:    s.Path(),
		Key:     TasksKey,
	}

	tasks, err := s.LoadTasks(ctx)
	switch {
	case err == nil:
		rep.State = SlotOK
		rep.Count = len(tasks)
	case errors.Is(err, ErrAbsent):
		rep.State = SlotAbsent
	case errors.Is(err, ErrInvalid):
		rep.State = SlotInvalid
		rep.Reason = strings.TrimPrefix(err.Error(), ErrInvalid.Error()+": ")
	default:
		return DoctorReport{}, err
	}

	_, ok, err := s.loadRaw(ctx, CorruptTasksKey)
	if err != nil {
		return DoctorReport{}, err
	}
	rep.HasCorruptBackup = ok
	return rep, nil
}
