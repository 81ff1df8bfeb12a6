package store

import (
	"context"
	"testing"

	"todo-cli/internal/model"
)

func TestDoctor_ReportsSlotStates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	s := Store{Dir: dir, Backend: BackendFile}

	rep, err := s.Doctor(ctx)
	if err != nil {
		t.Fatalf("Doctor(absent): %v", err)
	}
	if rep.State != SlotAbsent || rep.HasErrors() {
		t.Fatalf("expected absent; got %#v", rep)
	}

	if err := s.SaveTasks(ctx, []model.Task{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	rep, err = s.Doctor(ctx)
	if err != nil {
		t.Fatalf("Doctor(ok): %v", err)
	}
	if rep.State != SlotOK || rep.Count != 2 {
		t.Fatalf("expected ok with 2 tasks; got %#v", rep)
	}

	slot, _ := s.Slot()
	if err := slot.Set(ctx, TasksKey, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if _, err := s.PreserveInvalid(ctx); err != nil {
		t.Fatalf("PreserveInvalid: %v", err)
	}
	rep, err = s.Doctor(ctx)
	if err != nil {
		t.Fatalf("Doctor(invalid): %v", err)
	}
	if rep.State != SlotInvalid || !rep.HasErrors() || rep.Reason == "" {
		t.Fatalf("expected invalid with reason; got %#v", rep)
	}
	if !rep.HasCorruptBackup {
		t.Fatalf("expected corrupt backup to be reported")
	}
}
