package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewRandomID_TaskIDsHaveStableLength(t *testing.T) {
	id, err := newRandomID("task")
	if err != nil {
		t.Fatalf("newRandomID: %v", err)
	}
	if !strings.HasPrefix(id, "task-") {
		t.Fatalf("expected task prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "task-")
	if got, want := len(suffix), 8; got != want {
		t.Fatalf("expected task id suffix len %d, got %d (%q)", want, got, suffix)
	}
}

func TestIDGenerator_SameTickIDsDiffer(t *testing.T) {
	for _, style := range []IDStyle{IDStyleShort, IDStyleUUID} {
		gen := IDGenerator(style)
		seen := map[string]bool{}
		for i := 0; i < 500; i++ {
			id, err := gen()
			if err != nil {
				t.Fatalf("%s: gen: %v", style, err)
			}
			if seen[id] {
				t.Fatalf("%s: duplicate id %q after %d ids", style, id, i)
			}
			seen[id] = true
		}
	}
}

func TestIDGenerator_UUIDStyle(t *testing.T) {
	id, err := IDGenerator(IDStyleUUID)()
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	u, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected uuid, got %q: %v", id, err)
	}
	if u.Version() != 4 {
		t.Fatalf("expected v4 uuid, got version %d", u.Version())
	}
}

func TestParseIDStyle(t *testing.T) {
	if s, err := ParseIDStyle(""); err != nil || s != IDStyleShort {
		t.Fatalf("expected default short; got %q, %v", s, err)
	}
	if s, err := ParseIDStyle(" UUID "); err != nil || s != IDStyleUUID {
		t.Fatalf("expected uuid; got %q, %v", s, err)
	}
	if _, err := ParseIDStyle("timestamp"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}
