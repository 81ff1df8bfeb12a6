package tasklist

import (
	"testing"

	"todo-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func tasksOf(ids ...string) []model.Task {
	out := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Task{ID: id, Text: id})
	}
	return out
}

func idsOf(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestMove(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		src    string
		target string
		want   []string
		ok     bool
	}{
		{name: "down shifts left", src: "a", target: "d", want: []string{"b", "c", "d", "a", "e"}, ok: true},
		{name: "up shifts right", src: "d", target: "a", want: []string{"d", "a", "b", "c", "e"}, ok: true},
		{name: "adjacent down", src: "b", target: "c", want: []string{"a", "c", "b", "d", "e"}, ok: true},
		{name: "to end", src: "a", target: "e", want: []string{"b", "c", "d", "e", "a"}, ok: true},
		{name: "same id", src: "c", target: "c", want: []string{"a", "b", "c", "d", "e"}},
		{name: "missing source", src: "z", target: "c", want: []string{"a", "b", "c", "d", "e"}},
		{name: "missing target", src: "a", target: "z", want: []string{"a", "b", "c", "d", "e"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := tasksOf("a", "b", "c", "d", "e")
			got, ok := Move(in, tc.src, tc.target)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v; got %v", tc.ok, ok)
			}
			if diff := cmp.Diff(tc.want, idsOf(got)); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, idsOf(in)); diff != "" {
				t.Fatalf("input was mutated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMove_AdjacentRoundTripRestoresOrder(t *testing.T) {
	t.Parallel()

	orig := tasksOf("a", "b", "c", "d")
	for i := 0; i+1 < len(orig); i++ {
		for _, pair := range [][2]string{{orig[i].ID, orig[i+1].ID}, {orig[i+1].ID, orig[i].ID}} {
			a, b := pair[0], pair[1]
			once, ok := Move(orig, a, b)
			if !ok {
				t.Fatalf("Move(%s,%s) not applied", a, b)
			}
			back, ok := Move(once, b, a)
			if !ok {
				t.Fatalf("Move(%s,%s) not applied", b, a)
			}
			if diff := cmp.Diff(idsOf(orig), idsOf(back)); diff != "" {
				t.Fatalf("round trip %s<->%s (-want +got):\n%s", a, b, diff)
			}
		}
	}
}

func TestMove_NonAdjacentRoundTripDoesNotRestoreOrder(t *testing.T) {
	t.Parallel()

	orig := tasksOf("a", "b", "c", "d")
	once, _ := Move(orig, "a", "c")
	back, _ := Move(once, "c", "a")
	if diff := cmp.Diff([]string{"b", "a", "c", "d"}, idsOf(back)); diff != "" {
		t.Fatalf("round trip a<->c (-want +got):\n%s", diff)
	}
}

func TestMove_PreservesMultiset(t *testing.T) {
	t.Parallel()

	in := tasksOf("a", "b", "c", "d", "e", "f")
	for _, src := range in {
		for _, dst := range in {
			got, _ := Move(in, src.ID, dst.ID)
			if len(got) != len(in) {
				t.Fatalf("Move(%s,%s) changed length", src.ID, dst.ID)
			}
			if got[model.IndexOf(got, src.ID)].ID != src.ID {
				t.Fatalf("Move(%s,%s) lost source", src.ID, dst.ID)
			}
			if src.ID != dst.ID && model.IndexOf(got, src.ID) != model.IndexOf(in, dst.ID) {
				t.Fatalf("Move(%s,%s): source not at target's old index", src.ID, dst.ID)
			}
		}
	}
}
