package tasklist

import "todo-cli/internal/model"

// Move returns a copy of tasks with the task sourceID moved to the position
// currently held by targetID. Tasks in between shift by one toward the
// source's old position; it is a single-element move, not a swap.
//
// ok is false (and tasks is returned unchanged) when the ids are equal or
// either id is missing.
func Move(tasks []model.Task, sourceID, targetID string) (out []model.Task, ok bool) {
	if sourceID == targetID {
		return tasks, false
	}
	from := model.IndexOf(tasks, sourceID)
	to := model.IndexOf(tasks, targetID)
	if from < 0 || to < 0 {
		return tasks, false
	}
	return moveIndex(tasks, from, to), true
}

func moveIndex(tasks []model.Task, from, to int) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	moved := tasks[from]
	rest := make([]model.Task, 0, len(tasks)-1)
	rest = append(rest, tasks[:from]...)
	rest = append(rest, tasks[from+1:]...)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}
