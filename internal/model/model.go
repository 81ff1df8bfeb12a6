package model

// Task is a single to-do entry. ID is the only identity used for lookups and
// reordering; Text is trimmed at creation and never edited afterwards.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// CloneTasks returns a copy of tasks that shares no backing array with the input.
// A nil input yields an empty (non-nil) slice so JSON output is always an array.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOf returns the position of the task with id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
