package cli

import (
	"strings"

	"todo-cli/internal/tasklist"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the end of the list",
		Long: heredoc.Doc(`
			Add a task to the end of the list.

			The text is trimmed; whitespace-only text adds nothing and reports
			meta.changed=false.
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, added, err := l.Add(strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			var data any
			if added {
				data = t
			}
			return writeOut(cmd, app, map[string]any{
				"data": data,
				"meta": map[string]any{"changed": added},
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks := l.Tasks()
			done := 0
			for _, t := range tasks {
				if t.Completed {
					done++
				}
			}
			return writeTasks(cmd, app, tasks, map[string]any{
				"count": len(tasks),
				"done":  done,
			})
		},
	}
}

func newGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := l.Find(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "toggle <task-id>",
		Aliases: []string{"done"},
		Short:   "Flip a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireTasks(l, strict, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			changed, err := l.ToggleComplete(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			var data any
			if t, ok := l.Find(args[0]); ok {
				data = t
			}
			return writeOut(cmd, app, map[string]any{
				"data": data,
				"meta": map[string]any{"changed": changed},
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the task id is unknown")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireTasks(l, strict, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			var data any
			if t, ok := l.Find(args[0]); ok {
				data = t
			}
			changed, err := l.Remove(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": data,
				"meta": map[string]any{"changed": changed},
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the task id is unknown")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "move <task-id> <target-task-id>",
		Short: "Move a task to another task's position",
		Long: heredoc.Doc(`
			Move a task to the position currently held by the target task.

			Tasks between the two shift by one toward the vacated position.
			Moving a task onto itself, or naming an unknown id, changes nothing.
		`),
		Example: heredoc.Doc(`
			# A B C  ->  B C A
			todo move <id-of-A> <id-of-C>
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireTasks(l, strict, args...); err != nil {
				return writeErr(cmd, err)
			}
			changed, err := l.Reorder(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeTasks(cmd, app, l.Tasks(), map[string]any{"changed": changed})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a task id is unknown")
	return cmd
}

// requireTasks returns a not-found error for the first unknown id when strict is set.
func requireTasks(l *tasklist.List, strict bool, ids ...string) error {
	if !strict {
		return nil
	}
	for _, id := range ids {
		if _, ok := l.Find(id); !ok {
			return errNotFound("task", id)
		}
	}
	return nil
}
