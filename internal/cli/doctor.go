package cli

import (
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the saved task list without modifying it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			report, err := st.Doctor(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			var hints []string
			if report.HasErrors() {
				hints = append(hints, "todo list   # starts empty and keeps the bad value under "+store.CorruptTasksKey)
			}
			if err := writeOut(cmd, app, map[string]any{
				"data":   report,
				"meta":   map[string]any{"hasErrors": report.HasErrors()},
				"_hints": hints,
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
