package cli

import (
	"fmt"
	"strings"

	"todo-cli/internal/publish"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var title string
	var hideCompleted bool
	var width int
	var style string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the list as a styled Markdown checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			md := publish.RenderTasksMarkdown(l.Tasks(), publish.RenderOptions{
				Title:         title,
				HideCompleted: hideCompleted,
			})
			_, err = fmt.Fprint(cmd.OutOrStdout(), publish.RenderTerminal(md, width, style))
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", publish.DefaultTitle, "Heading text")
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "Leave completed tasks out")
	cmd.Flags().IntVar(&width, "width", 80, "Word-wrap width")
	cmd.Flags().StringVar(&style, "style", envOr("GLAMOUR_STYLE", "dark"), "Glamour style (dark|light|notty|ascii|...)")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var to string
	var title string
	var hideCompleted bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the list to a Markdown checklist file (derived, not canonical)",
		Example: heredoc.Doc(`
			todo export --to ./TODO.md
			todo export --to ./TODO.md --overwrite --hide-completed
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadList(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteMarkdown(l.Tasks(), strings.TrimSpace(to), publish.WriteOptions{
				Render: publish.RenderOptions{
					Title:         title,
					HideCompleted: hideCompleted,
				},
				Overwrite: overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output file path")
	cmd.Flags().StringVar(&title, "title", publish.DefaultTitle, "Heading text")
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "Leave completed tasks out")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}
