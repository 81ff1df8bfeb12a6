package cli

import (
	"todo-cli/internal/store"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change global settings (config.toml)",
		Long: heredoc.Doc(`
			Global settings live in config.toml inside the config dir
			(TODO_CONFIG_DIR, default ~/.todo).

			Flags and environment variables override these values per command.
		`),
	}

	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigGetCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	cmd.AddCommand(newConfigPathCmd(app))
	cmd.AddCommand(newConfigWorkspacesCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make(map[string]string, len(store.ConfigKeys))
			for _, k := range store.ConfigKeys {
				v, err := cfg.Get(k)
				if err != nil {
					return writeErr(cmd, err)
				}
				out[k] = v
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{args[0]: v}})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting (empty value resets it)",
		Example: heredoc.Doc(`
			todo config set backend sqlite
			todo config set current_workspace groceries
			todo config set tui.glyphs ascii
			todo config set id_style ""
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if args[0] == "log_level" && args[1] != "" {
				if _, err := parseLogLevel(args[1]); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			v, _ := cfg.Get(args[0])
			return writeOut(cmd, app, map[string]any{"data": map[string]string{args[0]: v}})
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newConfigWorkspacesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "workspaces",
		Short: "List workspaces under the config dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": names,
				"meta": map[string]any{"current": currentWorkspace(app)},
			})
		},
	}
}

func currentWorkspace(app *App) string {
	if app.Workspace != "" {
		return app.Workspace
	}
	if cur := config(app).CurrentWorkspace; cur != "" {
		return cur
	}
	return store.DefaultWorkspace
}
