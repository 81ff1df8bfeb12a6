package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/publish"
	"todo-cli/internal/store"
	"todo-cli/internal/tasklist"
	"todo-cli/internal/tui"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var outputFormats = map[string]bool{"": true, "json": true, "yaml": true, "yml": true, "md": true}

type App struct {
	Dir        string
	Workspace  string
	Backend    string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "A small local-first TODO list (TUI + CLI)",
		SilenceUsage: true,
		Example: heredoc.Doc(`
			# Start the interactive TUI
			todo

			# Scriptable commands
			todo add Buy milk
			todo list --format yaml
			todo move task-ab12cd34 task-ef56gh78

			# Direct task lookup (shortcut for: todo get <task-id>)
			todo task-ab12cd34
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Checked before any command mutates the list.
			f := strings.ToLower(strings.TrimSpace(app.Format))
			if !outputFormats[f] {
				return writeErr(cmd, fmt.Errorf("unknown format: %s (want json|yaml|md)", app.Format))
			}
			app.Format = f
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TODO_DIR", ""), "Path to store dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("TODO_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("TODO_BACKEND", ""), "Storage backend (file|sqlite)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TODO_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "json"), "Output format (json|yaml|md)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, err := resolveStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := st.Ensure(); err != nil {
		return writeErr(cmd, err)
	}

	// The alt screen owns stdout/stderr; log to a file in the store dir.
	logger, closeLog, err := openFileLogger(st.Dir, logLevel(app))
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	l, err := newTaskList(app, st, logger)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := l.Load(cmd.Context()); err != nil {
		return writeErr(cmd, err)
	}

	glyphs := ""
	if cfg := config(app); cfg.TUI != nil {
		glyphs = cfg.TUI.Glyphs
	}
	return tui.Run(cmd.Context(), tui.Options{
		Store:  st,
		List:   l,
		Logger: logger,
		Glyphs: glyphs,
	})
}

// loadList resolves the store and returns a loaded task list that logs to stderr.
func loadList(cmd *cobra.Command, app *App) (*tasklist.List, store.Store, error) {
	st, err := resolveStore(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel(app))
	if err != nil {
		return nil, st, err
	}
	l, err := newTaskList(app, st, logger)
	if err != nil {
		return nil, st, err
	}
	if err := l.Load(cmd.Context()); err != nil {
		return nil, st, err
	}
	return l, st, nil
}

func newTaskList(app *App, st store.Store, logger *log.Logger) (*tasklist.List, error) {
	style, err := store.ParseIDStyle(config(app).IDStyle)
	if err != nil {
		return nil, err
	}
	return tasklist.New(st, tasklist.Options{
		NewID:  store.IDGenerator(style),
		Logger: logger,
	}), nil
}

// config loads the global config once per command. A broken config file is
// treated as empty so the list itself stays usable.
func config(app *App) *store.GlobalConfig {
	if app.cfg != nil {
		return app.cfg
	}
	cfg, err := store.LoadConfig()
	if err != nil || cfg == nil {
		cfg = &store.GlobalConfig{}
	}
	app.cfg = cfg
	return cfg
}

func resolveStore(app *App) (store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return store.Store{}, err
	}
	b := strings.TrimSpace(app.Backend)
	if b == "" {
		b = config(app).Backend
	}
	backend, err := store.ParseBackend(b)
	if err != nil {
		return store.Store{}, err
	}
	if backend == store.BackendMemory {
		return store.Store{}, errors.New("backend memory is only available to tests")
	}
	return store.Store{Dir: dir, Backend: backend}, nil
}

func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}

	// Workspace-first:
	// 1) --workspace
	// 2) config.toml current_workspace
	// 3) default workspace ("default")
	name := app.Workspace
	if name == "" {
		name = config(app).CurrentWorkspace
	}
	if name == "" {
		name = store.DefaultWorkspace
	}
	d, err := store.WorkspaceDir(name)
	if err != nil {
		return "", err
	}
	app.Workspace = name
	app.Dir = d
	return d, nil
}

func logLevel(app *App) string {
	if v := strings.TrimSpace(app.LogLevel); v != "" {
		return v
	}
	return config(app).LogLevel
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut prints v in the selected format. For --format md an envelope whose
// data is a task or a task collection is printed as a Markdown checklist; any
// other value falls back to YAML.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "md" {
		if tasks, ok := envelopeTasks(v); ok {
			_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderTasksMarkdown(tasks, publish.RenderOptions{}))
			return err
		}
		return format.Write(cmd.OutOrStdout(), v, "yaml", false)
	}
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func envelopeTasks(v any) ([]model.Task, bool) {
	env, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	data, has := env["data"]
	if !has {
		return nil, false
	}
	switch d := data.(type) {
	case []model.Task:
		return d, true
	case model.Task:
		return []model.Task{d}, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

func writeTasks(cmd *cobra.Command, app *App, tasks []model.Task, meta map[string]any) error {
	return writeOut(cmd, app, map[string]any{
		"data": tasks,
		"meta": meta,
	})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
