package main

import (
	"os"
	"strings"

	"todo-cli/internal/cli"

	"github.com/google/uuid"
)

func isTaskID(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "task-") {
		return len(s) > len("task-")
	}
	return len(s) == 36 && uuid.Validate(s) == nil
}

func rewriteDirectTaskLookupArgs(argv []string) []string {
	// Convenience: `todo <task-id>` works like `todo get <task-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `todo --dir ... <task-id>`), so find the first
	// positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--workspace": true,
		"--backend":   true,
		"--format":    true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			// --flag=value and bool flags carry no separate value.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if isTaskID(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "get")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectTaskLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
