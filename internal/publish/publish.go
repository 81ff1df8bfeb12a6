package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/model"
)

type WriteOptions struct {
	Render    RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written" yaml:"written"`
}

// WriteMarkdown writes the checklist for tasks to path.
func WriteMarkdown(tasks []model.Task, path string, opt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	path = filepath.Clean(path)

	md := RenderTasksMarkdown(tasks, opt.Render)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return WriteResult{}, err
		}
	}
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
