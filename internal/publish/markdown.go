package publish

import (
	"bytes"
	"fmt"
	"strings"

	"todo-cli/internal/model"
)

const DefaultTitle = "My TODO List"

type RenderOptions struct {
	// Title is rendered as the top-level heading; DefaultTitle when empty.
	Title string
	// HideCompleted drops completed tasks from the checklist.
	HideCompleted bool
}

// RenderTasksMarkdown renders tasks as a GitHub-style checklist in display order.
func RenderTasksMarkdown(tasks []model.Task, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = DefaultTitle
	}
	writeLn("# " + title)
	writeLn("")

	done := 0
	rows := 0
	for _, t := range tasks {
		if t.Completed {
			done++
			if opt.HideCompleted {
				continue
			}
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		writeLn(fmt.Sprintf("- %s %s", box, escapeMarkdownInline(t.Text)))
		rows++
	}
	if rows == 0 {
		writeLn("_No tasks yet. Add one above!_")
	}
	writeLn("")
	writeLn(fmt.Sprintf("%d of %d done", done, len(tasks)))
	return buf.String()
}

// escapeMarkdownInline keeps user text from turning into markup (headings,
// nested lists, emphasis) inside a checklist row.
func escapeMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	r := strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"<", `\<`,
		"#", `\#`,
	)
	return r.Replace(s)
}
