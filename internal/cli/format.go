package cli

import (
	"fmt"
	"io"
	"strings"

	"taskmanager/internal/models"
)

// formatTask writes "[x] {ID}  {TITLE}" for completed tasks and
// "[ ] {ID}  {TITLE}" otherwise.
func formatTask(w io.Writer, task models.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %s  %s\n", mark, task.ID, normalizeTitle(task.Title))
}

// normalizeTitle keeps each task on one line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
