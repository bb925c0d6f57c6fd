package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/phrazzld/taskify-api/internal/domain"
)

func newTableWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printTaskTable writes one row per task under a header.
func printTaskTable(w io.Writer, tasks []domain.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}

	tw := newTableWriter(w)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tPRIORITY\tSTATUS\tDESCRIPTION")
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			singleLine(task.Title),
			formatDue(task),
			task.Priority,
			task.Status,
			singleLine(task.Description))
	}
	return tw.Flush()
}

// printTaskDetail writes every field of task as aligned key/value lines.
func printTaskDetail(w io.Writer, task domain.Task) error {
	tw := newTableWriter(w)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", singleLine(task.Title))
	fmt.Fprintf(tw, "Description:\t%s\n", singleLine(task.Description))
	fmt.Fprintf(tw, "Due:\t%s\n", formatDue(task))
	fmt.Fprintf(tw, "Priority:\t%s\n", task.Priority)
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status)
	return tw.Flush()
}

func formatDue(task domain.Task) string {
	if task.DueDate.IsZero() {
		return "-"
	}
	return task.DueDate.UTC().Format(domain.DueDateLayout)
}

// singleLine keeps multi-line text from breaking table rows.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
