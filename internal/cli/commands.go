package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/taskify-api/internal/client"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/spf13/cobra"
)

// errNothingToUpdate is returned by edit when no field flag was passed.
var errNothingToUpdate = errors.New(
	"nothing to update: pass at least one of --title, --description, --due, --priority, --status")

func newListCommand(r *RootCommand) *cobra.Command {
	var filter client.ListFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in creation order, optionally filtered.

Examples:
  taskctl list
  taskctl list --status in-progress
  taskctl list --status pending --priority high`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := r.client.ListTasks(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			return printTaskTable(cmd.OutOrStdout(), tasks)
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "Only tasks with this status (pending, in-progress, completed)")
	cmd.Flags().StringVar(&filter.Priority, "priority", "", "Only tasks with this priority (low, medium, high)")
	return cmd
}

func newShowCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := r.client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get task %s: %w", args[0], err)
			}
			return printTaskDetail(cmd.OutOrStdout(), *task)
		},
	}
}

// taskFlags holds the editable fields shared by add and edit.
type taskFlags struct {
	title       string
	description string
	due         string
	priority    string
	status      string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "Task title")
	flags.StringVar(&f.description, "description", "", "Task description")
	flags.StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	flags.StringVar(&f.priority, "priority", "", "Priority (low, medium, high)")
	flags.StringVar(&f.status, "status", "", "Status (pending, in-progress, completed)")
}

func newAddCommand(r *RootCommand) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Long: `Add a task. Priority, status and due date must all be given;
otherwise nothing is sent to the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.newStore()
			if err != nil {
				return err
			}

			s.SetDraft(client.TaskPayload{
				Title:       f.title,
				Description: f.description,
				DueDate:     f.due,
				Priority:    f.priority,
				Status:      f.status,
			})

			created, err := s.SubmitDraft(cmd.Context())
			if created == nil {
				return err
			}
			if err != nil {
				r.logger.Warn("task created but list refresh failed", "error", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created task %s\n", created.ID)
			return printTaskTable(out, []domain.Task{*created})
		},
	}

	f.register(cmd)
	return cmd
}

func newEditCommand(r *RootCommand) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a task",
		Long: `Edit a task. Only the fields passed as flags change, but the full
row is sent to the server.

Example:
  taskctl edit 65a000000000000000000001 --status completed --due 2024-02-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			changed := cmd.Flags().Changed

			if !changed("title") && !changed("description") && !changed("due") &&
				!changed("priority") && !changed("status") {
				return errNothingToUpdate
			}

			var due time.Time
			if changed("due") {
				d, err := domain.ParseDueDate(f.due)
				if err != nil {
					return err
				}
				due = d
			}

			s, err := r.newStore()
			if err != nil {
				return err
			}
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			if err := s.BeginEdit(id); err != nil {
				if errors.Is(err, client.ErrTaskNotLoaded) {
					return fmt.Errorf("%w: %s", client.ErrNotFound, id)
				}
				return err
			}

			err = s.UpdateEditing(func(task *domain.Task) {
				if changed("title") {
					task.Title = f.title
				}
				if changed("description") {
					task.Description = f.description
				}
				if changed("due") {
					task.DueDate = due
				}
				if changed("priority") {
					task.Priority = domain.Priority(f.priority)
				}
				if changed("status") {
					task.Status = domain.Status(f.status)
				}
			})
			if err != nil {
				return err
			}

			updated, err := s.SaveEdit(cmd.Context())
			if updated == nil {
				s.CancelEdit()
				return err
			}
			if err != nil {
				r.logger.Warn("task updated but list refresh failed", "error", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated task %s\n", updated.ID)
			return printTaskTable(out, []domain.Task{*updated})
		},
	}

	f.register(cmd)
	return cmd
}

func newDeleteCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.newStore()
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}
