package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/db"
	"github.com/balkashynov/steady/internal/models"
)

var editCmd = &cobra.Command{
	Use:   "edit <task_id>",
	Short: "Edit an existing task",
	Long: `Edit an existing task. Only the fields given as flags change.

Usage:
  steady edit 42 --title "New title" --priority high
  steady edit 42 --due "2 weeks"
  steady edit 42 --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}

		task, err := a.store.GetTask(taskID)
		if err != nil {
			return err
		}

		req := taskRequestFrom(task)
		if err := applyTaskFlags(cmd, &req); err != nil {
			return err
		}
		if clear, _ := cmd.Flags().GetBool("clear-due"); clear {
			req.DueDate = ""
		}

		if err := a.store.UpdateTask(task.ID, req); err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✏️  Updated task #%d: %s\n", task.ID, req.Title)
		return nil
	}),
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "Task title")
	addTaskFlags(editCmd)
	editCmd.Flags().Bool("clear-due", false, "Remove the due date")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}

// taskRequestFrom copies the mutable fields of an existing task
func taskRequestFrom(task *models.Task) db.TaskRequest {
	return db.TaskRequest{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		DueDate:     task.Due(),
	}
}
