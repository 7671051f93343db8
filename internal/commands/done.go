package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/models"
)

var startTaskCmd = &cobra.Command{
	Use:   "start-task [task-id]",
	Short: "Mark a task as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		task, err := setStatus(a, args[0], models.StatusInProgress)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "▶️  Task #%d is in progress: %s\n", task.ID, task.Title)
		return nil
	}),
}

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		task, err := setStatus(a, args[0], models.StatusDone)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked task #%d as done: %s\n", task.ID, task.Title)
		return nil
	}),
}

var removeCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.store.DeleteTask(taskID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted task #%d\n", taskID)
		return nil
	}),
}

// setStatus loads a task and rewrites it with a new status
func setStatus(a *app, arg string, status models.Status) (*models.Task, error) {
	taskID, err := parseID(arg)
	if err != nil {
		return nil, err
	}

	task, err := a.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	req := taskRequestFrom(task)
	req.Status = status
	if err := a.store.UpdateTask(task.ID, req); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	task.Status = status
	return task, nil
}
