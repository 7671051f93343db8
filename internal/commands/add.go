package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/db"
	"github.com/balkashynov/steady/internal/models"
	"github.com/balkashynov/steady/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task with optional metadata.

Smart parsing: steady add "Write report +high due:tomorrow"

Smart parsing syntax:
  +priority   - Priority (low/medium/high or 1/2/3)
  due:3days   - Due date (yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, X weeks)

Flags take precedence over parsed values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("found issues with parsing: %s", strings.Join(parsed.Errors, ", "))
		}

		req := db.TaskRequest{
			Title:    parsed.Title,
			Priority: parsed.Priority,
			DueDate:  parsed.DueDate,
		}
		if err := applyTaskFlags(cmd, &req); err != nil {
			return err
		}

		task, err := a.store.CreateTask(req)
		if err != nil {
			return fmt.Errorf("creating task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Created task #%d: %s\n", task.ID, task.Title)
		fmt.Fprintf(out, "  Priority: %s\n", task.Priority)
		if task.Status != models.StatusToDo {
			fmt.Fprintf(out, "  Status: %s\n", task.Status)
		}
		if task.DueDate != nil {
			fmt.Fprintf(out, "  Due: %s\n", parser.FormatDueDate(task.Due()))
		}
		return nil
	}),
}

// applyTaskFlags overlays the task flags that were set on the command
func applyTaskFlags(cmd *cobra.Command, req *db.TaskRequest) error {
	flags := cmd.Flags()

	if flags.Changed("title") {
		req.Title, _ = flags.GetString("title")
	}
	if flags.Changed("desc") {
		req.Description, _ = flags.GetString("desc")
	}
	if flags.Changed("priority") {
		value, _ := flags.GetString("priority")
		priority, ok := models.ParsePriority(value)
		if !ok {
			return fmt.Errorf("invalid priority '%s'. Use: low, medium, high, 1, 2, or 3", value)
		}
		req.Priority = priority
	}
	if flags.Changed("status") {
		value, _ := flags.GetString("status")
		status, ok := models.ParseStatus(value)
		if !ok {
			return fmt.Errorf("invalid status '%s'. Use: todo, in_progress, or done", value)
		}
		req.Status = status
	}
	if flags.Changed("due") {
		value, _ := flags.GetString("due")
		due, err := parser.ParseDueDate(value)
		if err != nil {
			return fmt.Errorf("parsing due date: %w", err)
		}
		req.DueDate = due
	}
	return nil
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("desc", "d", "", "Task description")
	cmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
	cmd.Flags().StringP("status", "s", "", "Status: todo, in_progress, done")
	cmd.Flags().String("due", "", "Due date: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, X weeks")
}

func init() {
	addTaskFlags(addCmd)
}
