package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/models"
	"github.com/balkashynov/steady/internal/parser"
	"github.com/balkashynov/steady/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long: `List all tasks, undated ones last. With --due, list only the tasks due on
that day, highest priority first.

Examples:
  steady ls
  steady ls --due today
  steady ls --due 2025-12-15`,
	Args: cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		var tasks []models.Task
		if cmd.Flags().Changed("due") {
			value, _ := cmd.Flags().GetString("due")
			due, err := parser.ParseDueDate(value)
			if err != nil {
				return fmt.Errorf("parsing due date: %w", err)
			}
			tasks = a.store.TasksByDueDate(due)
		} else {
			tasks = a.store.ListTasks()
		}

		fmt.Fprint(cmd.OutOrStdout(), tui.RenderTaskTable(tasks, time.Now()))
		return nil
	}),
}

func init() {
	listCmd.Flags().String("due", "", "Only tasks due on this date (yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, ...)")
}
