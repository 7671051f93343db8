package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/parser"
	"github.com/balkashynov/steady/internal/tui"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show one day's tasks and mood",
	Long: `Show the tasks due on a day together with the last mood recorded for it.
The date defaults to today.

Examples:
  steady day
  steady day tomorrow
  steady day 2025-12-15`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		value := "today"
		if len(args) == 1 {
			value = args[0]
		}
		day, err := parser.ParseDueDate(value)
		if err != nil {
			return fmt.Errorf("parsing date: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "📆 %s\n", day)
		fmt.Fprint(out, tui.RenderTaskTable(a.store.TasksByDueDate(day), time.Now()))

		if entry, ok := a.store.LatestMoodForDate(day); ok {
			fmt.Fprintf(out, "🧠 Mood: %s (energy %d, focus %d)", entry.Mood, entry.EnergyLevel, entry.FocusLevel)
			if entry.Notes != "" {
				fmt.Fprintf(out, " - %s", entry.Notes)
			}
			fmt.Fprintln(out)
		} else {
			fmt.Fprintln(out, "🧠 Mood: no entry")
		}
		return nil
	}),
}
