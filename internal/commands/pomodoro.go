package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/pomodoro"
	"github.com/balkashynov/steady/internal/tui"
)

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo"},
	Short:   "Adaptive pomodoro sessions",
	Long: `Pomodoro sessions whose length follows your latest mood entry and
how long your recent sessions actually lasted.`,
}

var pomodoroRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show the recommended session length",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		printRecommendation(cmd.OutOrStdout(), a.coach.Recommend())
		return nil
	}),
}

var pomodoroStartCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Start a pomodoro on a task",
	Long: `Start a pomodoro on a task. The planned length comes from the
recommendation unless --minutes is given. Opens an interactive countdown by
default, use --no-ui to just start it.

Examples:
  steady pomodoro start 42
  steady pomodoro start 42 --minutes 15 --no-ui`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}
		minutes, _ := cmd.Flags().GetInt("minutes")
		if minutes < 0 {
			return fmt.Errorf("--minutes must be positive, got %d", minutes)
		}

		session, rec, err := a.coach.Start(taskID, minutes)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			printRecommendation(out, rec)
			fmt.Fprintf(out, "🍅 Started session #%d on task #%d for %d min at %s\n",
				session.ID, session.TaskID, session.PlannedDuration, session.StartTime.Format("15:04:05"))
			return nil
		}

		task, err := a.store.GetTask(taskID)
		if err != nil {
			return err
		}
		outcome, err := tui.RunTimerTUI(*session, tui.TimerInfo{
			Task:      *task,
			Mood:      rec.Mood.Mood,
			Energy:    rec.Mood.EnergyLevel,
			Focus:     rec.Mood.FocusLevel,
			Suggested: rec.Minutes,
		})
		if err != nil {
			return err
		}

		if outcome == tui.TimerStopped {
			return stopSession(a, out)
		}
		fmt.Fprintf(out, "\n💡 Session #%d is still running for task #%d: %s\n", session.ID, task.ID, task.Title)
		fmt.Fprintln(out, "   Use 'steady pomodoro status' to check it or 'steady pomodoro stop' to end it.")
		return nil
	}),
}

var pomodoroStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the running pomodoro",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		return stopSession(a, cmd.OutOrStdout())
	}),
}

var pomodoroStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running pomodoro",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		session, ok := a.coach.Active()
		if !ok {
			fmt.Fprintln(out, "No active pomodoro session")
			return nil
		}

		now := time.Now()
		title := ""
		if task, err := a.store.GetTask(session.TaskID); err == nil {
			title = task.Title
		}
		fmt.Fprintf(out, "🍅 Session #%d on task #%d: %s\n", session.ID, session.TaskID, title)
		fmt.Fprintf(out, "Started at: %s (planned %d min)\n", session.StartTime.Format("15:04:05"), session.PlannedDuration)
		fmt.Fprintf(out, "Elapsed: %s\n", tui.ClockText(session.Elapsed(now)))
		if remaining := session.Remaining(now); remaining > 0 {
			fmt.Fprintf(out, "Remaining: %s\n", tui.ClockText(remaining))
		} else {
			fmt.Fprintln(out, "Time's up! Run 'steady pomodoro stop' to save it.")
		}
		return nil
	}),
}

var pomodoroHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed pomodoros",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderSessionTable(a.coach.History(limit)))
		return nil
	}),
}

func stopSession(a *app, out io.Writer) error {
	session, err := a.coach.Stop()
	if errors.Is(err, pomodoro.ErrNoActiveSession) {
		fmt.Fprintln(out, "No active pomodoro session")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "⏹️  Ended session #%d on task #%d\n", session.ID, session.TaskID)
	fmt.Fprintf(out, "📊 Focused for %d of %d planned minutes\n", session.Minutes(), session.PlannedDuration)
	return nil
}

func printRecommendation(out io.Writer, rec pomodoro.Recommendation) {
	source := "no mood recorded, using defaults"
	if rec.FromJournal {
		source = fmt.Sprintf("mood %q from %s", rec.Mood.Mood, rec.Mood.Date)
	}
	fmt.Fprintf(out, "💡 Recommended session: %d min\n", rec.Minutes)
	fmt.Fprintf(out, "   Energy %d, focus %d (%s)\n", rec.Mood.EnergyLevel, rec.Mood.FocusLevel, source)
	if rec.HistorySamples > 0 {
		fmt.Fprintf(out, "   Blended with %s\n", plural(rec.HistorySamples, "recent session"))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func init() {
	pomodoroStartCmd.Flags().Bool("no-ui", false, "Start without the interactive countdown")
	pomodoroStartCmd.Flags().Int("minutes", 0, "Planned length in minutes instead of the recommendation")
	pomodoroHistoryCmd.Flags().Int("limit", 10, "Maximum sessions to show, 0 for all")

	pomodoroCmd.AddCommand(pomodoroRecommendCmd)
	pomodoroCmd.AddCommand(pomodoroStartCmd)
	pomodoroCmd.AddCommand(pomodoroStopCmd)
	pomodoroCmd.AddCommand(pomodoroStatusCmd)
	pomodoroCmd.AddCommand(pomodoroHistoryCmd)
}
