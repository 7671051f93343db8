package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/db"
	"github.com/balkashynov/steady/internal/emotion"
	"github.com/balkashynov/steady/internal/models"
	"github.com/balkashynov/steady/internal/parser"
	"github.com/balkashynov/steady/internal/tui"
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Record and review your mood journal",
}

var moodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record how you feel",
	Long: `Record a mood entry with energy and focus levels from 1 to 10.

With no flags an interactive form opens. --from-image asks the emotion
classifier to suggest a mood from a PNG or JPEG picture, --from-audio
does the same from a PCM WAV recording.

Examples:
  steady mood add
  steady mood add --mood Good --energy 8 --focus 6
  steady mood add --from-image selfie.jpg
  steady mood add --from-audio clip.wav`,
	Args: cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		var suggestion string
		switch {
		case flags.Changed("from-image"):
			path, _ := flags.GetString("from-image")
			frame, err := emotion.LoadFrame(path)
			if err != nil {
				return err
			}
			suggestion = string(a.emotions().ClassifyFrame(context.Background(), frame))
		case flags.Changed("from-audio"):
			path, _ := flags.GetString("from-audio")
			samples, rate, err := emotion.LoadAudio(path)
			if err != nil {
				return err
			}
			suggestion = string(a.emotions().ClassifyAudio(context.Background(), samples, rate))
		}
		if suggestion != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "🔍 Detected mood: %s\n", suggestion)
		}

		req := db.AddMoodRequest{Mood: suggestion}
		direct := false
		for _, name := range []string{"mood", "energy", "focus", "notes", "date"} {
			direct = direct || flags.Changed(name)
		}

		if direct {
			if err := applyMoodFlags(cmd, &req); err != nil {
				return err
			}
		} else {
			form, ok, err := tui.RunMoodFormTUI(suggestion)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "❌ Mood entry cancelled.")
				return nil
			}
			req = db.AddMoodRequest{
				Mood:        form.Mood,
				Notes:       form.Notes,
				EnergyLevel: form.EnergyLevel,
				FocusLevel:  form.FocusLevel,
			}
		}

		if req.Mood == "" {
			return fmt.Errorf("mood is required, use --mood, --from-image or --from-audio")
		}

		entry, err := a.store.AddMood(req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Recorded mood #%d for %s: %s (energy %d, focus %d)\n",
			entry.ID, entry.Date, entry.Mood, entry.EnergyLevel, entry.FocusLevel)
		return nil
	}),
}

// applyMoodFlags overlays the mood flags and validates levels
func applyMoodFlags(cmd *cobra.Command, req *db.AddMoodRequest) error {
	flags := cmd.Flags()

	if flags.Changed("mood") {
		req.Mood, _ = flags.GetString("mood")
	}
	if flags.Changed("notes") {
		req.Notes, _ = flags.GetString("notes")
	}
	for name, target := range map[string]*int{"energy": &req.EnergyLevel, "focus": &req.FocusLevel} {
		if !flags.Changed(name) {
			continue
		}
		level, _ := flags.GetInt(name)
		if level < 1 || level > 10 {
			return fmt.Errorf("%s must be between 1 and 10, got %d", name, level)
		}
		*target = level
	}
	if flags.Changed("date") {
		value, _ := flags.GetString("date")
		day, err := parser.ParseDueDate(value)
		if err != nil {
			return fmt.Errorf("parsing date: %w", err)
		}
		req.Date = day
	}
	return nil
}

var moodListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List mood entries",
	Args:    cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		var entries []models.MoodEntry
		if cmd.Flags().Changed("date") {
			value, _ := cmd.Flags().GetString("date")
			day, err := parser.ParseDueDate(value)
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			entries = a.store.MoodsByDate(day)
		} else {
			entries = a.store.ListMoods()
		}

		fmt.Fprint(cmd.OutOrStdout(), tui.RenderMoodTable(entries))
		return nil
	}),
}

func init() {
	moodAddCmd.Flags().StringP("mood", "m", "", "Mood label, e.g. Good, Neutral, Stressed")
	moodAddCmd.Flags().IntP("energy", "e", models.DefaultLevel, "Energy level 1-10")
	moodAddCmd.Flags().IntP("focus", "f", models.DefaultLevel, "Focus level 1-10")
	moodAddCmd.Flags().StringP("notes", "n", "", "Free-form notes")
	moodAddCmd.Flags().String("date", "", "Entry date (default today)")
	moodAddCmd.Flags().String("from-image", "", "Suggest the mood from a PNG/JPEG picture")
	moodAddCmd.Flags().String("from-audio", "", "Suggest the mood from a PCM WAV recording")
	moodAddCmd.MarkFlagsMutuallyExclusive("from-image", "from-audio")

	moodListCmd.Flags().String("date", "", "Only entries for this date (yyyy-mm-dd, today, ...)")

	moodCmd.AddCommand(moodAddCmd)
	moodCmd.AddCommand(moodListCmd)
}

