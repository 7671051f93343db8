package commands

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/balkashynov/steady/internal/db"
	"github.com/balkashynov/steady/internal/pomodoro"
)

// resetFlags clears flag state left over from a previous Execute
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

type cli struct {
	t      *testing.T
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	body := "data_dir: " + dir + "\nlog:\n  level: error\n"
	if err := os.WriteFile(config, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cli{t: t, config: config}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", c.config}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("steady %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func expectContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestTaskCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("add", "Write", "report", "+high", "due:2030-01-15")
	expectContains(t, out, "Created task #1: Write report", "Priority: high", "2030-01-15")

	c.mustRun("add", "Read paper", "--priority", "low", "--desc", "chapter 2")

	out = c.mustRun("ls")
	expectContains(t, out, "Write report", "Read paper", "high", "low")

	out = c.mustRun("ls", "--due", "2030-01-15")
	expectContains(t, out, "Write report")
	if strings.Contains(out, "Read paper") {
		t.Fatalf("--due should filter other tasks:\n%s", out)
	}

	out = c.mustRun("edit", "1", "--title", "Write final report", "--clear-due")
	expectContains(t, out, "Updated task #1: Write final report")

	out = c.mustRun("ls", "--due", "2030-01-15")
	expectContains(t, out, "No tasks found")

	expectContains(t, c.mustRun("start-task", "2"), "in progress")
	expectContains(t, c.mustRun("done", "2"), "Marked task #2 as done")
	expectContains(t, c.mustRun("ls"), "✓ done")

	c.mustRun("rm", "2")
	c.mustRun("rm", "2")
	if out := c.mustRun("ls"); strings.Contains(out, "Read paper") {
		t.Fatalf("deleted task still listed:\n%s", out)
	}
}

func TestTaskCommandErrors(t *testing.T) {
	c := newCLI(t)

	if _, err := c.run("add", "Oops", "+urgent"); err == nil {
		t.Fatalf("expected a parse error for +urgent")
	}
	if _, err := c.run("add", "Oops", "--priority", "9"); err == nil {
		t.Fatalf("expected an error for priority 9")
	}
	if _, err := c.run("add", "Oops", "--status", "blocked"); err == nil {
		t.Fatalf("expected an error for status blocked")
	}
	if _, err := c.run("edit", "42", "--title", "x"); !errors.Is(err, db.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := c.run("done", "abc"); err == nil {
		t.Fatalf("expected an invalid id error")
	}
}

func TestMoodCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("mood", "add", "--mood", "Good", "--energy", "8", "--focus", "9", "--date", "2025-03-10")
	expectContains(t, out, "Recorded mood #1 for 2025-03-10: Good (energy 8, focus 9)")

	c.mustRun("mood", "add", "--mood", "Stressed", "--notes", "deadline", "--date", "2025-03-11")

	out = c.mustRun("mood", "ls")
	expectContains(t, out, "Good", "Stressed", "deadline")

	out = c.mustRun("mood", "ls", "--date", "2025-03-10")
	expectContains(t, out, "Good")
	if strings.Contains(out, "Stressed") {
		t.Fatalf("--date should filter other days:\n%s", out)
	}

	if _, err := c.run("mood", "add", "--mood", "Good", "--energy", "11"); err == nil {
		t.Fatalf("expected an error for energy 11")
	}
	if _, err := c.run("mood", "add", "--energy", "4"); err == nil {
		t.Fatalf("expected an error when no mood is given")
	}
}

func TestMoodFromImageUsesClassifier(t *testing.T) {
	c := newCLI(t)

	img := image.NewGray(image.Rect(0, 0, 10, 10))
	img.Set(0, 0, color.Gray{Y: 90})
	path := filepath.Join(t.TempDir(), "me.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	// no plugin configured, so the neutral classifier answers
	out := c.mustRun("mood", "add", "--from-image", path, "--energy", "7")
	expectContains(t, out, "Detected mood: Neutral", "Neutral (energy 7, focus 5)")
}

func TestMoodFromAudioUsesClassifier(t *testing.T) {
	c := newCLI(t)

	var pcm bytes.Buffer
	for _, sample := range []int16{0, 1200, -2400, 600, -300} {
		binary.Write(&pcm, binary.LittleEndian, sample)
	}
	var wav bytes.Buffer
	wav.WriteString("RIFF")
	binary.Write(&wav, binary.LittleEndian, uint32(36+pcm.Len()))
	wav.WriteString("WAVEfmt ")
	// PCM, mono, 22050 Hz, 16 bit
	for _, field := range []any{uint32(16), uint16(1), uint16(1), uint32(22050), uint32(44100), uint16(2), uint16(16)} {
		binary.Write(&wav, binary.LittleEndian, field)
	}
	wav.WriteString("data")
	binary.Write(&wav, binary.LittleEndian, uint32(pcm.Len()))
	wav.Write(pcm.Bytes())

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, wav.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := c.mustRun("mood", "add", "--from-audio", path, "--focus", "8")
	expectContains(t, out, "Detected mood: Neutral", "Neutral (energy 5, focus 8)")

	if _, err := c.run("mood", "add", "--from-audio", filepath.Join(t.TempDir(), "none.wav"), "--focus", "8"); err == nil {
		t.Fatalf("expected an error for a missing recording")
	}
	if _, err := c.run("mood", "add", "--from-audio", path, "--from-image", path, "--focus", "8"); err == nil {
		t.Fatalf("expected --from-audio and --from-image to be exclusive")
	}
}

func TestDayCommand(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("day", "2030-01-15")
	expectContains(t, out, "2030-01-15", "No tasks found", "Mood: no entry")

	c.mustRun("add", "Write report", "--due", "2030-01-15", "--priority", "high")
	c.mustRun("add", "Other day", "--due", "2030-01-16")
	c.mustRun("mood", "add", "--mood", "Tired", "--energy", "3", "--date", "2030-01-15")
	c.mustRun("mood", "add", "--mood", "Good", "--energy", "8", "--notes", "after lunch", "--date", "2030-01-15")

	out = c.mustRun("day", "2030-01-15")
	expectContains(t, out, "Write report", "Mood: Good (energy 8, focus 5) - after lunch")
	if strings.Contains(out, "Other day") || strings.Contains(out, "Tired") {
		t.Fatalf("day view leaked another day's data:\n%s", out)
	}

	if _, err := c.run("day", "someday"); err == nil {
		t.Fatalf("expected an error for an unparsable date")
	}
}

func TestPomodoroCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("pomodoro", "recommend")
	expectContains(t, out, "Recommended session: 25 min", "no mood recorded")

	c.mustRun("mood", "add", "--mood", "Euphoric", "--energy", "9", "--focus", "8")
	expectContains(t, c.mustRun("pomodoro", "recommend"), "Recommended session: 30 min", "Euphoric")

	if _, err := c.run("pomodoro", "start", "1", "--no-ui"); !errors.Is(err, db.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	c.mustRun("add", "Deep work")
	out = c.mustRun("pomodoro", "start", "1", "--no-ui")
	expectContains(t, out, "Started session #1 on task #1 for 30 min")

	if _, err := c.run("pomodoro", "start", "1", "--no-ui"); !errors.Is(err, pomodoro.ErrSessionActive) {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}

	expectContains(t, c.mustRun("pomodoro", "status"), "Session #1 on task #1: Deep work", "planned 30 min", "Remaining")

	out = c.mustRun("pomodoro", "stop")
	expectContains(t, out, "Ended session #1", "of 30 planned minutes")

	expectContains(t, c.mustRun("pomodoro", "stop"), "No active pomodoro session")
	expectContains(t, c.mustRun("pomodoro", "status"), "No active pomodoro session")
	expectContains(t, c.mustRun("pomodoro", "history"), "#1", "30m", "0m")

	out = c.mustRun("pomodoro", "start", "1", "--no-ui", "--minutes", "15")
	expectContains(t, out, "for 15 min")
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	SetVersion("1.2.3", "abc", "today")
	defer SetVersion("dev", "none", "unknown")

	expectContains(t, c.mustRun("version"), "steady 1.2.3 (commit abc, built today)")
}
