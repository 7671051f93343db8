package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/steady/internal/config"
	"github.com/balkashynov/steady/internal/db"
	"github.com/balkashynov/steady/internal/emotion"
	"github.com/balkashynov/steady/internal/logging"
	"github.com/balkashynov/steady/internal/pomodoro"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "steady",
	Short: "A focus coach: tasks, mood journal and adaptive pomodoros",
	Long: `steady keeps a task list and a mood journal in a local database and
recommends how long your next pomodoro should be based on your latest
energy and focus levels and how your recent sessions went.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app holds everything a command needs. It is opened once per invocation
// and closed when the command returns.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	store *db.Store
	coach *pomodoro.Coach

	classifier emotion.Classifier
	closers    []func() error
}

func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(cfg.LogOptions())
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.DatabasePath(), log, db.WithSQLLogging(cfg.Log.Level == "debug"))
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		coach:   pomodoro.NewCoach(store, cfg.Pomodoro.HistorySize, log),
		closers: []func() error{store.Close, closeLog},
	}, nil
}

// emotions starts the classifier on first use; most commands never need it
func (a *app) emotions() emotion.Classifier {
	if a.classifier == nil {
		a.classifier = emotion.New(a.cfg.Emotion, a.log)
		a.closers = append([]func() error{a.classifier.Close}, a.closers...)
	}
	return a.classifier
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// withApp wraps a command function to open the app first and close it after
func withApp(fn func(*app, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(a, cmd, args)
	}
}

// parseID parses a task or session id argument
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id '%s'", arg)
	}
	return uint(id), nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "steady %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.steady/config.yaml)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(startTaskCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(pomodoroCmd)
	rootCmd.AddCommand(versionCmd)
}
