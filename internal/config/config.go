package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/steady/internal/logging"
)

const (
	appDirName = ".steady"
	configFile = "config.yaml"
	homeEnv    = "STEADY_HOME"
)

// Config is the on-disk configuration for steady
type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Database string         `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Pomodoro PomodoroConfig `yaml:"pomodoro"`
	Emotion  EmotionConfig  `yaml:"emotion"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type PomodoroConfig struct {
	// HistorySize is how many completed sessions feed the recommendation
	HistorySize int `yaml:"history_size"`
}

type EmotionConfig struct {
	Plugin       string        `yaml:"plugin"`
	StartTimeout time.Duration `yaml:"start_timeout"`
	CallTimeout  time.Duration `yaml:"call_timeout"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		DataDir:  defaultDataDir(),
		Database: "steady.db",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Pomodoro: PomodoroConfig{HistorySize: 3},
		Emotion: EmotionConfig{
			StartTimeout: 3 * time.Second,
			CallTimeout:  5 * time.Second,
		},
	}
}

func defaultDataDir() string {
	if v := os.Getenv(homeEnv); v != "" {
		return v
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(homeDir, appDirName)
}

// DefaultPath returns the config file location inside the data directory
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), configFile)
}

// Load reads the YAML file at path on top of Default. A missing file is not
// an error. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Log.File = cfg.resolve(expandHome(cfg.Log.File))
	cfg.Emotion.Plugin = cfg.resolve(expandHome(cfg.Emotion.Plugin))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("database is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Pomodoro.HistorySize <= 0 {
		return fmt.Errorf("pomodoro.history_size must be positive")
	}
	if c.Emotion.StartTimeout <= 0 || c.Emotion.CallTimeout <= 0 {
		return fmt.Errorf("emotion timeouts must be positive")
	}
	return nil
}

// DatabasePath returns the SQLite file path
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.DataDir, c.Database)
}

// LogOptions adapts the log section for logging.New
func (c *Config) LogOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}

// resolve makes relative paths relative to the data directory
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(c.DataDir, p))
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(homeDir, strings.TrimPrefix(p, "~"))
}
