package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/steady/internal/logging"
	"github.com/balkashynov/steady/internal/models"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Store owns the single long-lived database handle. Every call takes the
// store lock, so concurrent callers are serialized, and every write runs in
// its own transaction.
type Store struct {
	db  *gorm.DB
	mu  sync.Mutex
	log *slog.Logger
	now func() time.Time

	sqlDebug bool
	closed   bool
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSQLLogging routes gorm's query log through the store logger
func WithSQLLogging(enabled bool) Option {
	return func(s *Store) { s.sqlDebug = enabled }
}

// Open sets up the database connection and runs migrations
func Open(path string, log *slog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		log: logging.OrDiscard(log),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if path != MemoryPath {
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	gormLogger := logger.Default.LogMode(logger.Silent) // Quiet by default
	if s.sqlDebug {
		gormLogger = logger.New(slog.NewLogLogger(s.log.Handler(), slog.LevelDebug), logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Info,
		})
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: SQLite has a single writer anyway, and an in-memory
	// database only lives as long as its connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s.db = db
	if err := s.runMigrations(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s.log.Debug("database ready", "path", path)
	return s, nil
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	return s.db.AutoMigrate(
		&models.Task{},
		&models.MoodEntry{},
		&models.PomodoroSession{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.closed = true
	return sqlDB.Close()
}

// timestamp returns the current time at the second resolution we persist
func (s *Store) timestamp() time.Time {
	return s.now().Truncate(time.Second)
}

// today returns the current local date as YYYY-MM-DD
func (s *Store) today() string {
	return s.now().Format(models.DateLayout)
}
