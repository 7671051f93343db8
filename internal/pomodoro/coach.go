// Package pomodoro runs the session workflow: read the latest mood and the
// recent history, ask the advisor for a length, then open and close
// sessions in the store.
package pomodoro

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/balkashynov/steady/internal/advisor"
	"github.com/balkashynov/steady/internal/db"
	"github.com/balkashynov/steady/internal/logging"
	"github.com/balkashynov/steady/internal/models"
)

var (
	ErrSessionActive   = errors.New("a pomodoro session is already running")
	ErrNoActiveSession = errors.New("no active pomodoro session")
	ErrEndFailed       = errors.New("failed to end pomodoro session")
)

// Store is what the coach needs from persistence; *db.Store satisfies it
type Store interface {
	GetTask(id uint) (*models.Task, error)
	LatestMood() (*models.MoodEntry, bool)

	StartExclusiveSession(taskID uint, plannedMinutes int) (uint, error)
	EndPomodoroSession(id uint) bool
	GetSession(id uint) (*models.PomodoroSession, error)
	OpenSession() (*models.PomodoroSession, bool)
	RecentSessions(limit int) []models.PomodoroSession
}

// Recommendation is the advisor's answer plus what it was based on
type Recommendation struct {
	Minutes        int
	Mood           models.MoodEntry
	FromJournal    bool // false when no mood was recorded and defaults were used
	HistorySamples int  // completed sessions with a known duration
}

// Coach wires the advisor to the store
type Coach struct {
	store       Store
	historySize int
	log         *slog.Logger
}

// NewCoach creates a coach that looks at the last historySize sessions
func NewCoach(store Store, historySize int, log *slog.Logger) *Coach {
	return &Coach{
		store:       store,
		historySize: historySize,
		log:         logging.OrDiscard(log),
	}
}

// Recommend computes a session length from the latest mood entry and the
// most recent completed sessions
func (c *Coach) Recommend() Recommendation {
	rec := Recommendation{
		Mood: models.MoodEntry{
			Mood:        "Neutral",
			EnergyLevel: models.DefaultLevel,
			FocusLevel:  models.DefaultLevel,
		},
	}
	if latest, ok := c.store.LatestMood(); ok {
		rec.Mood = *latest
		rec.FromJournal = true
	}

	recent := c.store.RecentSessions(c.historySize)
	history := make([]advisor.Session, 0, len(recent))
	for _, s := range recent {
		history = append(history, advisor.Session{ActualDuration: s.Minutes()})
		if s.Minutes() != 0 {
			rec.HistorySamples++
		}
	}

	rec.Minutes = advisor.RecommendSessionLength(advisor.Mood{
		EnergyLevel: rec.Mood.EnergyLevel,
		FocusLevel:  rec.Mood.FocusLevel,
	}, history)

	c.log.Debug("session length recommended",
		"minutes", rec.Minutes,
		"energy", rec.Mood.EnergyLevel,
		"focus", rec.Mood.FocusLevel,
		"history_samples", rec.HistorySamples)
	return rec
}

// Start opens a session on taskID. overrideMinutes > 0 replaces the
// recommendation as the planned length. Only one session may be open; the
// store checks that in the same transaction as the insert, so concurrent
// starts, even from separate processes, cannot both succeed.
func (c *Coach) Start(taskID uint, overrideMinutes int) (*models.PomodoroSession, Recommendation, error) {
	if _, err := c.store.GetTask(taskID); err != nil {
		return nil, Recommendation{}, err
	}

	rec := c.Recommend()
	planned := rec.Minutes
	if overrideMinutes > 0 {
		planned = overrideMinutes
	}

	id, err := c.store.StartExclusiveSession(taskID, planned)
	if errors.Is(err, db.ErrSessionOpen) {
		return nil, rec, fmt.Errorf("%w (%v), stop it first", ErrSessionActive, err)
	}
	if err != nil {
		return nil, rec, err
	}

	session, err := c.store.GetSession(id)
	if err != nil {
		return nil, rec, err
	}
	return session, rec, nil
}

// Stop ends the open session and returns it with its actual duration
func (c *Coach) Stop() (*models.PomodoroSession, error) {
	open, ok := c.store.OpenSession()
	if !ok {
		return nil, ErrNoActiveSession
	}

	if !c.store.EndPomodoroSession(open.ID) {
		return nil, fmt.Errorf("%w #%d", ErrEndFailed, open.ID)
	}

	return c.store.GetSession(open.ID)
}

// Active returns the open session, if any
func (c *Coach) Active() (*models.PomodoroSession, bool) {
	return c.store.OpenSession()
}

// History returns up to limit completed sessions, newest first
func (c *Coach) History(limit int) []models.PomodoroSession {
	return c.store.RecentSessions(limit)
}
