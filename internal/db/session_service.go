package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/steady/internal/models"
)

// ErrSessionOpen is returned by StartExclusiveSession while another session
// has not ended
var ErrSessionOpen = errors.New("a session is already open")

var (
	errSessionNotFound = errors.New("session not found")
	errSessionEnded    = errors.New("session already ended")
)

// StartPomodoroSession opens a new session for a task and returns its id.
// It does not check for other open sessions; callers own that rule.
func (s *Store) StartPomodoroSession(taskID uint, plannedMinutes int) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := models.PomodoroSession{
		TaskID:          taskID,
		StartTime:       s.timestamp(),
		PlannedDuration: plannedMinutes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&session).Error
	})
	if err != nil {
		s.log.Error("start session failed", "task_id", taskID, "error", err)
		return 0, fmt.Errorf("start session: %w", err)
	}

	s.log.Info("session started", "session_id", session.ID, "task_id", taskID, "planned_minutes", plannedMinutes)
	return session.ID, nil
}

// StartExclusiveSession opens a session only if no other session is open.
// The check and the insert share one transaction, so two callers cannot
// both succeed: within a process the store lock serializes them, and across
// processes SQLite lets only one writer commit while the other gets a busy
// error.
func (s *Store) StartExclusiveSession(taskID uint, plannedMinutes int) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := models.PomodoroSession{
		TaskID:          taskID,
		StartTime:       s.timestamp(),
		PlannedDuration: plannedMinutes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var open models.PomodoroSession
		err := tx.Where("completed = ?", false).Order("id DESC").First(&open).Error
		if err == nil {
			return fmt.Errorf("%w: session #%d on task #%d", ErrSessionOpen, open.ID, open.TaskID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&session).Error
	})
	if errors.Is(err, ErrSessionOpen) {
		return 0, err
	}
	if err != nil {
		s.log.Error("start session failed", "task_id", taskID, "error", err)
		return 0, fmt.Errorf("start session: %w", err)
	}

	s.log.Info("session started", "session_id", session.ID, "task_id", taskID, "planned_minutes", plannedMinutes)
	return session.ID, nil
}

// EndPomodoroSession completes a session, recording its end time and the
// elapsed whole minutes. It reports false, changing nothing, when the
// session does not exist, is already completed, or storage fails.
func (s *Store) EndPomodoroSession(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	var actual int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.PomodoroSession
		if err := tx.First(&session, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errSessionNotFound
			}
			return err
		}
		if session.Completed {
			return errSessionEnded
		}

		actual = int(now.Sub(session.StartTime) / time.Minute)
		if actual < 0 {
			actual = 0
		}

		return tx.Model(&session).Updates(map[string]any{
			"end_time":        now,
			"actual_duration": actual,
			"completed":       true,
		}).Error
	})
	if err != nil {
		if errors.Is(err, errSessionNotFound) || errors.Is(err, errSessionEnded) {
			s.log.Warn("end session rejected", "session_id", id, "reason", err)
		} else {
			s.log.Error("end session failed", "session_id", id, "error", err)
		}
		return false
	}

	s.log.Info("session ended", "session_id", id, "actual_minutes", actual)
	return true
}

// GetSession retrieves a session by ID
func (s *Store) GetSession(id uint) (*models.PomodoroSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session models.PomodoroSession
	err := s.db.First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session #%d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session #%d: %w", id, err)
	}
	return &session, nil
}

// OpenSession returns the most recently started session that has not ended
func (s *Store) OpenSession() (*models.PomodoroSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session models.PomodoroSession
	err := s.db.Where("completed = ?", false).Order("id DESC").First(&session).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("open session lookup failed", "error", err)
		}
		return nil, false
	}
	return &session, true
}

// RecentSessions returns up to limit completed sessions, newest first.
// A non-positive limit returns all of them.
func (s *Store) RecentSessions(limit int) []models.PomodoroSession {
	if limit <= 0 {
		limit = -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var sessions []models.PomodoroSession
	err := s.db.
		Where("completed = ?", true).
		Order("id DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		s.log.Error("recent sessions failed", "error", err)
		return []models.PomodoroSession{}
	}
	return sessions
}
