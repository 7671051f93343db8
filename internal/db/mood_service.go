package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/steady/internal/models"
)

// AddMoodRequest holds a new mood journal entry
type AddMoodRequest struct {
	Date        string // YYYY-MM-DD, empty means today
	Mood        string
	Notes       string
	EnergyLevel int // 0 means the default of 5
	FocusLevel  int // 0 means the default of 5
}

// AddMood appends a mood entry. Entries are never deduplicated by date.
func (s *Store) AddMood(req AddMoodRequest) (*models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.MoodEntry{
		Date:        strings.TrimSpace(req.Date),
		Mood:        strings.TrimSpace(req.Mood),
		Notes:       req.Notes,
		EnergyLevel: req.EnergyLevel,
		FocusLevel:  req.FocusLevel,
	}
	if entry.Date == "" {
		entry.Date = s.today()
	}
	if entry.EnergyLevel == 0 {
		entry.EnergyLevel = models.DefaultLevel
	}
	if entry.FocusLevel == 0 {
		entry.FocusLevel = models.DefaultLevel
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entry).Error
	})
	if err != nil {
		s.log.Error("add mood failed", "date", entry.Date, "error", err)
		return nil, fmt.Errorf("add mood: %w", err)
	}

	s.log.Info("mood recorded", "mood_id", entry.ID, "date", entry.Date)
	return &entry, nil
}

// ListMoods returns every entry, most recently inserted first
func (s *Store) ListMoods() []models.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var moods []models.MoodEntry
	if err := s.db.Order("id DESC").Find(&moods).Error; err != nil {
		s.log.Error("list moods failed", "error", err)
		return []models.MoodEntry{}
	}
	return moods
}

// MoodsByDate returns all entries for date in insertion order
func (s *Store) MoodsByDate(date string) []models.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var moods []models.MoodEntry
	if err := s.db.Where("date = ?", date).Order("id ASC").Find(&moods).Error; err != nil {
		s.log.Error("moods by date failed", "date", date, "error", err)
		return []models.MoodEntry{}
	}
	return moods
}

// LatestMood returns the entry with the highest id, if any
func (s *Store) LatestMood() (*models.MoodEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.MoodEntry
	err := s.db.Order("id DESC").First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("latest mood failed", "error", err)
		}
		return nil, false
	}
	return &entry, true
}

// LatestMoodForDate returns the most recently added entry for one day.
func (s *Store) LatestMoodForDate(date string) (*models.MoodEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry models.MoodEntry
	err := s.db.Where("date = ?", date).Order("id DESC").First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("latest mood for date failed", "date", date, "error", err)
		}
		return nil, false
	}
	return &entry, true
}
