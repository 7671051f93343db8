package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/steady/internal/models"
)

var (
	ErrEmptyTitle      = errors.New("task title is required")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrTaskNotFound    = errors.New("task not found")
)

// TaskRequest holds the mutable fields of a task, used for create and update
type TaskRequest struct {
	Title       string
	Description string
	Priority    models.Priority // zero means medium
	Status      models.Status   // empty means todo
	DueDate     string          // YYYY-MM-DD, empty for none
}

// normalize fills defaults and validates the request
func (req TaskRequest) normalize() (TaskRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return req, ErrEmptyTitle
	}
	if req.Priority == 0 {
		req.Priority = models.PriorityMedium
	}
	if !req.Priority.Valid() {
		return req, fmt.Errorf("%w: %d", ErrInvalidPriority, req.Priority)
	}
	if req.Status == "" {
		req.Status = models.StatusToDo
	}
	if !req.Status.Valid() {
		return req, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	req.DueDate = strings.TrimSpace(req.DueDate)
	return req, nil
}

func (req TaskRequest) dueDate() *string {
	if req.DueDate == "" {
		return nil
	}
	due := req.DueDate
	return &due
}

// CreateTask creates a new task
func (s *Store) CreateTask(req TaskRequest) (*models.Task, error) {
	req, err := req.normalize()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.dueDate(),
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&task).Error
	})
	if err != nil {
		s.log.Error("create task failed", "title", req.Title, "error", err)
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.Info("task created", "task_id", task.ID)
	return &task, nil
}

// ListTasks returns all tasks: dated tasks first by ascending due date, then
// undated ones, newest first within equal dates. Storage errors are logged
// and yield an empty list.
func (s *Store) ListTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []models.Task
	err := s.db.
		Order("due_date IS NULL").
		Order("due_date ASC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&tasks).Error
	if err != nil {
		s.log.Error("list tasks failed", "error", err)
		return []models.Task{}
	}
	return tasks
}

// GetTask retrieves a task by ID
func (s *Store) GetTask(id uint) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task models.Task
	err := s.db.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
	}
	if err != nil {
		s.log.Error("get task failed", "task_id", id, "error", err)
		return nil, fmt.Errorf("get task #%d: %w", id, err)
	}
	return &task, nil
}

// UpdateTask overwrites the mutable fields of a task and bumps modified_at.
// Updating an id that does not exist is a no-op.
func (s *Store) UpdateTask(id uint, req TaskRequest) error {
	req, err := req.normalize()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// map so that empty description and cleared due dates are written too
	fields := map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"priority":    req.Priority,
		"status":      req.Status,
		"due_date":    req.dueDate(),
		"modified_at": s.timestamp(),
	}

	var affected int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).Where("id = ?", id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		s.log.Error("update task failed", "task_id", id, "error", err)
		return fmt.Errorf("update task #%d: %w", id, err)
	}

	if affected == 0 {
		s.log.Debug("update of missing task ignored", "task_id", id)
	}
	return nil
}

// DeleteTask removes a task. Deleting a missing id is not an error.
func (s *Store) DeleteTask(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Task{}, id).Error
	})
	if err != nil {
		s.log.Error("delete task failed", "task_id", id, "error", err)
		return fmt.Errorf("delete task #%d: %w", id, err)
	}
	return nil
}

// TasksByDueDate returns tasks due exactly on date, highest priority first
func (s *Store) TasksByDueDate(date string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []models.Task
	err := s.db.
		Where("due_date = ?", date).
		Order("priority DESC").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		s.log.Error("tasks by due date failed", "date", date, "error", err)
		return []models.Task{}
	}
	return tasks
}
