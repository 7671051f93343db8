package db

import (
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/steady/internal/models"
)

func TestCreateTaskRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.CreateTask(TaskRequest{
		Title:       "Write report",
		Description: "quarterly numbers",
		Priority:    models.PriorityHigh,
		Status:      models.StatusInProgress,
		DueDate:     "2025-03-12",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected an assigned id")
	}

	tasks := store.ListTasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || got.Title != "Write report" || got.Description != "quarterly numbers" {
		t.Fatalf("unexpected task %+v", got)
	}
	if got.Priority != models.PriorityHigh || got.Status != models.StatusInProgress || got.Due() != "2025-03-12" {
		t.Fatalf("unexpected task fields %+v", got)
	}
	if !got.CreatedAt.Equal(got.ModifiedAt) {
		t.Fatalf("expected created_at == modified_at, got %v and %v", got.CreatedAt, got.ModifiedAt)
	}
}

func TestCreateTaskDefaultsAndValidation(t *testing.T) {
	store, _ := newTestStore(t)

	task, err := store.CreateTask(TaskRequest{Title: "  padded  "})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Title != "padded" || task.Priority != models.PriorityMedium || task.Status != models.StatusToDo || task.DueDate != nil {
		t.Fatalf("unexpected defaults %+v", task)
	}

	tests := []struct {
		name string
		req  TaskRequest
		want error
	}{
		{"empty title", TaskRequest{Title: "   "}, ErrEmptyTitle},
		{"bad priority", TaskRequest{Title: "x", Priority: 9}, ErrInvalidPriority},
		{"bad status", TaskRequest{Title: "x", Status: "someday"}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.CreateTask(tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if n := len(store.ListTasks()); n != 1 {
		t.Fatalf("rejected tasks must not be stored, have %d", n)
	}
}

func TestListTasksOrdering(t *testing.T) {
	store, clock := newTestStore(t)

	create := func(title, due string) uint {
		t.Helper()
		task, err := store.CreateTask(TaskRequest{Title: title, DueDate: due})
		if err != nil {
			t.Fatalf("CreateTask(%s) failed: %v", title, err)
		}
		clock.Advance(time.Minute)
		return task.ID
	}

	create("no due old", "")
	create("due later", "2025-04-01")
	create("due soon old", "2025-03-11")
	create("due soon new", "2025-03-11")
	create("no due new", "")

	want := []string{"due soon new", "due soon old", "due later", "no due new", "no due old"}
	tasks := store.ListTasks()
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, tasks[i].Title)
		}
	}
}

func TestUpdateTask(t *testing.T) {
	store, clock := newTestStore(t)

	task, err := store.CreateTask(TaskRequest{Title: "Draft", Description: "v1", DueDate: "2025-03-11"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	clock.Advance(90 * time.Second)
	err = store.UpdateTask(task.ID, TaskRequest{
		Title:    "Final",
		Priority: models.PriorityLow,
		Status:   models.StatusDone,
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got, err := store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != "Final" || got.Description != "" || got.Priority != models.PriorityLow || got.Status != models.StatusDone {
		t.Fatalf("fields not overwritten: %+v", got)
	}
	if got.DueDate != nil {
		t.Fatalf("expected due date to be cleared, got %q", *got.DueDate)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Fatalf("created_at must not change: %v -> %v", task.CreatedAt, got.CreatedAt)
	}
	if got.ModifiedAt.Sub(got.CreatedAt) != 90*time.Second {
		t.Fatalf("expected modified_at to move 90s, got %v", got.ModifiedAt.Sub(got.CreatedAt))
	}
}

func TestUpdateTaskMissingAndInvalid(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.UpdateTask(404, TaskRequest{Title: "ghost"}); err != nil {
		t.Fatalf("update of missing task should be a no-op, got %v", err)
	}
	if n := len(store.ListTasks()); n != 0 {
		t.Fatalf("update must not create tasks, have %d", n)
	}

	task, err := store.CreateTask(TaskRequest{Title: "keep"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := store.UpdateTask(task.ID, TaskRequest{Title: ""}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	got, _ := store.GetTask(task.ID)
	if got.Title != "keep" {
		t.Fatalf("rejected update must not write, got %q", got.Title)
	}
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	task, err := store.CreateTask(TaskRequest{Title: "temporary"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if _, err := store.GetTask(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTasksByDueDate(t *testing.T) {
	store, _ := newTestStore(t)

	seed := []TaskRequest{
		{Title: "low", Priority: models.PriorityLow, DueDate: "2025-03-11"},
		{Title: "high", Priority: models.PriorityHigh, DueDate: "2025-03-11"},
		{Title: "other day", Priority: models.PriorityHigh, DueDate: "2025-03-12"},
		{Title: "medium", Priority: models.PriorityMedium, DueDate: "2025-03-11"},
		{Title: "undated", Priority: models.PriorityHigh},
	}
	for _, req := range seed {
		if _, err := store.CreateTask(req); err != nil {
			t.Fatalf("CreateTask(%s) failed: %v", req.Title, err)
		}
	}

	tasks := store.TasksByDueDate("2025-03-11")
	want := []string{"high", "medium", "low"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, tasks[i].Title)
		}
	}

	if tasks := store.TasksByDueDate("1999-01-01"); len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}
