package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/crucial707/todo-web/internal/metrics"
	"github.com/crucial707/todo-web/internal/models"
	"github.com/crucial707/todo-web/internal/repo"
)

// TaskService manages a user's tasks. Every method takes the acting user's id
// and passes it down to the store, which scopes each statement by owner.
type TaskService struct {
	tasks *repo.TaskRepo
	log   *slog.Logger
}

func NewTaskService(tasks *repo.TaskRepo, log *slog.Logger) *TaskService {
	return &TaskService{tasks: tasks, log: log}
}

// List returns the user's tasks, newest first. Store errors are logged and
// an empty list is returned so the dashboard still renders.
func (s *TaskService) List(ctx context.Context, userID int64) []models.Task {
	tasks, err := s.tasks.ListByOwner(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "list tasks", "user_id", userID, "err", err)
		metrics.RecordTaskOp("list", "error")
		return []models.Task{}
	}
	return tasks
}

// Create adds a task with the trimmed description. A blank description is ignored.
func (s *TaskService) Create(ctx context.Context, userID int64, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		metrics.RecordTaskOp("create", "ignored")
		return nil
	}

	id, err := s.tasks.Create(ctx, userID, description)
	if err != nil {
		metrics.RecordTaskOp("create", "error")
		return err
	}
	metrics.RecordTaskOp("create", "ok")
	s.log.DebugContext(ctx, "task created", "user_id", userID, "task_id", id)
	return nil
}

// Toggle flips the task's completed flag. A task the user does not own is
// treated as missing: nothing changes and nil is returned.
func (s *TaskService) Toggle(ctx context.Context, userID, taskID int64) error {
	ok, err := s.tasks.Toggle(ctx, userID, taskID)
	if err != nil {
		metrics.RecordTaskOp("toggle", "error")
		return err
	}
	if !ok {
		metrics.RecordTaskOp("toggle", "not_found")
		s.log.WarnContext(ctx, "task not found for toggle", "user_id", userID, "task_id", taskID)
		return nil
	}
	metrics.RecordTaskOp("toggle", "ok")
	return nil
}

// Delete removes the task if the user owns it; otherwise it is a no-op.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	ok, err := s.tasks.Delete(ctx, userID, taskID)
	if err != nil {
		metrics.RecordTaskOp("delete", "error")
		return err
	}
	if !ok {
		metrics.RecordTaskOp("delete", "not_found")
		return nil
	}
	metrics.RecordTaskOp("delete", "ok")
	return nil
}
