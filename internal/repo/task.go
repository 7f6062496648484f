package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crucial707/todo-web/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

// TaskRepo persists tasks in the todos table. Every statement carries the
// owner id in its WHERE clause; there is no method that reaches a task by id alone.
type TaskRepo struct {
	DB *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

// ========================
// LIST TASKS FOR OWNER
// ========================

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, task, COALESCE(completed, 0), created_at
		 FROM todos
		 WHERE user_id = ?
		 ORDER BY id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var completed int
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Description, &completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		t.Completed = completed != 0
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tasks, nil
}

// ========================
// CREATE TASK
// ========================

func (r *TaskRepo) Create(ctx context.Context, ownerID int64, description string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO todos (user_id, task, completed) VALUES (?, ?, 0)`,
		ownerID, description,
	)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// ========================
// TOGGLE TASK
// ========================

// Toggle flips completed in a single statement. It reports false when no task
// with that id belongs to ownerID.
func (r *TaskRepo) Toggle(ctx context.Context, ownerID, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE todos
		 SET completed = CASE WHEN completed = 1 THEN 0 ELSE 1 END
		 WHERE id = ? AND user_id = ?`,
		id, ownerID,
	)
	return changed(res, err)
}

// ========================
// DELETE TASK
// ========================

// Delete removes the task only when both id and owner match. It reports false
// when nothing was deleted.
func (r *TaskRepo) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, ownerID)
	return changed(res, err)
}

func changed(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
