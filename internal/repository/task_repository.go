package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasklist-be/internal/entities"
)

// TaskRepository hands out task stores bound to a single owner. There is no
// way to query tasks without first naming the owner.
type TaskRepository interface {
	ForOwner(userID int64) OwnedTaskRepository
}

// OwnedTaskRepository defines task operations implicitly filtered by the
// owner it was created for.
type OwnedTaskRepository interface {
	List(ctx context.Context) ([]*entities.Task, error)
	Create(ctx context.Context, title string) (*entities.Task, error)
	SetCompleted(ctx context.Context, id int64, completed bool) (*entities.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db, now: time.Now}
}

func (r *taskRepository) ForOwner(userID int64) OwnedTaskRepository {
	return &ownedTaskRepository{db: r.db, ownerID: userID, now: r.now}
}

type ownedTaskRepository struct {
	db      *sql.DB
	ownerID int64
	now     func() time.Time
}

// List returns the owner's tasks, newest first.
func (r *ownedTaskRepository) List(ctx context.Context) ([]*entities.Task, error) {
	query := `
		SELECT id, user_id, title, completed, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, r.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entities.Task, 0)
	for rows.Next() {
		var task entities.Task
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Completed,
			&task.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// Create inserts a task owned by the repository's owner.
func (r *ownedTaskRepository) Create(ctx context.Context, title string) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, completed, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	task := entities.Task{
		UserID:    r.ownerID,
		Title:     title,
		Completed: false,
		CreatedAt: r.now().UTC(),
	}
	err := r.db.QueryRowContext(ctx, query, task.UserID, task.Title, task.Completed, task.CreatedAt).Scan(&task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// SetCompleted updates the completed flag and returns the updated row.
// ErrNotFound means the id does not exist or belongs to someone else; in
// both cases nothing was written.
func (r *ownedTaskRepository) SetCompleted(ctx context.Context, id int64, completed bool) (*entities.Task, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET completed = $1
		WHERE id = $2 AND user_id = $3
	`, completed, id, r.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.find(ctx, id)
}

// Delete removes the task if the owner has it. Deleting a missing or foreign
// id is not an error.
func (r *ownedTaskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, r.ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *ownedTaskRepository) find(ctx context.Context, id int64) (*entities.Task, error) {
	query := `
		SELECT id, user_id, title, completed, created_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	var task entities.Task
	err := r.db.QueryRowContext(ctx, query, id, r.ownerID).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Completed,
		&task.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return &task, nil
}
