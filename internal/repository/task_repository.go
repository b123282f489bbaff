// internal/repository/task_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/models"
)

// TaskRepository provides access to stored tasks. Task rows reference their
// owner and executor by id; the comment list is loaded eagerly on single-task
// reads.
type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID          uuid.UUID     `db:"id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	State       string        `db:"state"`
	Priority    string        `db:"priority"`
	OwnerID     uuid.NullUUID `db:"owner_id"`
	ExecutorID  uuid.NullUUID `db:"executor_id"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

func (r taskRow) toModel() *models.Task {
	t := &models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		State:       models.TaskState(r.State),
		Priority:    models.TaskPriority(r.Priority),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.OwnerID.Valid {
		id := r.OwnerID.UUID
		t.OwnerID = &id
	}
	if r.ExecutorID.Valid {
		id := r.ExecutorID.UUID
		t.ExecutorID = &id
	}
	return t
}

func nullable(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

const taskColumns = `id, title, description, state, priority, owner_id, executor_id, created_at, updated_at`

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	query := r.db.Rebind(`INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, string(t.State), string(t.Priority),
		nullable(t.OwnerID), nullable(t.ExecutorID), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID returns a task with its comment list eagerly loaded.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)

	var row taskRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, mapNoRows(err)
	}

	task := row.toModel()

	comments, err := r.commentsForTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Comments = comments

	return task, nil
}

// ListByOwner returns the tasks owned by userID, oldest first. A nil page
// returns the full set.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID uuid.UUID, page *models.Page) ([]models.Task, error) {
	return r.listBy(ctx, "owner_id", userID, page)
}

// ListByExecutor returns the tasks assigned to userID, oldest first. A nil
// page returns the full set.
func (r *TaskRepository) ListByExecutor(ctx context.Context, userID uuid.UUID, page *models.Page) ([]models.Task, error) {
	return r.listBy(ctx, "executor_id", userID, page)
}

func (r *TaskRepository) listBy(ctx context.Context, column string, userID uuid.UUID, page *models.Page) ([]models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE %s = ? ORDER BY created_at, id`, taskColumns, column)
	args := []interface{}{userID}

	if page != nil {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Size, page.Number*page.Size)
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query tasks by %s: %w", column, err)
	}

	tasks := make([]models.Task, len(rows))
	for i, row := range rows {
		task := row.toModel()
		comments, err := r.commentsForTask(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		task.Comments = comments
		tasks[i] = *task
	}
	return tasks, nil
}

// Update replaces every mutable field of the task row.
func (r *TaskRepository) Update(ctx context.Context, t *models.Task) error {
	query := r.db.Rebind(`UPDATE tasks
		SET title = ?, description = ?, state = ?, priority = ?, owner_id = ?, executor_id = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, string(t.State), string(t.Priority),
		nullable(t.OwnerID), nullable(t.ExecutorID), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task and all comments belonging to it in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM comments WHERE task_id = ?`), id); err != nil {
		return rollback(tx, fmt.Errorf("delete task comments: %w", err))
	}

	res, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return rollback(tx, fmt.Errorf("delete task: %w", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return rollback(tx, fmt.Errorf("delete task: %w", err))
	}
	if affected == 0 {
		return rollback(tx, ErrNotFound)
	}

	return tx.Commit()
}

func (r *TaskRepository) commentsForTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error) {
	query := r.db.Rebind(`SELECT id, task_id, author_id, text, created_at
		FROM comments WHERE task_id = ? ORDER BY created_at, id`)

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, taskID); err != nil {
		return nil, fmt.Errorf("query task comments: %w", err)
	}

	comments := make([]models.Comment, len(rows))
	for i, row := range rows {
		comments[i] = *row.toModel()
	}
	return comments, nil
}

func rollback(tx *sqlx.Tx, err error) error {
	if rerr := tx.Rollback(); rerr != nil {
		err = fmt.Errorf("%w: %v", err, rerr)
	}
	return err
}
