// internal/repository/comment_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/models"
)

// CommentRepository provides access to stored comments. Comments have no
// update or delete operation; they are removed only by task deletion.
type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentRow struct {
	ID        uuid.UUID `db:"id"`
	TaskID    uuid.UUID `db:"task_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

func (r commentRow) toModel() *models.Comment {
	return &models.Comment{
		ID:        r.ID,
		TaskID:    r.TaskID,
		AuthorID:  r.AuthorID,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	query := r.db.Rebind(`INSERT INTO comments (id, task_id, author_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, c.ID, c.TaskID, c.AuthorID, c.Text, c.CreatedAt); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := r.db.Rebind(`SELECT id, task_id, author_id, text, created_at FROM comments WHERE id = ?`)

	var row commentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return row.toModel(), nil
}
