// internal/service/ports.go
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Storage collaborators consumed by the services. The sqlx repositories in
// internal/repository satisfy these.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByMail(ctx context.Context, mail string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type TaskStore interface {
	Create(ctx context.Context, t *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByOwner(ctx context.Context, userID uuid.UUID, page *models.Page) ([]models.Task, error)
	ListByExecutor(ctx context.Context, userID uuid.UUID, page *models.Page) ([]models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
}
