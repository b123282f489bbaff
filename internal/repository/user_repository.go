// internal/repository/user_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/models"
)

// UserRepository provides access to stored users.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Mail         string    `db:"mail"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Username:     r.Username,
		Mail:         r.Mail,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// Create persists a new user. The caller supplies id and timestamps.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := r.db.Rebind(`INSERT INTO users (id, username, mail, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Mail, u.PasswordHash, u.CreatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getBy(ctx, "id", id.String())
}

func (r *UserRepository) GetByMail(ctx context.Context, mail string) (*models.User, error) {
	return r.getBy(ctx, "mail", mail)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*models.User, error) {
	query := r.db.Rebind(fmt.Sprintf(
		`SELECT id, username, mail, password_hash, created_at FROM users WHERE %s = ?`, column))

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, value); err != nil {
		return nil, mapNoRows(err)
	}
	return row.toModel(), nil
}
