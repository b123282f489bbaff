// internal/service/test_helpers_test.go
package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/database"
	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/pkg/auth"
)

// TestHelpers provides common test utilities over a real in-memory database.
type TestHelpers struct {
	t               *testing.T
	Users           *repository.UserRepository
	Tasks           *repository.TaskRepository
	Comments        *repository.CommentRepository
	passwordManager *auth.PasswordManager
	clock           time.Time
}

func NewTestHelpers(t *testing.T) *TestHelpers {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })

	return &TestHelpers{
		t:               t,
		Users:           repository.NewUserRepository(db),
		Tasks:           repository.NewTaskRepository(db),
		Comments:        repository.NewCommentRepository(db),
		passwordManager: auth.NewPasswordManager(),
		clock:           time.Now().UTC(),
	}
}

// CreateTestUser creates a user with a hashed password.
func (h *TestHelpers) CreateTestUser(username, mail, password string) *models.User {
	hash, err := h.passwordManager.HashPassword(password)
	require.NoError(h.t, err)

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Mail:         mail,
		PasswordHash: hash,
		CreatedAt:    h.tick(),
	}
	require.NoError(h.t, h.Users.Create(context.Background(), user))
	return user
}

// CreateTask inserts a task with distinct, increasing timestamps so list
// ordering is deterministic.
func (h *TestHelpers) CreateTask(title string, owner, executor *models.User) *models.Task {
	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		State:       models.TaskStateWaiting,
		Priority:    models.TaskPriorityMedium,
		CreatedAt:   h.tick(),
	}
	task.UpdatedAt = task.CreatedAt
	if owner != nil {
		task.OwnerID = &owner.ID
	}
	if executor != nil {
		task.ExecutorID = &executor.ID
	}
	require.NoError(h.t, h.Tasks.Create(context.Background(), task))
	return task
}

// AsPrincipal returns a context carrying user as the authenticated principal.
func (h *TestHelpers) AsPrincipal(user *models.User) context.Context {
	return middleware.WithPrincipal(context.Background(), user)
}

func (h *TestHelpers) tick() time.Time {
	h.clock = h.clock.Add(time.Second)
	return h.clock
}
