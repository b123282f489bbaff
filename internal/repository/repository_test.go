// internal/repository/repository_test.go
package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/database"
	"github.com/taskdeck/taskdeck/internal/models"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertUser(t *testing.T, users *UserRepository, username, mail string) *models.User {
	u := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Mail:         mail,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func insertTask(t *testing.T, tasks *TaskRepository, title string, ownerID, executorID *uuid.UUID, createdAt time.Time) *models.Task {
	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		State:       models.TaskStateWaiting,
		Priority:    models.TaskPriorityMedium,
		OwnerID:     ownerID,
		ExecutorID:  executorID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}

func TestUserRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	created := insertUser(t, users, "alice", "alice@example.com")

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byMail, err := users.GetByMail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byMail.ID)

	byUsername, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	_, err = users.GetByMail(ctx, "nobody@example.com")
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	insertUser(t, users, "alice", "alice@example.com")

	dup := &models.User{ID: uuid.New(), Username: "alice", Mail: "other@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	assert.Error(t, users.Create(ctx, dup))

	dup = &models.User{ID: uuid.New(), Username: "other", Mail: "alice@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	assert.Error(t, users.Create(ctx, dup))
}

func TestTaskRepository_GetByIDEagerLoadsComments(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	owner := insertUser(t, users, "alice", "alice@example.com")
	task := insertTask(t, tasks, "task", &owner.ID, nil, time.Now().UTC())

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		c := &models.Comment{
			ID:        uuid.New(),
			TaskID:    task.ID,
			AuthorID:  owner.ID,
			Text:      fmt.Sprintf("comment %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, comments.Create(ctx, c))
	}

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 3)
	assert.Equal(t, "comment 0", got.Comments[0].Text)
	assert.Equal(t, "comment 2", got.Comments[2].Text)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, owner.ID, *got.OwnerID)
	assert.Nil(t, got.ExecutorID)

	_, err = tasks.GetByID(ctx, uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestTaskRepository_ListByOwnerPagination(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := insertUser(t, users, "alice", "alice@example.com")

	base := time.Now().UTC()
	var created []*models.Task
	for i := 0; i < 5; i++ {
		task := insertTask(t, tasks, fmt.Sprintf("task %d", i), &owner.ID, nil, base.Add(time.Duration(i)*time.Second))
		created = append(created, task)
	}

	// Full set when no page is given.
	all, err := tasks.ListByOwner(ctx, owner.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	// Zero-indexed window: page 1 of size 2 holds tasks 2 and 3.
	page, err := tasks.ListByOwner(ctx, owner.ID, &models.Page{Number: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, created[2].ID, page[0].ID)
	assert.Equal(t, created[3].ID, page[1].ID)

	// Window past the end is empty.
	page, err = tasks.ListByOwner(ctx, owner.ID, &models.Page{Number: 5, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestTaskRepository_ListByExecutor(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := insertUser(t, users, "alice", "alice@example.com")
	executor := insertUser(t, users, "bob", "bob@example.com")

	insertTask(t, tasks, "owned only", &owner.ID, nil, time.Now().UTC())
	assigned := insertTask(t, tasks, "assigned", &owner.ID, &executor.ID, time.Now().UTC())

	list, err := tasks.ListByExecutor(ctx, executor.ID, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, assigned.ID, list[0].ID)
}

func TestTaskRepository_UpdateReplacesFields(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := insertUser(t, users, "alice", "alice@example.com")
	task := insertTask(t, tasks, "before", &owner.ID, nil, time.Now().UTC())

	task.Title = "after"
	task.State = models.TaskStateCompleted
	task.OwnerID = nil
	task.UpdatedAt = time.Now().UTC()
	require.NoError(t, tasks.Update(ctx, task))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, models.TaskStateCompleted, got.State)
	assert.Nil(t, got.OwnerID)

	missing := *task
	missing.ID = uuid.New()
	assert.True(t, IsNotFound(tasks.Update(ctx, &missing)))
}

func TestTaskRepository_DeleteCascadesComments(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	owner := insertUser(t, users, "alice", "alice@example.com")
	task := insertTask(t, tasks, "task", &owner.ID, nil, time.Now().UTC())

	comment := &models.Comment{ID: uuid.New(), TaskID: task.ID, AuthorID: owner.ID, Text: "hello", CreatedAt: time.Now().UTC()}
	require.NoError(t, comments.Create(ctx, comment))

	require.NoError(t, tasks.Delete(ctx, task.ID))

	_, err := tasks.GetByID(ctx, task.ID)
	assert.True(t, IsNotFound(err))

	_, err = comments.GetByID(ctx, comment.ID)
	assert.True(t, IsNotFound(err))

	assert.True(t, IsNotFound(tasks.Delete(ctx, uuid.New())))
}
