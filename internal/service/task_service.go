// internal/service/task_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/middleware"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/pkg/apperror"
)

// TaskService owns the task and comment lifecycle. Every operation follows
// the same pattern: resolve the principal, confirm the target exists,
// authorize, then mutate.
type TaskService struct {
	tasks    TaskStore
	users    UserStore
	comments CommentStore
	authz    *Authorizer
}

func NewTaskService(tasks TaskStore, users UserStore, comments CommentStore) *TaskService {
	return &TaskService{
		tasks:    tasks,
		users:    users,
		comments: comments,
		authz:    NewAuthorizer(tasks),
	}
}

// TaskInput carries the full field set of a task. On update the fields
// replace the stored task wholesale; absent owner/executor ids clear the
// references.
type TaskInput struct {
	Title       string
	Description string
	State       models.TaskState
	Priority    models.TaskPriority
	OwnerID     *uuid.UUID
	ExecutorID  *uuid.UUID
}

// Create persists a new task. Any authenticated principal may create a task;
// the creator need not become the owner. Supplied owner/executor ids must
// resolve to existing users.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	if _, err := s.principal(ctx); err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, apperror.Validation("title is required")
	}

	if err := s.checkUserRefs(ctx, in.OwnerID, in.ExecutorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		State:       in.State,
		Priority:    in.Priority,
		OwnerID:     in.OwnerID,
		ExecutorID:  in.ExecutorID,
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetByID returns a task with owner, executor and comments resolved. Reads
// carry no ownership restriction.
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if _, err := s.principal(ctx); err != nil {
		return nil, err
	}
	return s.getTask(ctx, id)
}

// ListByOwner returns the tasks owned by ownerID.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page *models.Page) ([]models.Task, error) {
	if _, err := s.principal(ctx); err != nil {
		return nil, err
	}

	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.ListByOwner(ctx, ownerID, page)
}

// ListByExecutor returns the tasks assigned to executorID.
func (s *TaskService) ListByExecutor(ctx context.Context, executorID uuid.UUID, page *models.Page) ([]models.Task, error) {
	if _, err := s.principal(ctx); err != nil {
		return nil, err
	}

	if err := s.checkUserExists(ctx, executorID); err != nil {
		return nil, err
	}
	return s.tasks.ListByExecutor(ctx, executorID, page)
}

// Update replaces title, description, priority, state, owner and executor
// wholesale. Only the current owner may update, and the owner may reassign
// ownership away from themselves.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, in TaskInput) (*models.Task, error) {
	principal, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.AuthorizeOwner(ctx, principal, id, "update"); err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, apperror.Validation("title is required")
	}
	if err := s.checkUserRefs(ctx, in.OwnerID, in.ExecutorID); err != nil {
		return nil, err
	}

	task.Title = in.Title
	task.Description = in.Description
	task.State = in.State
	task.Priority = in.Priority
	task.OwnerID = in.OwnerID
	task.ExecutorID = in.ExecutorID
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, mapStoreErr(err, "task")
	}
	return task, nil
}

// ChangeStatus sets the task state unconditionally; no transition graph
// restricts which states may follow which.
func (s *TaskService) ChangeStatus(ctx context.Context, id uuid.UUID, state models.TaskState) error {
	principal, err := s.principal(ctx)
	if err != nil {
		return err
	}

	task, err := s.getTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authz.AuthorizeOwner(ctx, principal, id, "update state of"); err != nil {
		return err
	}

	task.State = state
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		return mapStoreErr(err, "task")
	}
	return nil
}

// SetExecutor assigns executorID as the task's executor.
func (s *TaskService) SetExecutor(ctx context.Context, id, executorID uuid.UUID) error {
	principal, err := s.principal(ctx)
	if err != nil {
		return err
	}

	task, err := s.getTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authz.AuthorizeOwner(ctx, principal, id, "set executor for"); err != nil {
		return err
	}

	if err := s.checkUserExists(ctx, executorID); err != nil {
		return err
	}

	task.ExecutorID = &executorID
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		return mapStoreErr(err, "task")
	}
	return nil
}

// Delete removes the task and cascades deletion of its comments.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	principal, err := s.principal(ctx)
	if err != nil {
		return err
	}

	if _, err := s.getTask(ctx, id); err != nil {
		return err
	}

	if err := s.authz.AuthorizeOwner(ctx, principal, id, "delete"); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return mapStoreErr(err, "task")
	}
	return nil
}

// AddComment attaches a comment to the task. The author is always the
// authenticated principal, never caller-supplied.
func (s *TaskService) AddComment(ctx context.Context, taskID uuid.UUID, text string) (*models.Comment, error) {
	principal, err := s.principal(ctx)
	if err != nil {
		return nil, err
	}

	if text == "" {
		return nil, apperror.Validation("text is required")
	}

	if _, err := s.getTask(ctx, taskID); err != nil {
		return nil, err
	}

	if err := s.authz.AuthorizeOwnerOrExecutor(ctx, principal, taskID, "add comment to"); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  principal.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *TaskService) principal(ctx context.Context) (*models.User, error) {
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		return nil, apperror.Unauthenticated("user not authenticated")
	}
	return principal, nil
}

func (s *TaskService) getTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "task")
	}
	return task, nil
}

func (s *TaskService) checkUserExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return mapStoreErr(err, "user")
	}
	return nil
}

func (s *TaskService) checkUserRefs(ctx context.Context, ownerID, executorID *uuid.UUID) error {
	if ownerID != nil {
		if err := s.checkUserExists(ctx, *ownerID); err != nil {
			return err
		}
	}
	if executorID != nil {
		if err := s.checkUserExists(ctx, *executorID); err != nil {
			return err
		}
	}
	return nil
}

func mapStoreErr(err error, entity string) error {
	if repository.IsNotFound(err) {
		return apperror.NotFound("%s not found", entity)
	}
	return err
}
