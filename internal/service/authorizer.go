// internal/service/authorizer.go
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/pkg/apperror"
)

// Authorizer decides whether a principal may act on a task. Ownership and
// executorship are established by membership of the task id in the
// principal's task lists. Callers must confirm the task exists first, so a
// missing task surfaces as not-found rather than an authorization failure.
type Authorizer struct {
	tasks TaskStore
}

func NewAuthorizer(tasks TaskStore) *Authorizer {
	return &Authorizer{tasks: tasks}
}

// AuthorizeOwner permits the action iff the principal is the current owner
// of the task.
func (a *Authorizer) AuthorizeOwner(ctx context.Context, principal *models.User, taskID uuid.UUID, action string) error {
	owned, err := a.isOwner(ctx, principal, taskID)
	if err != nil {
		return err
	}
	if !owned {
		return apperror.Unauthorized("not enough rights to %s this task", action)
	}
	return nil
}

// AuthorizeOwnerOrExecutor permits the action iff the principal is the owner
// or the executor of the task. Any other principal is denied even when
// authenticated.
func (a *Authorizer) AuthorizeOwnerOrExecutor(ctx context.Context, principal *models.User, taskID uuid.UUID, action string) error {
	owned, err := a.isOwner(ctx, principal, taskID)
	if err != nil {
		return err
	}
	if owned {
		return nil
	}

	executes, err := a.isExecutor(ctx, principal, taskID)
	if err != nil {
		return err
	}
	if !executes {
		return apperror.Unauthorized("not enough rights to %s this task", action)
	}
	return nil
}

func (a *Authorizer) isOwner(ctx context.Context, principal *models.User, taskID uuid.UUID) (bool, error) {
	tasks, err := a.tasks.ListByOwner(ctx, principal.ID, nil)
	if err != nil {
		return false, err
	}
	return containsTask(tasks, taskID), nil
}

func (a *Authorizer) isExecutor(ctx context.Context, principal *models.User, taskID uuid.UUID) (bool, error) {
	tasks, err := a.tasks.ListByExecutor(ctx, principal.ID, nil)
	if err != nil {
		return false, err
	}
	return containsTask(tasks, taskID), nil
}

func containsTask(tasks []models.Task, id uuid.UUID) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
