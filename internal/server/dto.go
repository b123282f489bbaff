// internal/server/dto.go
package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/pkg/apperror"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Mail      string    `json:"mail"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	State       string  `json:"state"`
	Priority    string  `json:"priority"`
	OwnerID     *string `json:"owner_id"`
	ExecutorID  *string `json:"executor_id"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	State       string            `json:"state"`
	Priority    string            `json:"priority"`
	OwnerID     *string           `json:"owner_id"`
	ExecutorID  *string           `json:"executor_id"`
	Comments    []CommentResponse `json:"comments"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CommentRequest struct {
	TaskID string `json:"task_id"`
	Text   string `json:"text"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversions are explicit and field-by-field: the field list is part of the
// API contract.

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Mail:      u.Mail,
		CreatedAt: u.CreatedAt,
	}
}

func toTaskInput(req TaskRequest) (service.TaskInput, error) {
	in := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		State:       models.TaskStateWaiting,
		Priority:    models.TaskPriorityMedium,
	}

	if req.State != "" {
		state, err := models.ParseTaskState(req.State)
		if err != nil {
			return service.TaskInput{}, apperror.Validation("invalid state: %v", err)
		}
		in.State = state
	}

	if req.Priority != "" {
		priority, err := models.ParseTaskPriority(req.Priority)
		if err != nil {
			return service.TaskInput{}, apperror.Validation("invalid priority: %v", err)
		}
		in.Priority = priority
	}

	if req.OwnerID != nil {
		id, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return service.TaskInput{}, apperror.Validation("invalid owner id")
		}
		in.OwnerID = &id
	}

	if req.ExecutorID != nil {
		id, err := uuid.Parse(*req.ExecutorID)
		if err != nil {
			return service.TaskInput{}, apperror.Validation("invalid executor id")
		}
		in.ExecutorID = &id
	}

	return in, nil
}

func toTaskResponse(t *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		State:       string(t.State),
		Priority:    string(t.Priority),
		Comments:    make([]CommentResponse, len(t.Comments)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.OwnerID != nil {
		id := t.OwnerID.String()
		resp.OwnerID = &id
	}
	if t.ExecutorID != nil {
		id := t.ExecutorID.String()
		resp.ExecutorID = &id
	}

	for i, comment := range t.Comments {
		resp.Comments[i] = toCommentResponse(comment)
	}

	return resp
}

func toCommentResponse(c models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		TaskID:    c.TaskID.String(),
		AuthorID:  c.AuthorID.String(),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
