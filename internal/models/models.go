// internal/models/models.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskState is the lifecycle state of a task. The set is closed but no
// transition graph is enforced: an authorized owner may set any value,
// including backward transitions.
type TaskState string

const (
	TaskStateWaiting    TaskState = "WAITING"
	TaskStateInProgress TaskState = "IN_PROGRESS"
	TaskStateCompleted  TaskState = "COMPLETED"
)

// ParseTaskState validates membership in the closed state set.
func ParseTaskState(s string) (TaskState, error) {
	switch TaskState(s) {
	case TaskStateWaiting, TaskStateInProgress, TaskStateCompleted:
		return TaskState(s), nil
	default:
		return "", fmt.Errorf("unknown task state %q", s)
	}
}

// TaskPriority is a purely descriptive priority label.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// ParseTaskPriority validates membership in the closed priority set.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return TaskPriority(s), nil
	default:
		return "", fmt.Errorf("unknown task priority %q", s)
	}
}

// User is a registered identity. Unique on mail and username.
type User struct {
	ID           uuid.UUID
	Username     string
	Mail         string
	PasswordHash string
	CreatedAt    time.Time
}

// Task is a unit of tracked work. Owner and executor are independent,
// optional references; they may point at the same user.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	State       TaskState
	Priority    TaskPriority
	OwnerID     *uuid.UUID
	ExecutorID  *uuid.UUID
	Comments    []Comment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment belongs to exactly one task and has exactly one author. Comments
// are immutable once created.
type Comment struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
}

// Page is an optional zero-indexed pagination window. A nil *Page means the
// full result set.
type Page struct {
	Number int
	Size   int
}
