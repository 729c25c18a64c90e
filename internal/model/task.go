package model

import (
	"errors"
	"strings"
	"time"
)

var ErrBlankTitle = errors.New("model: title is required")

// Task is a one-time actionable item. Completion and soft-deletion are
// independent flags; a task can be completed and deleted at once.
type Task struct {
	ID          int64
	Title       string
	IsCompleted bool
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	SortOrder   int
	IsDeleted   bool
	DeletedAt   *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrBlankTitle
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.IsCompleted && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.IsCompleted && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	if t.IsDeleted && t.DeletedAt == nil {
		return errors.New("model: deleted_at is required when task is deleted")
	}
	if !t.IsDeleted && t.DeletedAt != nil {
		return errors.New("model: deleted_at must be nil when task is not deleted")
	}
	return nil
}
