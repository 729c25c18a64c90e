package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrBlankName          = errors.New("model: name is required")
	ErrInvalidTargetType  = errors.New("model: invalid target type")
	ErrInvalidTargetValue = errors.New("model: target value must be positive")
)

type TargetType string

const (
	TargetBinary   TargetType = "Binary"
	TargetQuantity TargetType = "Quantity"
	TargetTimer    TargetType = "Timer"
)

func (t TargetType) IsValid() bool {
	switch t {
	case TargetBinary, TargetQuantity, TargetTimer:
		return true
	default:
		return false
	}
}

// Goal is a recurring target evaluated once per logical day. Progress
// lives in CompletionLog rows, one per goal per day.
type Goal struct {
	ID          int64
	Name        string
	TargetType  TargetType
	TargetValue float64
	Unit        string
	SortOrder   int
	CreatedAt   time.Time
	IsArchived  bool
	IsDeleted   bool
	DeletedAt   *time.Time
}

// IsBinary reports whether the goal completes in a single step. Timer
// goals carry no elapsed-time tracking yet and behave as binary.
func (g Goal) IsBinary() bool {
	return g.TargetType != TargetQuantity
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrBlankName
	}
	if !g.TargetType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTargetType, g.TargetType)
	}
	if g.TargetValue <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTargetValue, g.TargetValue)
	}
	if g.CreatedAt.IsZero() {
		return errors.New("model: goal created_at is required")
	}
	if g.IsDeleted && g.DeletedAt == nil {
		return errors.New("model: deleted_at is required when goal is deleted")
	}
	if !g.IsDeleted && g.DeletedAt != nil {
		return errors.New("model: deleted_at must be nil when goal is not deleted")
	}
	return nil
}
