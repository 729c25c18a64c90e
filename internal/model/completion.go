package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical logical-date form. It sorts
// lexicographically, so string ordering on dates is chronological.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("model: date must be YYYY-MM-DD")

// CompletionLog records a goal's progress for exactly one logical day.
// At most one row exists per (GoalID, Date); absence of a row means no
// progress was recorded.
type CompletionLog struct {
	ID          int64
	GoalID      int64
	Date        string
	Value       float64
	IsCompleted bool
}

func (l CompletionLog) Validate() error {
	if l.GoalID <= 0 {
		return errors.New("model: completion log goal id is required")
	}
	if _, err := time.Parse(DateLayout, l.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, l.Date)
	}
	if l.Value < 0 {
		return fmt.Errorf("model: completion log value must not be negative: %v", l.Value)
	}
	return nil
}
