// Package repository orchestrates goal and task lifecycle policy on top
// of the persistence layer and announces every mutation to the live
// broker before returning.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/storage"
)

type Goals struct {
	st     storage.Repository
	broker *live.Broker

	// now is the clock for deletion timestamps, replaceable in tests.
	now func() time.Time
}

func NewGoals(st storage.Repository, broker *live.Broker) *Goals {
	return &Goals{st: st, broker: broker, now: time.Now}
}

// Add creates a goal with defaults applied: binary target type when
// none is given, target value 1 for single-step goals, sort order
// appended at the end. Callers are expected to trim and validate the
// name, but a blank one is still rejected here.
func (g *Goals) Add(ctx context.Context, name string, targetType model.TargetType, targetValue float64, unit string) (int64, error) {
	name = strings.TrimSpace(name)
	if targetType == "" {
		targetType = model.TargetBinary
	}
	goal := model.Goal{
		Name:        name,
		TargetType:  targetType,
		TargetValue: targetValue,
		Unit:        unit,
		CreatedAt:   g.now(),
	}
	if goal.IsBinary() && goal.TargetValue == 0 {
		goal.TargetValue = 1
	}
	if err := goal.Validate(); err != nil {
		return 0, err
	}
	sortOrder, err := g.st.NextGoalSortOrder(ctx)
	if err != nil {
		return 0, err
	}
	goal.SortOrder = sortOrder
	id, err := g.st.InsertGoal(ctx, goal)
	if err != nil {
		return 0, err
	}
	g.broker.Publish(live.TopicGoals)
	return id, nil
}

// Update replaces the stored goal by id.
func (g *Goals) Update(ctx context.Context, goal model.Goal) error {
	goal.Name = strings.TrimSpace(goal.Name)
	if err := goal.Validate(); err != nil {
		return err
	}
	if err := g.st.UpdateGoal(ctx, goal); err != nil {
		return err
	}
	g.broker.Publish(live.TopicGoals)
	return nil
}

// Delete soft-deletes: the goal moves to the recently-deleted view and
// keeps its completion history until purged.
func (g *Goals) Delete(ctx context.Context, goal model.Goal) error {
	if err := g.st.SoftDeleteGoal(ctx, goal.ID, g.now()); err != nil {
		return err
	}
	g.broker.Publish(live.TopicGoals)
	return nil
}

func (g *Goals) Restore(ctx context.Context, goal model.Goal) error {
	if err := g.st.RestoreGoal(ctx, goal.ID); err != nil {
		return err
	}
	g.broker.Publish(live.TopicGoals)
	return nil
}

// PermanentlyDelete hard-removes the goal; its completion logs go with
// it through the cascade.
func (g *Goals) PermanentlyDelete(ctx context.Context, goal model.Goal) error {
	if err := g.st.DeleteGoal(ctx, goal.ID); err != nil {
		return err
	}
	g.broker.Publish(live.TopicGoals, live.TopicLogs)
	return nil
}

// EmptyDeleted hard-removes every soft-deleted goal at once.
func (g *Goals) EmptyDeleted(ctx context.Context) error {
	if err := g.st.PurgeDeletedGoals(ctx); err != nil {
		return err
	}
	g.broker.Publish(live.TopicGoals, live.TopicLogs)
	return nil
}

// ToggleCompletion flips the goal's state for one logical day. An
// already-completed day loses its log row entirely; anything else jumps
// straight to fully complete, regardless of prior partial progress.
// This is the tap affordance: all or nothing.
func (g *Goals) ToggleCompletion(ctx context.Context, goalID int64, date string, currentValue, targetValue float64) error {
	existing, err := g.st.GetLog(ctx, goalID, date)
	switch {
	case err == nil && existing.IsCompleted:
		if err := g.st.DeleteLog(ctx, goalID, date); err != nil {
			return err
		}
	case err == nil || errors.Is(err, storage.ErrNotFound):
		log := model.CompletionLog{
			GoalID:      goalID,
			Date:        date,
			Value:       targetValue,
			IsCompleted: true,
		}
		if err := log.Validate(); err != nil {
			return err
		}
		if err := g.st.UpsertLog(ctx, log); err != nil {
			return err
		}
	default:
		return err
	}
	g.broker.Publish(live.TopicLogs)
	return nil
}

// UpdateProgress sets the day's progress to an exact value. Unlike
// ToggleCompletion it always persists a row, zero included; the slider
// affordance must round-trip every position it can land on.
func (g *Goals) UpdateProgress(ctx context.Context, goalID int64, date string, value, targetValue float64) error {
	log := model.CompletionLog{
		GoalID:      goalID,
		Date:        date,
		Value:       value,
		IsCompleted: value >= targetValue,
	}
	if err := log.Validate(); err != nil {
		return err
	}
	if err := g.st.UpsertLog(ctx, log); err != nil {
		return err
	}
	g.broker.Publish(live.TopicLogs)
	return nil
}

func (g *Goals) WatchActive(ctx context.Context) (*live.View[[]model.Goal], error) {
	return live.Watch(ctx, g.broker, live.TopicGoals, g.st.ListActiveGoals)
}

func (g *Goals) WatchDeleted(ctx context.Context) (*live.View[[]model.Goal], error) {
	return live.Watch(ctx, g.broker, live.TopicGoals, g.st.ListDeletedGoals)
}

func (g *Goals) WatchLogsForDate(ctx context.Context, date string) (*live.View[[]model.CompletionLog], error) {
	return live.Watch(ctx, g.broker, live.TopicLogs, func(ctx context.Context) ([]model.CompletionLog, error) {
		return g.st.ListLogsForDate(ctx, date)
	})
}

func (g *Goals) WatchLogsForGoal(ctx context.Context, goalID int64) (*live.View[[]model.CompletionLog], error) {
	return live.Watch(ctx, g.broker, live.TopicLogs, func(ctx context.Context) ([]model.CompletionLog, error) {
		return g.st.ListLogsForGoal(ctx, goalID)
	})
}
