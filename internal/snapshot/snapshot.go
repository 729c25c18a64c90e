// Package snapshot projects the store into line-oriented text for
// external display surfaces (status bars, widgets). The output is a
// derived, disposable cache rebuilt after every mutation; the database
// stays the only source of truth.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shikhr/tuskly/internal/dayclock"
	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/repository"
	"github.com/shikhr/tuskly/internal/settings"
	"github.com/shikhr/tuskly/internal/storage"
)

type Builder struct {
	st       storage.Repository
	broker   *live.Broker
	settings *settings.Store
	goals    *repository.Goals
	tasks    *repository.Tasks
	now      func() time.Time
}

func NewBuilder(st storage.Repository, broker *live.Broker, settingsStore *settings.Store, goals *repository.Goals, tasks *repository.Tasks) *Builder {
	return &Builder{st: st, broker: broker, settings: settingsStore, goals: goals, tasks: tasks, now: time.Now}
}

// GoalLines renders active goals with today's progress, one per line:
// id|name|isBinary|targetValue|currentValue|isCompleted
func (b *Builder) GoalLines(ctx context.Context) (string, error) {
	goals, err := b.st.ListActiveGoals(ctx)
	if err != nil {
		return "", err
	}
	date, err := b.logicalDate(ctx)
	if err != nil {
		return "", err
	}
	logs, err := b.st.ListLogsForDate(ctx, date)
	if err != nil {
		return "", err
	}
	byGoal := make(map[int64]model.CompletionLog, len(logs))
	for _, log := range logs {
		byGoal[log.GoalID] = log
	}

	lines := make([]string, 0, len(goals))
	for _, goal := range goals {
		log := byGoal[goal.ID]
		lines = append(lines, fmt.Sprintf("%d|%s|%t|%g|%g|%t",
			goal.ID, goal.Name, goal.IsBinary(), goal.TargetValue, log.Value, log.IsCompleted))
	}
	return strings.Join(lines, "\n"), nil
}

// TaskLines renders active tasks, one per line: id|title|dueDate with
// an empty due-date field when the task has none.
func (b *Builder) TaskLines(ctx context.Context) (string, error) {
	tasks, err := b.st.ListActiveTasks(ctx)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.UTC().Format(time.RFC3339)
		}
		lines = append(lines, fmt.Sprintf("%d|%s|%s", task.ID, task.Title, due))
	}
	return strings.Join(lines, "\n"), nil
}

// CycleGoalProgress advances a goal's progress for today by one tap.
// Single-step goals toggle. Quantity goals increment by 1, wrap to zero
// after reaching the target, and drop their log row at zero.
func (b *Builder) CycleGoalProgress(ctx context.Context, goalID int64) error {
	goal, err := b.st.GetGoal(ctx, goalID)
	if err != nil {
		return err
	}
	date, err := b.logicalDate(ctx)
	if err != nil {
		return err
	}
	existing, err := b.st.GetLog(ctx, goalID, date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if goal.IsBinary() {
		return b.goals.ToggleCompletion(ctx, goalID, date, existing.Value, goal.TargetValue)
	}

	next := existing.Value + 1
	if existing.Value >= goal.TargetValue {
		next = 0
	}
	if next == 0 {
		if err := b.st.DeleteLog(ctx, goalID, date); err != nil {
			return err
		}
		b.broker.Publish(live.TopicLogs)
		return nil
	}
	return b.goals.UpdateProgress(ctx, goalID, date, next, goal.TargetValue)
}

// ToggleTaskCompletion flips a task between active and completed.
func (b *Builder) ToggleTaskCompletion(ctx context.Context, taskID int64) error {
	task, err := b.st.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task.IsCompleted {
		return b.tasks.Uncomplete(ctx, task)
	}
	return b.tasks.Complete(ctx, task)
}

func (b *Builder) logicalDate(ctx context.Context) (string, error) {
	hour, err := b.settings.ResetHour(ctx)
	if err != nil {
		return "", err
	}
	return dayclock.LogicalDate(b.now(), hour), nil
}
