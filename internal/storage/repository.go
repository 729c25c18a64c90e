package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shikhr/tuskly/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the persistence contract for the goals, tasks,
// completion_logs and settings tables. Implementations must keep the
// (goal_id, date) uniqueness of completion logs atomic under concurrent
// upserts and cascade log deletion with goal deletion.
type Repository interface {
	InsertGoal(ctx context.Context, in model.Goal) (int64, error)
	GetGoal(ctx context.Context, id int64) (model.Goal, error)
	UpdateGoal(ctx context.Context, in model.Goal) error
	DeleteGoal(ctx context.Context, id int64) error
	SoftDeleteGoal(ctx context.Context, id int64, deletedAt time.Time) error
	RestoreGoal(ctx context.Context, id int64) error
	PurgeDeletedGoals(ctx context.Context) error
	ListActiveGoals(ctx context.Context) ([]model.Goal, error)
	ListDeletedGoals(ctx context.Context) ([]model.Goal, error)
	NextGoalSortOrder(ctx context.Context) (int, error)

	InsertTask(ctx context.Context, in model.Task) (int64, error)
	GetTask(ctx context.Context, id int64) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id int64) error
	SoftDeleteTask(ctx context.Context, id int64, deletedAt time.Time) error
	RestoreTask(ctx context.Context, id int64) error
	PurgeDeletedTasks(ctx context.Context) error
	ListActiveTasks(ctx context.Context) ([]model.Task, error)
	ListCompletedTasks(ctx context.Context) ([]model.Task, error)
	ListDeletedTasks(ctx context.Context) ([]model.Task, error)
	NextTaskSortOrder(ctx context.Context) (int, error)

	GetLog(ctx context.Context, goalID int64, date string) (model.CompletionLog, error)
	ListLogsForDate(ctx context.Context, date string) ([]model.CompletionLog, error)
	ListLogsForGoal(ctx context.Context, goalID int64) ([]model.CompletionLog, error)
	UpsertLog(ctx context.Context, in model.CompletionLog) error
	DeleteLog(ctx context.Context, goalID int64, date string) error

	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}
