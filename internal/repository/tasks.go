package repository

import (
	"context"
	"strings"
	"time"

	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/storage"
)

type Tasks struct {
	st     storage.Repository
	broker *live.Broker
	now    func() time.Time
}

func NewTasks(st storage.Repository, broker *live.Broker) *Tasks {
	return &Tasks{st: st, broker: broker, now: time.Now}
}

// Add creates a task. dueDate may be nil for no deadline; a due date
// without a time of day means date-only due.
func (t *Tasks) Add(ctx context.Context, title string, dueDate *time.Time) (int64, error) {
	title = strings.TrimSpace(title)
	task := model.Task{
		Title:     title,
		DueDate:   dueDate,
		CreatedAt: t.now(),
	}
	if err := task.Validate(); err != nil {
		return 0, err
	}
	sortOrder, err := t.st.NextTaskSortOrder(ctx)
	if err != nil {
		return 0, err
	}
	task.SortOrder = sortOrder
	id, err := t.st.InsertTask(ctx, task)
	if err != nil {
		return 0, err
	}
	t.broker.Publish(live.TopicTasks)
	return id, nil
}

func (t *Tasks) Complete(ctx context.Context, task model.Task) error {
	completedAt := t.now()
	task.IsCompleted = true
	task.CompletedAt = &completedAt
	return t.Update(ctx, task)
}

func (t *Tasks) Uncomplete(ctx context.Context, task model.Task) error {
	task.IsCompleted = false
	task.CompletedAt = nil
	return t.Update(ctx, task)
}

// Update replaces the stored task by id.
func (t *Tasks) Update(ctx context.Context, task model.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if err := task.Validate(); err != nil {
		return err
	}
	if err := t.st.UpdateTask(ctx, task); err != nil {
		return err
	}
	t.broker.Publish(live.TopicTasks)
	return nil
}

// Delete soft-deletes. Completion and deletion are independent, so a
// completed task lands in the recently-deleted view still completed.
func (t *Tasks) Delete(ctx context.Context, task model.Task) error {
	if err := t.st.SoftDeleteTask(ctx, task.ID, t.now()); err != nil {
		return err
	}
	t.broker.Publish(live.TopicTasks)
	return nil
}

func (t *Tasks) Restore(ctx context.Context, task model.Task) error {
	if err := t.st.RestoreTask(ctx, task.ID); err != nil {
		return err
	}
	t.broker.Publish(live.TopicTasks)
	return nil
}

func (t *Tasks) PermanentlyDelete(ctx context.Context, task model.Task) error {
	if err := t.st.DeleteTask(ctx, task.ID); err != nil {
		return err
	}
	t.broker.Publish(live.TopicTasks)
	return nil
}

func (t *Tasks) EmptyDeleted(ctx context.Context) error {
	if err := t.st.PurgeDeletedTasks(ctx); err != nil {
		return err
	}
	t.broker.Publish(live.TopicTasks)
	return nil
}

func (t *Tasks) WatchActive(ctx context.Context) (*live.View[[]model.Task], error) {
	return live.Watch(ctx, t.broker, live.TopicTasks, t.st.ListActiveTasks)
}

func (t *Tasks) WatchCompleted(ctx context.Context) (*live.View[[]model.Task], error) {
	return live.Watch(ctx, t.broker, live.TopicTasks, t.st.ListCompletedTasks)
}

func (t *Tasks) WatchDeleted(ctx context.Context) (*live.View[[]model.Task], error) {
	return live.Watch(ctx, t.broker, live.TopicTasks, t.st.ListDeletedTasks)
}
