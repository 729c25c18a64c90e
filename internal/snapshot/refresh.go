package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Refresher pushes rebuilt snapshots to files for external surfaces to
// pick up. An empty path disables that surface. Refresh happens after a
// mutation completes, so the written snapshot always reflects it.
type Refresher struct {
	builder   *Builder
	GoalsPath string
	TasksPath string
}

func NewRefresher(builder *Builder, goalsPath, tasksPath string) *Refresher {
	return &Refresher{builder: builder, GoalsPath: goalsPath, TasksPath: tasksPath}
}

func (r *Refresher) RefreshAll(ctx context.Context) error {
	if err := r.RefreshGoals(ctx); err != nil {
		return err
	}
	return r.RefreshTasks(ctx)
}

func (r *Refresher) RefreshGoals(ctx context.Context) error {
	if r.GoalsPath == "" {
		return nil
	}
	lines, err := r.builder.GoalLines(ctx)
	if err != nil {
		return err
	}
	return writeSnapshot(r.GoalsPath, lines)
}

func (r *Refresher) RefreshTasks(ctx context.Context) error {
	if r.TasksPath == "" {
		return nil
	}
	lines, err := r.builder.TaskLines(ctx)
	if err != nil {
		return err
	}
	return writeSnapshot(r.TasksPath, lines)
}

func writeSnapshot(path, lines string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(lines+"\n"), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}
