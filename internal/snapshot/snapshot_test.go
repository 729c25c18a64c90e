package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/repository"
	"github.com/shikhr/tuskly/internal/settings"
	"github.com/shikhr/tuskly/internal/storage"
)

func setupBuilder(t *testing.T) (*Builder, *repository.Goals, *repository.Tasks, *storage.SQLiteRepository) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tuskly-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	broker := live.NewBroker()
	store := settings.NewStore(repo, broker)
	goals := repository.NewGoals(repo, broker)
	tasks := repository.NewTasks(repo, broker)
	builder := NewBuilder(repo, broker, store, goals, tasks)
	builder.now = func() time.Time {
		return time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	}
	return builder, goals, tasks, repo
}

func TestGoalLinesFormat(t *testing.T) {
	builder, goals, _, _ := setupBuilder(t)
	ctx := context.Background()

	binaryID, err := goals.Add(ctx, "Exercise", model.TargetBinary, 1, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	quantityID, err := goals.Add(ctx, "Water", model.TargetQuantity, 3, "L")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := goals.ToggleCompletion(ctx, binaryID, "2026-01-02", 0, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := goals.UpdateProgress(ctx, quantityID, "2026-01-02", 2, 3); err != nil {
		t.Fatalf("progress: %v", err)
	}

	lines, err := builder.GoalLines(ctx)
	if err != nil {
		t.Fatalf("goal lines: %v", err)
	}
	got := strings.Split(lines, "\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	wantFirst := "1|Exercise|true|1|1|true"
	wantSecond := "2|Water|false|3|2|false"
	if got[0] != wantFirst {
		t.Fatalf("goal line mismatch: want %q, got %q", wantFirst, got[0])
	}
	if got[1] != wantSecond {
		t.Fatalf("goal line mismatch: want %q, got %q", wantSecond, got[1])
	}
}

func TestGoalLinesRespectResetHour(t *testing.T) {
	builder, goals, _, _ := setupBuilder(t)
	ctx := context.Background()

	id, err := goals.Add(ctx, "Meditate", model.TargetBinary, 1, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// 01:30 with reset hour 3 still belongs to the previous day.
	builder.now = func() time.Time {
		return time.Date(2026, 1, 2, 1, 30, 0, 0, time.UTC)
	}
	if err := builder.settings.SetResetHour(ctx, 3); err != nil {
		t.Fatalf("set reset hour: %v", err)
	}
	if err := goals.ToggleCompletion(ctx, id, "2026-01-01", 0, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	lines, err := builder.GoalLines(ctx)
	if err != nil {
		t.Fatalf("goal lines: %v", err)
	}
	if !strings.HasSuffix(lines, "|true") {
		t.Fatalf("expected completion from previous logical day, got %q", lines)
	}
}

func TestTaskLinesFormat(t *testing.T) {
	builder, _, tasks, _ := setupBuilder(t)
	ctx := context.Background()

	due := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	if _, err := tasks.Add(ctx, "File taxes", &due); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := tasks.Add(ctx, "Buy milk", nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := builder.TaskLines(ctx)
	if err != nil {
		t.Fatalf("task lines: %v", err)
	}
	got := strings.Split(lines, "\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if got[0] != "1|File taxes|2026-01-10T00:00:00Z" {
		t.Fatalf("unexpected first line: %q", got[0])
	}
	if got[1] != "2|Buy milk|" {
		t.Fatalf("unexpected second line: %q", got[1])
	}
}

func TestCycleBinaryGoalToggles(t *testing.T) {
	builder, goals, _, repo := setupBuilder(t)
	ctx := context.Background()

	id, err := goals.Add(ctx, "Exercise", model.TargetBinary, 1, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := builder.CycleGoalProgress(ctx, id); err != nil {
		t.Fatalf("cycle on: %v", err)
	}
	log, err := repo.GetLog(ctx, id, "2026-01-02")
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if !log.IsCompleted || log.Value != 1 {
		t.Fatalf("unexpected log after cycle on: %#v", log)
	}

	if err := builder.CycleGoalProgress(ctx, id); err != nil {
		t.Fatalf("cycle off: %v", err)
	}
	if _, err := repo.GetLog(ctx, id, "2026-01-02"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected log deleted after cycle off, got: %v", err)
	}
}

func TestCycleQuantityGoalWrapsToZero(t *testing.T) {
	builder, goals, _, repo := setupBuilder(t)
	ctx := context.Background()

	id, err := goals.Add(ctx, "Water", model.TargetQuantity, 3, "L")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	want := []struct {
		value     float64
		completed bool
	}{
		{1, false},
		{2, false},
		{3, true},
	}
	for _, step := range want {
		if err := builder.CycleGoalProgress(ctx, id); err != nil {
			t.Fatalf("cycle: %v", err)
		}
		log, err := repo.GetLog(ctx, id, "2026-01-02")
		if err != nil {
			t.Fatalf("get log: %v", err)
		}
		if log.Value != step.value || log.IsCompleted != step.completed {
			t.Fatalf("expected value=%v completed=%v, got %#v", step.value, step.completed, log)
		}
	}

	// One more tap past the target wraps to zero and drops the row.
	if err := builder.CycleGoalProgress(ctx, id); err != nil {
		t.Fatalf("cycle wrap: %v", err)
	}
	if _, err := repo.GetLog(ctx, id, "2026-01-02"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected log deleted at wrap, got: %v", err)
	}
}

func TestCycleMissingGoalReturnsNotFound(t *testing.T) {
	builder, _, _, _ := setupBuilder(t)

	if err := builder.CycleGoalProgress(context.Background(), 404); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestToggleTaskCompletionFlips(t *testing.T) {
	builder, _, tasks, repo := setupBuilder(t)
	ctx := context.Background()

	id, err := tasks.Add(ctx, "Buy milk", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := builder.ToggleTaskCompletion(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	task, err := repo.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !task.IsCompleted || task.CompletedAt == nil {
		t.Fatalf("expected completed task: %#v", task)
	}

	if err := builder.ToggleTaskCompletion(ctx, id); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	task, err = repo.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if task.IsCompleted || task.CompletedAt != nil {
		t.Fatalf("expected open task: %#v", task)
	}
}

func TestRefresherWritesSnapshotsAfterMutation(t *testing.T) {
	builder, goals, tasks, _ := setupBuilder(t)
	ctx := context.Background()

	dir := t.TempDir()
	refresher := NewRefresher(builder, filepath.Join(dir, "goals.snapshot"), filepath.Join(dir, "tasks.snapshot"))

	id, err := goals.Add(ctx, "Exercise", model.TargetBinary, 1, "")
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if err := goals.ToggleCompletion(ctx, id, "2026-01-02", 0, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := tasks.Add(ctx, "Buy milk", nil); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := refresher.RefreshAll(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	goalsOut, err := os.ReadFile(refresher.GoalsPath)
	if err != nil {
		t.Fatalf("read goals snapshot: %v", err)
	}
	// The refresh ran after the toggle, so the write must be visible.
	if string(goalsOut) != "1|Exercise|true|1|1|true\n" {
		t.Fatalf("unexpected goals snapshot: %q", goalsOut)
	}

	tasksOut, err := os.ReadFile(refresher.TasksPath)
	if err != nil {
		t.Fatalf("read tasks snapshot: %v", err)
	}
	if string(tasksOut) != "1|Buy milk|\n" {
		t.Fatalf("unexpected tasks snapshot: %q", tasksOut)
	}
}
