package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shikhr/tuskly/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	id, err := repo.InsertGoal(t.Context(), model.Goal{
		Name:        "Roundtrip goal",
		TargetType:  model.TargetBinary,
		TargetValue: 1,
		CreatedAt:   now,
	})
	if err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetGoal(t.Context(), id)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Name != "Roundtrip goal" {
		t.Fatalf("unexpected name after roundtrip: %q", got.Name)
	}
}

func TestDownMigrationsApplyNewestFirst(t *testing.T) {
	names := []string{
		"migrations/0001_goals_tasks.down.sql",
		"migrations/0003_future.down.sql",
		"migrations/0002_completion_logs_settings.down.sql",
	}
	got := orderMigrations(names, downSuffix)
	want := []string{
		"migrations/0003_future.down.sql",
		"migrations/0002_completion_logs_settings.down.sql",
		"migrations/0001_goals_tasks.down.sql",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("down order position %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	up := orderMigrations([]string{
		"migrations/0002_completion_logs_settings.up.sql",
		"migrations/0001_goals_tasks.up.sql",
	}, upSuffix)
	if up[0] != "migrations/0001_goals_tasks.up.sql" {
		t.Fatalf("up order must stay ascending, got %v", up)
	}
}

func TestMigrateDownWithReferencingRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-down.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up failed: %v", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	id, err := repo.InsertGoal(t.Context(), model.Goal{
		Name:        "Teardown goal",
		TargetType:  model.TargetBinary,
		TargetValue: 1,
		CreatedAt:   now,
	})
	if err != nil {
		t.Fatalf("insert goal: %v", err)
	}
	if err := repo.UpsertLog(t.Context(), model.CompletionLog{
		GoalID:      id,
		Date:        "2026-01-02",
		Value:       1,
		IsCompleted: true,
	}); err != nil {
		t.Fatalf("upsert log: %v", err)
	}

	// Foreign keys are enforced on this connection; the teardown only
	// works because completion_logs goes before goals.
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down with data failed: %v", err)
	}

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('goals', 'tasks', 'completion_logs', 'settings')`).Scan(&count)
	if err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected all tables dropped, %d remain", count)
	}
}
