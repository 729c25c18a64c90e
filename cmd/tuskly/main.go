package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shikhr/tuskly/internal/dayclock"
	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/repository"
	"github.com/shikhr/tuskly/internal/settings"
	"github.com/shikhr/tuskly/internal/snapshot"
	"github.com/shikhr/tuskly/internal/storage"
	"github.com/shikhr/tuskly/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tuskly failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := storage.MigrateUp(store.DB()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	ctx := context.Background()
	broker := live.NewBroker()
	settingsStore := settings.NewStore(store, broker)
	goals := repository.NewGoals(store, broker)
	tasks := repository.NewTasks(store, broker)
	builder := snapshot.NewBuilder(store, broker, settingsStore, goals, tasks)
	refresher := snapshot.NewRefresher(builder, cfg.GoalsSnapshotPath, cfg.TasksSnapshotPath)

	resetHour, err := settingsStore.ResetHour(ctx)
	if err != nil {
		return fmt.Errorf("reading reset hour: %w", err)
	}
	hourView, err := settingsStore.WatchResetHour(ctx)
	if err != nil {
		return fmt.Errorf("watching reset hour: %w", err)
	}
	defer hourView.Close()

	watcher := dayclock.NewWatcher(resetHour, hourView.C())
	watcher.Start()
	defer watcher.Stop()

	goalsView, err := goals.WatchActive(ctx)
	if err != nil {
		return fmt.Errorf("watching goals: %w", err)
	}
	defer goalsView.Close()

	deletedGoalsView, err := goals.WatchDeleted(ctx)
	if err != nil {
		return fmt.Errorf("watching deleted goals: %w", err)
	}
	defer deletedGoalsView.Close()

	activeTasksView, err := tasks.WatchActive(ctx)
	if err != nil {
		return fmt.Errorf("watching tasks: %w", err)
	}
	defer activeTasksView.Close()

	completedTasksView, err := tasks.WatchCompleted(ctx)
	if err != nil {
		return fmt.Errorf("watching completed tasks: %w", err)
	}
	defer completedTasksView.Close()

	deletedTasksView, err := tasks.WatchDeleted(ctx)
	if err != nil {
		return fmt.Errorf("watching deleted tasks: %w", err)
	}
	defer deletedTasksView.Close()

	if err := refresher.RefreshAll(ctx); err != nil {
		return fmt.Errorf("writing snapshots: %w", err)
	}

	deps := update.Deps{
		Goals:              goals,
		Tasks:              tasks,
		Settings:           settingsStore,
		Refresher:          refresher,
		Watcher:            watcher,
		GoalsView:          goalsView,
		DeletedGoalsView:   deletedGoalsView,
		ActiveTasksView:    activeTasksView,
		CompletedTasksView: completedTasksView,
		DeletedTasksView:   deletedTasksView,
	}

	model := update.NewModel(deps, cfg)
	model.ResetHour = resetHour

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
