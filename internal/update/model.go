package update

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/shikhr/tuskly/internal/dayclock"
	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/repository"
	"github.com/shikhr/tuskly/internal/settings"
	"github.com/shikhr/tuskly/internal/snapshot"
)

type View string

const (
	ViewGoals     View = "Goals"
	ViewTasks     View = "Tasks"
	ViewCompleted View = "Completed"
	ViewDeleted   View = "Deleted"
	ViewSettings  View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Goals     string
	Tasks     string
	Completed string
	Deleted   string
	Settings  string
	Help      string
	Quit      string
}

func defaultKeys() GlobalKeyMap {
	return GlobalKeyMap{
		Goals:     "1",
		Tasks:     "2",
		Completed: "3",
		Deleted:   "4",
		Settings:  "5",
		Help:      "?",
		Quit:      "q",
	}
}

// Deps carries the constructed core the presentation renders. Lifecycle
// of the persistence handle belongs to the process root, not here.
type Deps struct {
	Goals     *repository.Goals
	Tasks     *repository.Tasks
	Settings  *settings.Store
	Refresher *snapshot.Refresher
	Watcher   *dayclock.Watcher

	GoalsView          *live.View[[]model.Goal]
	DeletedGoalsView   *live.View[[]model.Goal]
	ActiveTasksView    *live.View[[]model.Task]
	CompletedTasksView *live.View[[]model.Task]
	DeletedTasksView   *live.View[[]model.Task]
}

type Model struct {
	CurrentView View
	Keys        GlobalKeyMap
	Status      StatusBar
	HelpVisible bool
	Quitting    bool

	deps Deps

	// Live state, replaced wholesale whenever a view channel delivers.
	LogicalDate    string
	ResetHour      int
	Goals          []model.Goal
	LogsByGoal     map[int64]model.CompletionLog
	ActiveTasks    []model.Task
	CompletedTasks []model.Task
	DeletedGoals   []model.Goal
	DeletedTasks   []model.Task

	// Logs subscription is per logical date and swapped on rollover.
	logsView *live.View[[]model.CompletionLog]

	GoalCursor      int
	TaskCursor      int
	CompletedCursor int
	DeletedCursor   int

	AddMode       bool
	quickAddInput textinput.Model
	settingsInput textinput.Model
	uiDensity     int
}

func NewModel(deps Deps, cfg RuntimeConfig) Model {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "name, or name x3 unit for a quantity goal"
	quickAdd.CharLimit = 120

	hourInput := textinput.New()
	hourInput.Placeholder = "reset hour (0-23)"
	hourInput.CharLimit = 2

	return Model{
		CurrentView:   ViewGoals,
		Keys:          defaultKeys(),
		deps:          deps,
		LogsByGoal:    make(map[int64]model.CompletionLog),
		quickAddInput: quickAdd,
		settingsInput: hourInput,
		uiDensity:     cfg.UIDensity,
	}
}

func (m *Model) watchLogsForDate(date string) error {
	if m.logsView != nil {
		m.logsView.Close()
	}
	view, err := m.deps.Goals.WatchLogsForDate(context.Background(), date)
	if err != nil {
		return err
	}
	m.logsView = view
	return nil
}

func clampCursor(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
