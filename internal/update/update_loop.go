package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.deps.GoalsView != nil {
		cmds = append(cmds, waitGoalsCmd(m.deps.GoalsView.C(), func(goals []model.Goal) tea.Msg {
			return GoalsUpdatedMsg{Goals: goals}
		}))
	}
	if m.deps.DeletedGoalsView != nil {
		cmds = append(cmds, waitGoalsCmd(m.deps.DeletedGoalsView.C(), func(goals []model.Goal) tea.Msg {
			return DeletedGoalsUpdatedMsg{Goals: goals}
		}))
	}
	if m.deps.ActiveTasksView != nil {
		cmds = append(cmds, waitTasksCmd(m.deps.ActiveTasksView.C(), func(tasks []model.Task) tea.Msg {
			return ActiveTasksUpdatedMsg{Tasks: tasks}
		}))
	}
	if m.deps.CompletedTasksView != nil {
		cmds = append(cmds, waitTasksCmd(m.deps.CompletedTasksView.C(), func(tasks []model.Task) tea.Msg {
			return CompletedTasksUpdatedMsg{Tasks: tasks}
		}))
	}
	if m.deps.DeletedTasksView != nil {
		cmds = append(cmds, waitTasksCmd(m.deps.DeletedTasksView.C(), func(tasks []model.Task) tea.Msg {
			return DeletedTasksUpdatedMsg{Tasks: tasks}
		}))
	}
	if m.deps.Watcher != nil {
		cmds = append(cmds, waitDateCmd(m.deps.Watcher.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case GoalsUpdatedMsg:
		m.Goals = typed.Goals
		m.GoalCursor = clampCursor(m.GoalCursor, len(m.Goals))
		if m.deps.GoalsView == nil {
			return m, nil
		}
		return m, waitGoalsCmd(m.deps.GoalsView.C(), func(goals []model.Goal) tea.Msg {
			return GoalsUpdatedMsg{Goals: goals}
		})

	case DeletedGoalsUpdatedMsg:
		m.DeletedGoals = typed.Goals
		m.DeletedCursor = clampCursor(m.DeletedCursor, len(m.DeletedGoals)+len(m.DeletedTasks))
		if m.deps.DeletedGoalsView == nil {
			return m, nil
		}
		return m, waitGoalsCmd(m.deps.DeletedGoalsView.C(), func(goals []model.Goal) tea.Msg {
			return DeletedGoalsUpdatedMsg{Goals: goals}
		})

	case LogsUpdatedMsg:
		byGoal := make(map[int64]model.CompletionLog, len(typed.Logs))
		for _, log := range typed.Logs {
			byGoal[log.GoalID] = log
		}
		m.LogsByGoal = byGoal
		if m.logsView == nil {
			return m, nil
		}
		return m, waitLogsCmd(m.logsView.C())

	case ActiveTasksUpdatedMsg:
		m.ActiveTasks = typed.Tasks
		m.TaskCursor = clampCursor(m.TaskCursor, len(m.ActiveTasks))
		if m.deps.ActiveTasksView == nil {
			return m, nil
		}
		return m, waitTasksCmd(m.deps.ActiveTasksView.C(), func(tasks []model.Task) tea.Msg {
			return ActiveTasksUpdatedMsg{Tasks: tasks}
		})

	case CompletedTasksUpdatedMsg:
		m.CompletedTasks = typed.Tasks
		m.CompletedCursor = clampCursor(m.CompletedCursor, len(m.CompletedTasks))
		if m.deps.CompletedTasksView == nil {
			return m, nil
		}
		return m, waitTasksCmd(m.deps.CompletedTasksView.C(), func(tasks []model.Task) tea.Msg {
			return CompletedTasksUpdatedMsg{Tasks: tasks}
		})

	case DeletedTasksUpdatedMsg:
		m.DeletedTasks = typed.Tasks
		m.DeletedCursor = clampCursor(m.DeletedCursor, len(m.DeletedGoals)+len(m.DeletedTasks))
		if m.deps.DeletedTasksView == nil {
			return m, nil
		}
		return m, waitTasksCmd(m.deps.DeletedTasksView.C(), func(tasks []model.Task) tea.Msg {
			return DeletedTasksUpdatedMsg{Tasks: tasks}
		})

	case DateChangedMsg:
		m.LogicalDate = typed.Date
		cmds := []tea.Cmd{}
		if m.deps.Watcher != nil {
			cmds = append(cmds, waitDateCmd(m.deps.Watcher.C()))
		}
		if m.deps.Goals != nil {
			if err := m.watchLogsForDate(typed.Date); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				cmds = append(cmds, waitLogsCmd(m.logsView.C()))
			}
		}
		return m, tea.Batch(cmds...)

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.AddMode {
		return m.handleAddKey(msg)
	}
	if m.CurrentView == ViewSettings && m.settingsInput.Focused() {
		return m.handleSettingsKey(msg)
	}

	switch keyStr {
	case m.Keys.Goals:
		m.CurrentView = ViewGoals
		return m, nil
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, nil
	case m.Keys.Completed:
		m.CurrentView = ViewCompleted
		return m, nil
	case m.Keys.Deleted:
		m.CurrentView = ViewDeleted
		return m, nil
	case m.Keys.Settings:
		m.CurrentView = ViewSettings
		m.settingsInput.Focus()
		m.settingsInput.SetValue("")
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewGoals:
		return m.handleGoalsKey(keyStr)
	case ViewTasks:
		return m.handleTasksKey(keyStr)
	case ViewCompleted:
		return m.handleCompletedKey(keyStr)
	case ViewDeleted:
		return m.handleDeletedKey(keyStr)
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	var left, right string
	switch m.CurrentView {
	case ViewGoals:
		left, right = m.renderGoalsPanels()
	case ViewTasks:
		left, right = m.renderTasksPanels()
	case ViewCompleted:
		left, right = m.renderCompletedPanels()
	case ViewDeleted:
		left, right = m.renderDeletedPanels()
	case ViewSettings:
		left, right = m.renderSettingsPanels()
	}

	// Density 2 and above collapses the detail pane into a single
	// wide column for narrow terminals.
	if m.uiDensity >= 2 {
		right = ""
	}

	data := views.AppData{
		Header:        "tuskly · " + string(m.CurrentView) + " · " + m.LogicalDate,
		LeftPane:      left,
		RightPane:     right,
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Footer:        "1-5 switch · j/k move · ? help · q quit",
	}
	if m.HelpVisible {
		data.Notification = views.RenderMarkdown(helpMarkdown(m.CurrentView))
	}
	return views.RenderApp(data)
}
