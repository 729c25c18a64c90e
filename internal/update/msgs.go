package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shikhr/tuskly/internal/model"
)

type GoalsUpdatedMsg struct{ Goals []model.Goal }

type DeletedGoalsUpdatedMsg struct{ Goals []model.Goal }

type LogsUpdatedMsg struct{ Logs []model.CompletionLog }

type ActiveTasksUpdatedMsg struct{ Tasks []model.Task }

type CompletedTasksUpdatedMsg struct{ Tasks []model.Task }

type DeletedTasksUpdatedMsg struct{ Tasks []model.Task }

type DateChangedMsg struct{ Date string }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

func waitGoalsCmd(ch <-chan []model.Goal, wrap func([]model.Goal) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		goals, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(goals)
	}
}

func waitTasksCmd(ch <-chan []model.Task, wrap func([]model.Task) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		tasks, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(tasks)
	}
}

func waitLogsCmd(ch <-chan []model.CompletionLog) tea.Cmd {
	return func() tea.Msg {
		logs, ok := <-ch
		if !ok {
			return nil
		}
		return LogsUpdatedMsg{Logs: logs}
	}
}

func waitDateCmd(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		date, ok := <-ch
		if !ok {
			return nil
		}
		return DateChangedMsg{Date: date}
	}
}

// mutateCmd runs a repository mutation off the update loop and pushes
// the rebuilt external snapshot afterwards, so the written file always
// reflects the completed write.
func (m Model) mutateCmd(status string, mutate func() error) tea.Cmd {
	refresher := m.deps.Refresher
	return func() tea.Msg {
		if err := mutate(); err != nil {
			return SetStatusMsg{Text: err.Error(), IsError: true}
		}
		if refresher != nil {
			if err := refresher.RefreshAll(context.Background()); err != nil {
				return SetStatusMsg{Text: "snapshot refresh: " + err.Error(), IsError: true}
			}
		}
		return SetStatusMsg{Text: status, IsError: false}
	}
}
