package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/views"
)

func (m Model) handleTasksKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "j", "down":
		m.TaskCursor = clampCursor(m.TaskCursor+1, len(m.ActiveTasks))
		return m, nil
	case "k", "up":
		m.TaskCursor = clampCursor(m.TaskCursor-1, len(m.ActiveTasks))
		return m, nil
	case "a":
		m.AddMode = true
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		return m, nil
	case " ", "enter":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.mutateCmd("completed "+task.Title, func() error {
			return m.deps.Tasks.Complete(context.Background(), task)
		})
	case "x", "d":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.mutateCmd("deleted "+task.Title, func() error {
			return m.deps.Tasks.Delete(context.Background(), task)
		})
	}
	return m, nil
}

func (m Model) handleCompletedKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "j", "down":
		m.CompletedCursor = clampCursor(m.CompletedCursor+1, len(m.CompletedTasks))
		return m, nil
	case "k", "up":
		m.CompletedCursor = clampCursor(m.CompletedCursor-1, len(m.CompletedTasks))
		return m, nil
	case " ", "enter":
		task, ok := m.selectedCompletedTask()
		if !ok {
			return m, nil
		}
		return m, m.mutateCmd("reopened "+task.Title, func() error {
			return m.deps.Tasks.Uncomplete(context.Background(), task)
		})
	case "x", "d":
		task, ok := m.selectedCompletedTask()
		if !ok {
			return m, nil
		}
		return m, m.mutateCmd("deleted "+task.Title, func() error {
			return m.deps.Tasks.Delete(context.Background(), task)
		})
	}
	return m, nil
}

func (m Model) selectedTask() (model.Task, bool) {
	if len(m.ActiveTasks) == 0 || m.TaskCursor >= len(m.ActiveTasks) {
		return model.Task{}, false
	}
	return m.ActiveTasks[m.TaskCursor], true
}

func (m Model) selectedCompletedTask() (model.Task, bool) {
	if len(m.CompletedTasks) == 0 || m.CompletedCursor >= len(m.CompletedTasks) {
		return model.Task{}, false
	}
	return m.CompletedTasks[m.CompletedCursor], true
}

func (m Model) renderTasksPanels() (string, string) {
	items := make([]views.TaskItemData, 0, len(m.ActiveTasks))
	for _, task := range m.ActiveTasks {
		items = append(items, taskItemData(task))
	}

	data := views.TasksPanelData{
		Title:  "Tasks",
		Items:  items,
		Cursor: m.TaskCursor,
	}
	if m.AddMode {
		data.QuickAddView = m.quickAddInput.View()
	}

	var detail string
	if task, ok := m.selectedTask(); ok {
		detail = views.RenderTaskDetail(taskDetailData(task))
	}
	return views.RenderTasksPanel(data), detail
}

func (m Model) renderCompletedPanels() (string, string) {
	items := make([]views.TaskItemData, 0, len(m.CompletedTasks))
	for _, task := range m.CompletedTasks {
		items = append(items, taskItemData(task))
	}

	data := views.TasksPanelData{
		Title:  "Completed",
		Items:  items,
		Cursor: m.CompletedCursor,
	}

	var detail string
	if task, ok := m.selectedCompletedTask(); ok {
		detail = views.RenderTaskDetail(taskDetailData(task))
	}
	return views.RenderTasksPanel(data), detail
}

func taskItemData(task model.Task) views.TaskItemData {
	item := views.TaskItemData{
		Title:       task.Title,
		IsCompleted: task.IsCompleted,
	}
	if task.DueDate != nil {
		item.DueDate = task.DueDate.Format(model.DateLayout)
	}
	return item
}

func taskDetailData(task model.Task) views.TaskDetailData {
	data := views.TaskDetailData{
		Title:       task.Title,
		IsCompleted: task.IsCompleted,
		CreatedAt:   task.CreatedAt.Format("2006-01-02 15:04"),
	}
	if task.DueDate != nil {
		data.DueDate = task.DueDate.Format(model.DateLayout)
	}
	if task.CompletedAt != nil {
		data.CompletedAt = task.CompletedAt.Format("2006-01-02 15:04")
	}
	return data
}
