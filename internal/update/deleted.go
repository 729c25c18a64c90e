package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shikhr/tuskly/internal/views"
)

// The deleted view is a single list: soft-deleted goals first, then
// soft-deleted tasks. One cursor spans both sections.
func (m Model) deletedCount() int {
	return len(m.DeletedGoals) + len(m.DeletedTasks)
}

func (m Model) handleDeletedKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "j", "down":
		m.DeletedCursor = clampCursor(m.DeletedCursor+1, m.deletedCount())
		return m, nil
	case "k", "up":
		m.DeletedCursor = clampCursor(m.DeletedCursor-1, m.deletedCount())
		return m, nil
	case "r", "enter":
		return m.deletedAction(true)
	case "X":
		return m.deletedAction(false)
	case "E":
		if m.deletedCount() == 0 {
			return m, nil
		}
		return m, m.mutateCmd("emptied recently deleted", func() error {
			if err := m.deps.Goals.EmptyDeleted(context.Background()); err != nil {
				return err
			}
			return m.deps.Tasks.EmptyDeleted(context.Background())
		})
	}
	return m, nil
}

func (m Model) deletedAction(restore bool) (tea.Model, tea.Cmd) {
	cursor := m.DeletedCursor
	if cursor < len(m.DeletedGoals) {
		goal := m.DeletedGoals[cursor]
		if restore {
			return m, m.mutateCmd("restored "+goal.Name, func() error {
				return m.deps.Goals.Restore(context.Background(), goal)
			})
		}
		return m, m.mutateCmd("permanently deleted "+goal.Name, func() error {
			return m.deps.Goals.PermanentlyDelete(context.Background(), goal)
		})
	}
	cursor -= len(m.DeletedGoals)
	if cursor >= len(m.DeletedTasks) {
		return m, nil
	}
	task := m.DeletedTasks[cursor]
	if restore {
		return m, m.mutateCmd("restored "+task.Title, func() error {
			return m.deps.Tasks.Restore(context.Background(), task)
		})
	}
	return m, m.mutateCmd("permanently deleted "+task.Title, func() error {
		return m.deps.Tasks.PermanentlyDelete(context.Background(), task)
	})
}

func (m Model) renderDeletedPanels() (string, string) {
	goals := make([]views.DeletedItemData, 0, len(m.DeletedGoals))
	for _, goal := range m.DeletedGoals {
		item := views.DeletedItemData{Name: goal.Name}
		if goal.DeletedAt != nil {
			item.DeletedAt = goal.DeletedAt.Format("2006-01-02 15:04")
		}
		goals = append(goals, item)
	}
	tasks := make([]views.DeletedItemData, 0, len(m.DeletedTasks))
	for _, task := range m.DeletedTasks {
		item := views.DeletedItemData{Name: task.Title}
		if task.DeletedAt != nil {
			item.DeletedAt = task.DeletedAt.Format("2006-01-02 15:04")
		}
		tasks = append(tasks, item)
	}

	left := views.RenderDeletedPanel(views.DeletedPanelData{
		Goals:  goals,
		Tasks:  tasks,
		Cursor: m.DeletedCursor,
	})
	right := views.RenderDeletedHint()
	return left, right
}
