package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shikhr/tuskly/internal/model"
	"github.com/shikhr/tuskly/internal/views"
)

func (m Model) handleGoalsKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "j", "down":
		m.GoalCursor = clampCursor(m.GoalCursor+1, len(m.Goals))
		return m, nil
	case "k", "up":
		m.GoalCursor = clampCursor(m.GoalCursor-1, len(m.Goals))
		return m, nil
	case "a":
		m.AddMode = true
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		return m, nil
	case " ", "enter":
		goal, ok := m.selectedGoal()
		if !ok {
			return m, nil
		}
		date := m.LogicalDate
		current := m.LogsByGoal[goal.ID].Value
		return m, m.mutateCmd("toggled "+goal.Name, func() error {
			return m.deps.Goals.ToggleCompletion(context.Background(), goal.ID, date, current, goal.TargetValue)
		})
	case "+", "l", "right":
		return m.adjustProgress(1)
	case "-", "h", "left":
		return m.adjustProgress(-1)
	case "x", "d":
		goal, ok := m.selectedGoal()
		if !ok {
			return m, nil
		}
		return m, m.mutateCmd("deleted "+goal.Name, func() error {
			return m.deps.Goals.Delete(context.Background(), goal)
		})
	}
	return m, nil
}

// adjustProgress nudges a quantity goal by one unit in either
// direction. Binary goals only toggle.
func (m Model) adjustProgress(delta float64) (tea.Model, tea.Cmd) {
	goal, ok := m.selectedGoal()
	if !ok || goal.IsBinary() {
		return m, nil
	}
	value := m.LogsByGoal[goal.ID].Value + delta
	if value < 0 {
		value = 0
	}
	if value > goal.TargetValue {
		value = goal.TargetValue
	}
	date := m.LogicalDate
	return m, m.mutateCmd(fmt.Sprintf("%s: %g/%g", goal.Name, value, goal.TargetValue), func() error {
		return m.deps.Goals.UpdateProgress(context.Background(), goal.ID, date, value, goal.TargetValue)
	})
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.AddMode = false
		m.quickAddInput.Blur()
		return m, nil
	case "enter":
		raw := m.quickAddInput.Value()
		m.AddMode = false
		m.quickAddInput.Blur()
		if m.CurrentView == ViewTasks {
			title, due := parseQuickTask(raw)
			return m, m.mutateCmd("added task", func() error {
				_, err := m.deps.Tasks.Add(context.Background(), title, due)
				return err
			})
		}
		name, targetType, targetValue, unit := parseQuickGoal(raw)
		return m, m.mutateCmd("added goal", func() error {
			_, err := m.deps.Goals.Add(context.Background(), name, targetType, targetValue, unit)
			return err
		})
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

func (m Model) selectedGoal() (model.Goal, bool) {
	if len(m.Goals) == 0 || m.GoalCursor >= len(m.Goals) {
		return model.Goal{}, false
	}
	return m.Goals[m.GoalCursor], true
}

func (m Model) renderGoalsPanels() (string, string) {
	items := make([]views.GoalItemData, 0, len(m.Goals))
	for _, goal := range m.Goals {
		log := m.LogsByGoal[goal.ID]
		items = append(items, views.GoalItemData{
			Name:        goal.Name,
			IsBinary:    goal.IsBinary(),
			TargetValue: goal.TargetValue,
			Value:       log.Value,
			Unit:        goal.Unit,
			IsCompleted: log.IsCompleted,
		})
	}

	data := views.GoalsPanelData{
		Items:  items,
		Cursor: m.GoalCursor,
	}
	if m.AddMode {
		data.QuickAddView = m.quickAddInput.View()
	}

	var detail string
	if goal, ok := m.selectedGoal(); ok {
		log := m.LogsByGoal[goal.ID]
		detail = views.RenderGoalDetail(views.GoalDetailData{
			Name:        goal.Name,
			TargetType:  string(goal.TargetType),
			TargetValue: goal.TargetValue,
			Unit:        goal.Unit,
			Value:       log.Value,
			IsCompleted: log.IsCompleted,
			Date:        m.LogicalDate,
		})
	}
	return views.RenderGoalsPanel(data), detail
}
