package update

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shikhr/tuskly/internal/settings"
	"github.com/shikhr/tuskly/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.settingsInput.Blur()
		m.CurrentView = ViewGoals
		return m, nil
	case "enter":
		raw := m.settingsInput.Value()
		hour, err := strconv.Atoi(raw)
		if err != nil || hour < 0 || hour > 23 {
			m.Status = StatusBar{Text: settings.ErrInvalidResetHour.Error(), IsError: true}
			return m, nil
		}
		m.ResetHour = hour
		m.settingsInput.SetValue("")
		return m, m.mutateCmd(fmt.Sprintf("day now resets at %02d:00", hour), func() error {
			return m.deps.Settings.SetResetHour(context.Background(), hour)
		})
	}
	var cmd tea.Cmd
	m.settingsInput, cmd = m.settingsInput.Update(msg)
	return m, cmd
}

func (m Model) renderSettingsPanels() (string, string) {
	left := views.RenderSettingsPanel(views.SettingsPanelData{
		ResetHour: m.ResetHour,
		InputView: m.settingsInput.View(),
	})
	right := views.RenderSettingsHint()
	return left, right
}
