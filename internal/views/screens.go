package views

import (
	"fmt"
	"strings"
)

type GoalItemData struct {
	Name        string
	IsBinary    bool
	TargetValue float64
	Value       float64
	Unit        string
	IsCompleted bool
}

type GoalsPanelData struct {
	Items        []GoalItemData
	Cursor       int
	QuickAddView string
}

type GoalDetailData struct {
	Name        string
	TargetType  string
	TargetValue float64
	Unit        string
	Value       float64
	IsCompleted bool
	Date        string
}

type TaskItemData struct {
	Title       string
	DueDate     string
	IsCompleted bool
}

type TasksPanelData struct {
	Title        string
	Items        []TaskItemData
	Cursor       int
	QuickAddView string
}

type TaskDetailData struct {
	Title       string
	DueDate     string
	IsCompleted bool
	CreatedAt   string
	CompletedAt string
}

type DeletedItemData struct {
	Name      string
	DeletedAt string
}

type DeletedPanelData struct {
	Goals  []DeletedItemData
	Tasks  []DeletedItemData
	Cursor int
}

type SettingsPanelData struct {
	ResetHour int
	InputView string
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Today's goals") + "\n")
	if data.QuickAddView != "" {
		b.WriteString(data.QuickAddView + "\n")
	}
	b.WriteString("actions: [space]toggle [+/-]progress [a]add [x]delete\n")
	if len(data.Items) == 0 {
		b.WriteString("no goals yet, press a to add one")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		b.WriteString(renderGoalLine(item, i == data.Cursor) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderGoalLine(item GoalItemData, selected bool) string {
	mark := "[ ]"
	if item.IsCompleted {
		mark = "[x]"
	}

	line := fmt.Sprintf("%s %s", mark, item.Name)
	if !item.IsBinary {
		progress := fmt.Sprintf(" %g/%g", item.Value, item.TargetValue)
		if item.Unit != "" {
			progress += " " + item.Unit
		}
		line += progressStyle.Render(progress)
	}

	if selected {
		return cursorStyle.Render("> ") + line
	}
	if item.IsCompleted {
		return "  " + doneStyle.Render(line)
	}
	return "  " + line
}

func RenderGoalDetail(data GoalDetailData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(data.Name) + "\n")
	b.WriteString(fmt.Sprintf("type:   %s\n", data.TargetType))
	if data.TargetType == "Quantity" {
		b.WriteString(fmt.Sprintf("target: %g %s\n", data.TargetValue, data.Unit))
		b.WriteString(fmt.Sprintf("today:  %g %s\n", data.Value, data.Unit))
		b.WriteString(renderProgressBar(data.Value, data.TargetValue) + "\n")
	}
	status := "pending"
	if data.IsCompleted {
		status = "done"
	}
	b.WriteString(fmt.Sprintf("status: %s on %s", status, data.Date))
	return strings.TrimSpace(b.String())
}

func renderProgressBar(value, target float64) string {
	const width = 20
	filled := 0
	if target > 0 {
		filled = int(value / target * width)
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return progressStyle.Render(bar)
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(data.Title) + "\n")
	if data.QuickAddView != "" {
		b.WriteString(data.QuickAddView + "\n")
	}
	b.WriteString("actions: [space]toggle [a]add [x]delete\n")
	if len(data.Items) == 0 {
		b.WriteString("nothing here")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		b.WriteString(renderTaskLine(item, i == data.Cursor) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderTaskLine(item TaskItemData, selected bool) string {
	mark := "[ ]"
	if item.IsCompleted {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s", mark, item.Title)
	if item.DueDate != "" {
		line += footerStyle.Render(" due " + item.DueDate)
	}
	if selected {
		return cursorStyle.Render("> ") + line
	}
	if item.IsCompleted {
		return "  " + doneStyle.Render(line)
	}
	return "  " + line
}

func RenderTaskDetail(data TaskDetailData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(data.Title) + "\n")
	if data.DueDate != "" {
		b.WriteString("due:       " + data.DueDate + "\n")
	}
	b.WriteString("created:   " + data.CreatedAt + "\n")
	if data.CompletedAt != "" {
		b.WriteString("completed: " + data.CompletedAt + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderDeletedPanel(data DeletedPanelData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Recently deleted") + "\n")
	b.WriteString("actions: [r]restore [X]delete forever [E]empty\n")
	if len(data.Goals) == 0 && len(data.Tasks) == 0 {
		b.WriteString("nothing to restore")
		return strings.TrimSpace(b.String())
	}

	index := 0
	if len(data.Goals) > 0 {
		b.WriteString("goals:\n")
		for _, item := range data.Goals {
			b.WriteString(renderDeletedLine(item, index == data.Cursor) + "\n")
			index++
		}
	}
	if len(data.Tasks) > 0 {
		b.WriteString("tasks:\n")
		for _, item := range data.Tasks {
			b.WriteString(renderDeletedLine(item, index == data.Cursor) + "\n")
			index++
		}
	}
	return strings.TrimSpace(b.String())
}

func renderDeletedLine(item DeletedItemData, selected bool) string {
	line := item.Name
	if item.DeletedAt != "" {
		line += footerStyle.Render(" deleted " + item.DeletedAt)
	}
	if selected {
		return cursorStyle.Render("> ") + line
	}
	return "  " + line
}

func RenderDeletedHint() string {
	return "Restored goals keep their completion history.\nDeleting forever also removes a goal's logs."
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Settings") + "\n")
	b.WriteString(fmt.Sprintf("day resets at %02d:00\n", data.ResetHour))
	b.WriteString(data.InputView)
	return strings.TrimSpace(b.String())
}

func RenderSettingsHint() string {
	return "Completions before the reset hour count toward the\nprevious day. Night owls usually want 3 or 4."
}
