package update

import (
	"strconv"
	"strings"
	"time"

	"github.com/shikhr/tuskly/internal/model"
)

// parseQuickGoal splits a quick-add line into goal fields. "read x20
// pages" becomes a quantity goal with target 20 and unit "pages";
// anything without an xN token is a binary goal.
func parseQuickGoal(raw string) (name string, targetType model.TargetType, targetValue float64, unit string) {
	fields := strings.Fields(raw)
	for i, field := range fields {
		if len(field) < 2 || field[0] != 'x' {
			continue
		}
		value, err := strconv.ParseFloat(field[1:], 64)
		if err != nil || value <= 0 {
			continue
		}
		name = strings.Join(fields[:i], " ")
		unit = strings.Join(fields[i+1:], " ")
		return name, model.TargetQuantity, value, unit
	}
	return strings.TrimSpace(raw), model.TargetBinary, 1, ""
}

// parseQuickTask pulls a trailing @YYYY-MM-DD due date off a quick-add
// line, if present.
func parseQuickTask(raw string) (title string, dueDate *time.Time) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", nil
	}
	last := fields[len(fields)-1]
	if strings.HasPrefix(last, "@") {
		if due, err := time.ParseInLocation(model.DateLayout, last[1:], time.Local); err == nil {
			return strings.Join(fields[:len(fields)-1], " "), &due
		}
	}
	return strings.TrimSpace(raw), nil
}
