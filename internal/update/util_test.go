package update

import (
	"testing"

	"github.com/shikhr/tuskly/internal/model"
)

func TestParseQuickGoalBinary(t *testing.T) {
	name, targetType, targetValue, unit := parseQuickGoal("morning walk")
	if name != "morning walk" {
		t.Errorf("expected name 'morning walk', got %q", name)
	}
	if targetType != model.TargetBinary {
		t.Errorf("expected binary target, got %s", targetType)
	}
	if targetValue != 1 {
		t.Errorf("expected target value 1, got %g", targetValue)
	}
	if unit != "" {
		t.Errorf("expected empty unit, got %q", unit)
	}
}

func TestParseQuickGoalQuantity(t *testing.T) {
	name, targetType, targetValue, unit := parseQuickGoal("drink water x8 glasses")
	if name != "drink water" {
		t.Errorf("expected name 'drink water', got %q", name)
	}
	if targetType != model.TargetQuantity {
		t.Errorf("expected quantity target, got %s", targetType)
	}
	if targetValue != 8 {
		t.Errorf("expected target value 8, got %g", targetValue)
	}
	if unit != "glasses" {
		t.Errorf("expected unit 'glasses', got %q", unit)
	}
}

func TestParseQuickGoalIgnoresBadQuantity(t *testing.T) {
	name, targetType, _, _ := parseQuickGoal("fix xorg bug")
	if targetType != model.TargetBinary {
		t.Errorf("expected binary target for non-numeric x token, got %s", targetType)
	}
	if name != "fix xorg bug" {
		t.Errorf("expected full name preserved, got %q", name)
	}
}

func TestParseQuickTaskPlain(t *testing.T) {
	title, due := parseQuickTask("buy milk")
	if title != "buy milk" {
		t.Errorf("expected title 'buy milk', got %q", title)
	}
	if due != nil {
		t.Errorf("expected no due date, got %v", due)
	}
}

func TestParseQuickTaskWithDueDate(t *testing.T) {
	title, due := parseQuickTask("file taxes @2026-04-15")
	if title != "file taxes" {
		t.Errorf("expected title 'file taxes', got %q", title)
	}
	if due == nil {
		t.Fatal("expected a due date")
	}
	if due.Format(model.DateLayout) != "2026-04-15" {
		t.Errorf("expected due 2026-04-15, got %s", due.Format(model.DateLayout))
	}
}

func TestParseQuickTaskBadDateKeptInTitle(t *testing.T) {
	title, due := parseQuickTask("email @alice")
	if title != "email @alice" {
		t.Errorf("expected title to keep the token, got %q", title)
	}
	if due != nil {
		t.Errorf("expected no due date, got %v", due)
	}
}

func TestClampCursor(t *testing.T) {
	if got := clampCursor(5, 3); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := clampCursor(-1, 3); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := clampCursor(0, 0); got != 0 {
		t.Errorf("expected 0 on empty list, got %d", got)
	}
}
