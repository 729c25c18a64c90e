// Package dayclock maps wall-clock time onto logical dates. A logical
// day does not flip at midnight but at a configurable reset hour, so a
// habit checked off at 01:30 with a reset hour of 3 still counts toward
// the previous day.
package dayclock

import (
	"time"

	"github.com/shikhr/tuskly/internal/model"
)

// LogicalDate returns the logical date for now under the given reset
// hour. Before the reset hour the previous calendar day is still
// current. resetHour must already be validated to 0..23.
func LogicalDate(now time.Time, resetHour int) string {
	if now.Hour() < resetHour {
		now = now.AddDate(0, 0, -1)
	}
	return now.Format(model.DateLayout)
}

// NextBoundary returns the nearest future instant at resetHour:00 in
// now's location, strictly after now.
func NextBoundary(now time.Time, resetHour int) time.Time {
	boundary := time.Date(now.Year(), now.Month(), now.Day(), resetHour, 0, 0, 0, now.Location())
	if !boundary.After(now) {
		boundary = boundary.AddDate(0, 0, 1)
	}
	return boundary
}
