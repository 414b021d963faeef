package entities

import (
	"strings"
	"time"
)

// CalendarEvent is the engine's view of one event in the external calendar.
// Court identity is not structured data: it lives as a textual marker inside
// the title and has to be parsed defensively by the availability checker.
type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// Overlaps reports whether the event intersects the half-open window
// [start, end). Events that merely touch a boundary do not overlap.
func (e CalendarEvent) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && e.End.After(start)
}

// MatchesFacility reports whether the event carries the facility marker in
// its title or description.
func (e CalendarEvent) MatchesFacility(facilityID string) bool {
	if facilityID == "" {
		return false
	}
	return strings.Contains(e.Title, facilityID) || strings.Contains(e.Description, facilityID)
}
