package repository

import (
	"context"
	"time"

	"courtline/internal/entities"
)

// CalendarRepository is the read/write contract against the external calendar
// that holds all bookings. The engine never assumes strong consistency from
// it: a just-created event may lag behind a subsequent list from another
// connection. Cross-request races are resolved by the booking lock, not by
// calendar consistency.
type CalendarRepository interface {
	// ListEvents returns all events intersecting [from, to].
	ListEvents(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error)
	// CreateEvent writes one event and returns its calendar-assigned id.
	CreateEvent(ctx context.Context, title, description string, start, end time.Time) (string, error)
	// DeleteEvent removes an event by id.
	DeleteEvent(ctx context.Context, eventID string) error
}
