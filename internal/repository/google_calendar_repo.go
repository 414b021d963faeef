package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"courtline/internal/entities"
)

const (
	callTimeout  = 8 * time.Second
	listRetries  = 3
	retryBackoff = 500 * time.Millisecond
)

// GoogleCalendarRepository talks to one Google Calendar that holds every
// booking event. Reads are retried with backoff; writes are attempted once,
// because the booking coordinator owns compensation for failed multi-writes.
type GoogleCalendarRepository struct {
	service    *calendar.Service
	calendarID string
}

func NewGoogleCalendarRepository(ctx context.Context, calendarID, credentialsFile string) (*GoogleCalendarRepository, error) {
	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Calendar service: %w", err)
	}
	return &GoogleCalendarRepository{service: svc, calendarID: calendarID}, nil
}

func (r *GoogleCalendarRepository) ListEvents(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	var result *calendar.Events
	var err error

	for attempt := 1; attempt <= listRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		result, err = r.service.Events.List(r.calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(callCtx).
			Do()
		cancel()
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("listing calendar events: %w", err)
		}
		if attempt < listRetries {
			log.Printf("Calendar list attempt %d/%d failed, retrying: %v", attempt, listRetries, err)
			select {
			case <-time.After(time.Duration(attempt) * retryBackoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("listing calendar events: %w", ctx.Err())
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}

	events := make([]entities.CalendarEvent, 0, len(result.Items))
	for _, item := range result.Items {
		ev, ok := fromGoogleEvent(item)
		if !ok {
			log.Printf("Skipping calendar event %q without parseable times", item.Id)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *GoogleCalendarRepository) CreateEvent(ctx context.Context, title, description string, start, end time.Time) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	created, err := r.service.Events.Insert(r.calendarID, &calendar.Event{
		Summary:     title,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: start.Location().String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: end.Location().String(),
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}).Context(callCtx).Do()
	if err != nil {
		return "", fmt.Errorf("creating calendar event %q: %w", title, err)
	}
	return created.Id, nil
}

func (r *GoogleCalendarRepository) DeleteEvent(ctx context.Context, eventID string) error {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	if err := r.service.Events.Delete(r.calendarID, eventID).Context(callCtx).Do(); err != nil {
		return fmt.Errorf("deleting calendar event %s: %w", eventID, err)
	}
	return nil
}

// fromGoogleEvent maps an API event to the engine representation. All-day
// events carry only a date; those cannot occupy a court slot and are dropped.
func fromGoogleEvent(item *calendar.Event) (entities.CalendarEvent, bool) {
	if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
		return entities.CalendarEvent{}, false
	}
	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return entities.CalendarEvent{}, false
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return entities.CalendarEvent{}, false
	}
	return entities.CalendarEvent{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
	}, true
}
