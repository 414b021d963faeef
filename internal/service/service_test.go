package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"courtline/internal/entities"
	"courtline/internal/repository"
)

// fakeCalendar is an in-memory CalendarRepository with failure injection for
// exercising the rollback paths.
type fakeCalendar struct {
	mu             sync.Mutex
	events         map[string]entities.CalendarEvent
	nextID         int
	listCalls      int
	listErr        error
	createsAllowed int // -1 means unlimited
	deleteErr      error
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{
		events:         make(map[string]entities.CalendarEvent),
		createsAllowed: -1,
	}
}

func (c *fakeCalendar) ListEvents(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]entities.CalendarEvent, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev)
	}
	return out, nil
}

func (c *fakeCalendar) CreateEvent(ctx context.Context, title, description string, start, end time.Time) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.createsAllowed == 0 {
		return "", fmt.Errorf("calendar write refused")
	}
	if c.createsAllowed > 0 {
		c.createsAllowed--
	}
	c.nextID++
	id := fmt.Sprintf("evt-%d", c.nextID)
	c.events[id] = entities.CalendarEvent{
		ID:          id,
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
	}
	return id, nil
}

func (c *fakeCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteErr != nil {
		return c.deleteErr
	}
	if _, ok := c.events[eventID]; !ok {
		return fmt.Errorf("event %s not found", eventID)
	}
	delete(c.events, eventID)
	return nil
}

func (c *fakeCalendar) eventCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func (c *fakeCalendar) addEvent(title, description string, start, end time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := fmt.Sprintf("evt-%d", c.nextID)
	c.events[id] = entities.CalendarEvent{ID: id, Title: title, Description: description, Start: start, End: end}
}

func testFacility() entities.Facility {
	return entities.Facility{
		FacilityID:     "pickle_x_mysore",
		FacilityName:   "Pickle X Mysore",
		PhoneNumber:    "+918012345678",
		NumberOfCourts: 4,
		OpenTime:       "06:00",
		CloseTime:      "23:00",
		Timezone:       "Asia/Kolkata",
		BookingRules: entities.BookingRules{
			MinimumDuration:   60,
			DurationMultiples: 60,
			FixedSlots:        true,
		},
	}
}

func testNow() time.Time {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	return time.Date(2026, 3, 1, 10, 0, 0, 0, loc)
}

func slotWindow(t *testing.T, date, start string, durationMinutes int) (time.Time, time.Time) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	d, err := time.ParseInLocation("2006-01-02 15:04", date+" "+start, loc)
	require.NoError(t, err)
	return d, d.Add(time.Duration(durationMinutes) * time.Minute)
}

func newTestFacilityRepo(t *testing.T, facilities ...entities.Facility) *repository.FacilityRepository {
	t.Helper()
	m := make(map[string]entities.Facility, len(facilities))
	for _, f := range facilities {
		m[f.FacilityID] = f
	}
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "facilities.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	repo := repository.NewFacilityRepository(path)
	require.NoError(t, repo.Load())
	return repo
}

func newTestEngine(t *testing.T, cal *fakeCalendar) (*AvailabilityService, *BookingService, *OrphanRegistry) {
	t.Helper()
	facilities := newTestFacilityRepo(t, testFacility())

	availability := NewAvailabilityService(cal, facilities)
	availability.now = testNow

	orphans := NewOrphanRegistry()
	booking := NewBookingService(availability, cal, facilities, NewLockRegistry(), orphans, nil)
	booking.now = testNow

	return availability, booking, orphans
}
