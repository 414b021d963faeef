package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtline/internal/entities"
	"courtline/internal/repository"
	"courtline/internal/service"
)

type stubCalendar struct {
	mu      sync.Mutex
	events  map[string]entities.CalendarEvent
	nextID  int
	listErr error
}

func newStubCalendar() *stubCalendar {
	return &stubCalendar{events: make(map[string]entities.CalendarEvent)}
}

func (c *stubCalendar) ListEvents(ctx context.Context, from, to time.Time) ([]entities.CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]entities.CalendarEvent, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev)
	}
	return out, nil
}

func (c *stubCalendar) CreateEvent(ctx context.Context, title, description string, start, end time.Time) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := fmt.Sprintf("evt-%d", c.nextID)
	c.events[id] = entities.CalendarEvent{ID: id, Title: title, Description: description, Start: start, End: end}
	return id, nil
}

func (c *stubCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.events, eventID)
	return nil
}

func newTestHandler(t *testing.T, cal *stubCalendar) *BookingHandler {
	t.Helper()

	config := map[string]entities.Facility{
		"pickle_x_mysore": {
			FacilityID:     "pickle_x_mysore",
			FacilityName:   "Pickle X Mysore",
			NumberOfCourts: 4,
			OpenTime:       "06:00",
			CloseTime:      "23:00",
			Timezone:       "Asia/Kolkata",
			BookingRules: entities.BookingRules{
				MinimumDuration:   60,
				DurationMultiples: 60,
				FixedSlots:        true,
			},
		},
	}
	raw, err := json.Marshal(config)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "facilities.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	facilities := repository.NewFacilityRepository(path)
	require.NoError(t, facilities.Load())

	availability := service.NewAvailabilityService(cal, facilities)
	booking := service.NewBookingService(availability, cal, facilities, service.NewLockRegistry(), service.NewOrphanRegistry(), nil)
	return NewBookingHandler(availability, booking)
}

// futureDate returns a date far enough ahead that a 14:00 slot is never in
// the past while the test runs.
func futureDate() string {
	return time.Now().AddDate(0, 0, 30).Format("2006-01-02")
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCheckAvailabilityHandler(t *testing.T) {
	handler := newTestHandler(t, newStubCalendar())

	rec := postJSON(t, handler.CheckAvailability, CheckAvailabilityRequest{
		FacilityID:      "pickle_x_mysore",
		Date:            futureDate(),
		StartTime:       "14:00",
		DurationMinutes: 60,
		NumberOfCourts:  2,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Available)
	assert.Equal(t, []int{1, 2, 3, 4}, resp.FreeCourts)
}

func TestCheckAvailabilityHandlerMisalignedSlot(t *testing.T) {
	handler := newTestHandler(t, newStubCalendar())

	rec := postJSON(t, handler.CheckAvailability, CheckAvailabilityRequest{
		FacilityID:      "pickle_x_mysore",
		Date:            futureDate(),
		StartTime:       "14:30",
		DurationMinutes: 60,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.ReasonIfNotAvailable, "align")
}

func TestCheckAvailabilityHandlerUnknownFacility(t *testing.T) {
	handler := newTestHandler(t, newStubCalendar())

	rec := postJSON(t, handler.CheckAvailability, CheckAvailabilityRequest{
		FacilityID:      "nowhere",
		Date:            futureDate(),
		StartTime:       "14:00",
		DurationMinutes: 60,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckAvailabilityHandlerCalendarDown(t *testing.T) {
	cal := newStubCalendar()
	cal.listErr = fmt.Errorf("upstream down")
	handler := newTestHandler(t, cal)

	rec := postJSON(t, handler.CheckAvailability, CheckAvailabilityRequest{
		FacilityID:      "pickle_x_mysore",
		Date:            futureDate(),
		StartTime:       "14:00",
		DurationMinutes: 60,
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp CheckAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available, "a broken calendar must never read as available")
}

func TestCreateBookingHandler(t *testing.T) {
	cal := newStubCalendar()
	handler := newTestHandler(t, cal)

	rec := postJSON(t, handler.CreateBooking, CreateBookingRequest{
		FacilityID:      "pickle_x_mysore",
		Date:            futureDate(),
		StartTime:       "14:00",
		DurationMinutes: 60,
		NumberOfCourts:  2,
		Name:            "Priya Sharma",
		PhoneNumber:     "+919876543210",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []int{1, 2}, resp.Courts)
	assert.Equal(t, "evt-1,evt-2", resp.BookingID)
	assert.Contains(t, resp.Message, "Priya Sharma")
}

func TestCreateBookingHandlerInsufficientAvailability(t *testing.T) {
	cal := newStubCalendar()
	handler := newTestHandler(t, cal)

	// Fill courts 1 and 2 directly in the calendar.
	loc, _ := time.LoadLocation("Asia/Kolkata")
	start, _ := time.ParseInLocation("2006-01-02 15:04", futureDate()+" 14:00", loc)
	end := start.Add(time.Hour)
	cal.CreateEvent(context.Background(), "Court 1 Booking - x", "(pickle_x_mysore)", start, end)
	cal.CreateEvent(context.Background(), "Court 2 Booking - y", "(pickle_x_mysore)", start, end)

	rec := postJSON(t, handler.CreateBooking, CreateBookingRequest{
		FacilityID:      "pickle_x_mysore",
		Date:            futureDate(),
		StartTime:       "14:00",
		DurationMinutes: 60,
		NumberOfCourts:  3,
		Name:            "Ravi",
		PhoneNumber:     "+919876500000",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, []int{3, 4}, resp.FreeCourts)
}

func TestCreateBookingHandlerBadJSON(t *testing.T) {
	handler := newTestHandler(t, newStubCalendar())

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
