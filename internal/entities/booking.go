package entities

import (
	"strings"
	"time"
)

// BookingRequest is one create-booking attempt. CourtNumbers is optional: when
// empty, the coordinator picks the lowest-numbered free courts itself.
type BookingRequest struct {
	FacilityID      string
	Date            string
	StartTime       string
	DurationMinutes int
	NumberOfCourts  int
	CourtNumbers    []int
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
}

// RequestedCourts returns how many courts the request needs.
func (r BookingRequest) RequestedCourts() int {
	if len(r.CourtNumbers) > 0 {
		return len(r.CourtNumbers)
	}
	if r.NumberOfCourts > 0 {
		return r.NumberOfCourts
	}
	return 1
}

// BookingConfirmation is the successful outcome of a create-booking attempt.
// A booking has no identity of its own beyond the calendar events backing it.
type BookingConfirmation struct {
	FacilityID string    `json:"facility_id"`
	EventIDs   []string  `json:"event_ids"`
	Courts     []int     `json:"courts"`
	Date       string    `json:"date"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Message    string    `json:"message"`
}

// BookingID is the external identifier handed back to callers: the calendar
// event ids joined with commas, in court order.
func (b BookingConfirmation) BookingID() string {
	return strings.Join(b.EventIDs, ",")
}
