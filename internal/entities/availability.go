package entities

import "time"

// AvailabilityRequest asks which courts are free for one slot.
type AvailabilityRequest struct {
	FacilityID      string
	Date            string
	StartTime       string
	DurationMinutes int
	NumberOfCourts  int
}

// CourtAvailability is the ephemeral result of one availability check. It is
// computed fresh on every request and never cached; the calendar remains the
// only source of truth and may change between calls.
type CourtAvailability struct {
	FacilityID  string    `json:"facility_id"`
	Date        string    `json:"date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TotalCourts int       `json:"total_courts"`
	FreeCourts  []int     `json:"free_courts"`
	TotalFree   int       `json:"total_free"`
}

// HasCourts reports whether at least n courts are free.
func (a CourtAvailability) HasCourts(n int) bool {
	return a.TotalFree >= n
}
