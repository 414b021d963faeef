package api

// Function-call bridge payloads. These mirror the check_availability and
// create_booking tool schemas the voice layer invokes; business rejections
// come back as success=false envelopes with a reason, not as HTTP errors.

type CheckAvailabilityRequest struct {
	FacilityID      string `json:"facility_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	NumberOfCourts  int    `json:"number_of_courts"`
}

type CheckAvailabilityResponse struct {
	Success              bool   `json:"success"`
	Available            bool   `json:"available"`
	FreeCourts           []int  `json:"free_courts"`
	ReasonIfNotAvailable string `json:"reason_if_not_available,omitempty"`
	Error                string `json:"error,omitempty"`
}

type CreateBookingRequest struct {
	FacilityID      string `json:"facility_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	NumberOfCourts  int    `json:"number_of_courts"`
	CourtNumbers    []int  `json:"court_numbers,omitempty"`
	Name            string `json:"name"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email,omitempty"`
}

type CreateBookingResponse struct {
	Success    bool   `json:"success"`
	BookingID  string `json:"booking_id,omitempty"`
	Message    string `json:"message,omitempty"`
	Courts     []int  `json:"courts,omitempty"`
	FreeCourts []int  `json:"free_courts,omitempty"`
	Error      string `json:"error,omitempty"`
}

type FacilityResponse struct {
	FacilityID     string `json:"facility_id"`
	FacilityName   string `json:"facility_name"`
	PhoneNumber    string `json:"phone_number"`
	NumberOfCourts int    `json:"number_of_courts"`
	OpenTime       string `json:"open_time"`
	CloseTime      string `json:"close_time"`
	Timezone       string `json:"timezone"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	FacilitiesLoaded int    `json:"facilities_loaded"`
	OrphanedEvents   int    `json:"orphaned_events"`
}
