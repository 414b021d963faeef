package entities

// BookingEmailData feeds the confirmation email sent after a booking.
type BookingEmailData struct {
	CustomerName       string
	FacilityName       string
	BookingID          string
	Courts             []int
	DateFormatted      string
	StartTimeFormatted string
	EndTimeFormatted   string
	DurationMinutes    int
}
