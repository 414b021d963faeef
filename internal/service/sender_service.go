package service

import (
	"fmt"
	"log"

	"courtline/internal/entities"
)

// SenderService composes and dispatches booking confirmations. Sending runs
// in the background: a failed SMS or email never fails or delays the booking
// that triggered it.
type SenderService struct {
	sendSMS   func(to, message string) error
	sendEmail func(toEmail, toName, subject, plainBody, htmlBody string) error
}

func NewSenderService() *SenderService {
	return &SenderService{
		sendSMS:   SendSMS,
		sendEmail: SendEmailWithSendGrid,
	}
}

// NotifyBookingConfirmed sends the confirmation SMS to the customer's phone.
// An email goes out too when the request carried one (voice callers usually
// only leave a number).
func (s *SenderService) NotifyBookingConfirmed(facility entities.Facility, req entities.BookingRequest, confirmation entities.BookingConfirmation) {
	loc := facility.Location()
	smsMessage := fmt.Sprintf("%s: booking %s confirmed!\nCourt(s) %s on %s at %s.\nSee you on court!",
		facility.FacilityName,
		confirmation.BookingID(),
		joinInts(confirmation.Courts),
		confirmation.StartTime.In(loc).Format("02/01"),
		confirmation.StartTime.In(loc).Format("15:04"),
	)

	go func(to, body, bookingID string) {
		if to == "" {
			return
		}
		if err := s.sendSMS(to, body); err != nil {
			log.Printf("ALERT (async): booking %s confirmed but SMS to %s failed: %v", bookingID, to, err)
		}
	}(req.CustomerPhone, smsMessage, confirmation.BookingID())

	if req.CustomerEmail == "" {
		return
	}

	data := entities.BookingEmailData{
		CustomerName:       req.CustomerName,
		FacilityName:       facility.FacilityName,
		BookingID:          confirmation.BookingID(),
		Courts:             confirmation.Courts,
		DateFormatted:      confirmation.StartTime.In(loc).Format("02 Jan 2006"),
		StartTimeFormatted: confirmation.StartTime.In(loc).Format("15:04"),
		EndTimeFormatted:   confirmation.EndTime.In(loc).Format("15:04"),
		DurationMinutes:    req.DurationMinutes,
	}
	subject := fmt.Sprintf("Your %s booking is confirmed - %s", data.FacilityName, data.BookingID)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s is confirmed.\n\n"+
			"Booking Details:\n"+
			"Booking ID: %s\n"+
			"Court(s): %s\n"+
			"Date: %s\n"+
			"Time: %s - %s (%d minutes)\n\n"+
			"Thank you for booking with %s.",
		data.CustomerName, data.FacilityName, data.BookingID, joinInts(data.Courts),
		data.DateFormatted, data.StartTimeFormatted, data.EndTimeFormatted,
		data.DurationMinutes, data.FacilityName,
	)

	go func(toEmail, toName, subject, body, bookingID string) {
		if err := s.sendEmail(toEmail, toName, subject, body, ""); err != nil {
			log.Printf("ALERT (async): booking %s confirmed but email to %s failed: %v", bookingID, toEmail, err)
		}
	}(req.CustomerEmail, req.CustomerName, subject, plainBody, confirmation.BookingID())
}
