package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"courtline/internal/entities"
	apperrors "courtline/internal/errors"
	"courtline/internal/service"
)

type BookingHandler struct {
	Availability *service.AvailabilityService
	Booking      *service.BookingService
}

func NewBookingHandler(availability *service.AvailabilityService, booking *service.BookingService) *BookingHandler {
	return &BookingHandler{Availability: availability, Booking: booking}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.NumberOfCourts < 1 {
		req.NumberOfCourts = 1
	}

	availability, err := h.Availability.CheckAvailability(r.Context(), entities.AvailabilityRequest{
		FacilityID:      req.FacilityID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		NumberOfCourts:  req.NumberOfCourts,
	})
	if err != nil {
		status, resp := availabilityErrorResponse(err)
		writeJSON(w, status, resp)
		return
	}

	resp := CheckAvailabilityResponse{
		Success:    true,
		Available:  availability.HasCourts(req.NumberOfCourts),
		FreeCourts: availability.FreeCourts,
	}
	if !resp.Available {
		resp.ReasonIfNotAvailable = (&apperrors.InsufficientAvailabilityError{
			Requested:  req.NumberOfCourts,
			FreeCourts: availability.FreeCourts,
		}).Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	confirmation, err := h.Booking.CreateBooking(r.Context(), entities.BookingRequest{
		FacilityID:      req.FacilityID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		NumberOfCourts:  req.NumberOfCourts,
		CourtNumbers:    req.CourtNumbers,
		CustomerName:    req.Name,
		CustomerPhone:   req.PhoneNumber,
		CustomerEmail:   req.Email,
	})
	if err != nil {
		status, resp := bookingErrorResponse(err)
		writeJSON(w, status, resp)
		return
	}

	writeJSON(w, http.StatusOK, CreateBookingResponse{
		Success:   true,
		BookingID: confirmation.BookingID(),
		Message:   confirmation.Message,
		Courts:    confirmation.Courts,
	})
}

func availabilityErrorResponse(err error) (int, CheckAvailabilityResponse) {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.FacilityNotFoundError
	var calendarErr *apperrors.CalendarUnavailableError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusOK, CheckAvailabilityResponse{
			Success:              false,
			ReasonIfNotAvailable: validationErr.Reason,
		}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, CheckAvailabilityResponse{Success: false, Error: notFoundErr.Error()}
	case errors.As(err, &calendarErr):
		log.Printf("Availability check failed: %v", err)
		return http.StatusServiceUnavailable, CheckAvailabilityResponse{Success: false, Error: "calendar service unavailable"}
	default:
		log.Printf("Availability check failed: %v", err)
		return http.StatusInternalServerError, CheckAvailabilityResponse{Success: false, Error: "internal error checking availability"}
	}
}

func bookingErrorResponse(err error) (int, CreateBookingResponse) {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.FacilityNotFoundError
	var calendarErr *apperrors.CalendarUnavailableError
	var insufficientErr *apperrors.InsufficientAvailabilityError
	var partialErr *apperrors.PartialWriteFailureError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusOK, CreateBookingResponse{Success: false, Error: validationErr.Reason}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, CreateBookingResponse{Success: false, Error: notFoundErr.Error()}
	case errors.As(err, &insufficientErr):
		return http.StatusOK, CreateBookingResponse{
			Success:    false,
			Error:      insufficientErr.Error(),
			FreeCourts: insufficientErr.FreeCourts,
		}
	case errors.As(err, &partialErr):
		// Orphaned event ids must reach the caller; an operator has to see them.
		log.Printf("Booking failed with partial writes: %v", err)
		return http.StatusInternalServerError, CreateBookingResponse{Success: false, Error: partialErr.Error()}
	case errors.As(err, &calendarErr):
		log.Printf("Booking failed: %v", err)
		return http.StatusServiceUnavailable, CreateBookingResponse{Success: false, Error: "calendar service unavailable"}
	default:
		log.Printf("Booking failed: %v", err)
		return http.StatusInternalServerError, CreateBookingResponse{Success: false, Error: "internal error creating booking"}
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
