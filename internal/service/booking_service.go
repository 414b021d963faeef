package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"courtline/internal/entities"
	apperrors "courtline/internal/errors"
	"courtline/internal/repository"
	"courtline/internal/utils"
)

// BookingService serializes create-booking attempts per (facility_id, date)
// and commits them to the calendar with a read-verify-write protocol:
// availability is always re-checked under the lock immediately before
// writing, because data observed before the lock was taken may be stale.
// Multi-court writes get compensating rollback, since the calendar offers no
// transactions.
type BookingService struct {
	Availability *AvailabilityService
	Calendar     repository.CalendarRepository
	Facilities   *repository.FacilityRepository
	Locks        *LockRegistry
	Orphans      *OrphanRegistry
	Sender       *SenderService

	now func() time.Time
}

func NewBookingService(
	availability *AvailabilityService,
	cal repository.CalendarRepository,
	facilities *repository.FacilityRepository,
	locks *LockRegistry,
	orphans *OrphanRegistry,
	sender *SenderService,
) *BookingService {
	return &BookingService{
		Availability: availability,
		Calendar:     cal,
		Facilities:   facilities,
		Locks:        locks,
		Orphans:      orphans,
		Sender:       sender,
		now:          time.Now,
	}
}

// CreateBooking runs one create-booking attempt end to end. Within one
// facility-day key, attempts are totally ordered by lock acquisition;
// attempts for other keys run in parallel.
func (s *BookingService) CreateBooking(ctx context.Context, req entities.BookingRequest) (*entities.BookingConfirmation, error) {
	facility, ok := s.Facilities.GetByID(req.FacilityID)
	if !ok {
		return nil, &apperrors.FacilityNotFoundError{FacilityID: req.FacilityID}
	}

	if err := utils.ValidateBookingSlot(req.Date, req.StartTime, req.DurationMinutes, facility, s.now()); err != nil {
		return nil, err
	}
	if len(req.CourtNumbers) > 0 {
		if err := utils.ValidateCourtNumbers(req.CourtNumbers, facility.NumberOfCourts); err != nil {
			return nil, err
		}
	}
	requested := req.RequestedCourts()
	if requested > facility.NumberOfCourts {
		return nil, apperrors.NewValidationError(
			"requested %d courts but facility has only %d", requested, facility.NumberOfCourts)
	}

	start, err := utils.CombineDateTime(req.Date, req.StartTime, facility.Location())
	if err != nil {
		return nil, apperrors.NewValidationError("%v", err)
	}
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	lease := s.Locks.Acquire(facility.FacilityID, req.Date)
	defer lease.Release()

	// Mandatory re-verification under the lock. Whatever the caller saw
	// before calling us no longer counts.
	free, err := s.Availability.FreeCourts(ctx, facility, start, end)
	if err != nil {
		return nil, err
	}
	if len(free) < requested {
		return nil, &apperrors.InsufficientAvailabilityError{Requested: requested, FreeCourts: free}
	}

	courts, err := selectCourts(req.CourtNumbers, free, requested)
	if err != nil {
		return nil, err
	}

	eventIDs, err := s.writeEvents(ctx, facility, req, courts, start, end)
	if err != nil {
		return nil, err
	}

	confirmation := &entities.BookingConfirmation{
		FacilityID: facility.FacilityID,
		EventIDs:   eventIDs,
		Courts:     courts,
		Date:       req.Date,
		StartTime:  start,
		EndTime:    end,
		Message: fmt.Sprintf("Booking confirmed for %s! Court(s) %s on %s at %s for %d minutes.",
			req.CustomerName, joinInts(courts), req.Date, req.StartTime, req.DurationMinutes),
	}

	if s.Sender != nil {
		s.Sender.NotifyBookingConfirmed(facility, req, *confirmation)
	}
	return confirmation, nil
}

// selectCourts resolves which courts to book: the caller's explicit choice
// when given (all of them must be free), otherwise the lowest-numbered free
// courts in ascending order, which keeps selection deterministic.
func selectCourts(requested, free []int, count int) ([]int, error) {
	if len(requested) == 0 {
		return append([]int(nil), free[:count]...), nil
	}
	freeSet := make(map[int]bool, len(free))
	for _, c := range free {
		freeSet[c] = true
	}
	for _, c := range requested {
		if !freeSet[c] {
			return nil, &apperrors.InsufficientAvailabilityError{Requested: count, FreeCourts: free}
		}
	}
	return append([]int(nil), requested...), nil
}

// writeEvents creates one calendar event per court, sequentially. On failure
// after k successful writes, the k events are deleted again; deletes that
// fail too are recorded as orphans and surfaced in the returned error.
func (s *BookingService) writeEvents(ctx context.Context, facility entities.Facility, req entities.BookingRequest, courts []int, start, end time.Time) ([]string, error) {
	created := make([]string, 0, len(courts))
	createdCourts := make([]int, 0, len(courts))

	for _, court := range courts {
		if err := ctx.Err(); err != nil {
			return nil, s.rollback(ctx, facility, req, created, createdCourts, err)
		}
		title := fmt.Sprintf("Court %d Booking - %s", court, req.CustomerName)
		description := buildEventDescription(facility, req, court)
		id, err := s.Calendar.CreateEvent(ctx, title, description, start, end)
		if err != nil {
			return nil, s.rollback(ctx, facility, req, created, createdCourts, err)
		}
		created = append(created, id)
		createdCourts = append(createdCourts, court)
	}
	return created, nil
}

// rollback compensates for a partial multi-court write. It runs on a context
// detached from caller cancellation: once events exist in the calendar, a
// hung or cancelled caller must not stop us from cleaning them up.
func (s *BookingService) rollback(ctx context.Context, facility entities.Facility, req entities.BookingRequest, created []string, courts []int, cause error) error {
	if len(created) == 0 {
		return &apperrors.CalendarUnavailableError{Op: "create event", Err: cause}
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	var orphaned []string
	for i, id := range created {
		if err := s.Calendar.DeleteEvent(cleanupCtx, id); err != nil {
			log.Printf("Rollback failed for event %s (court %d, facility %s): %v",
				id, courts[i], facility.FacilityID, err)
			orphaned = append(orphaned, id)
			if s.Orphans != nil {
				s.Orphans.Record(OrphanedEvent{
					EventID:    id,
					FacilityID: facility.FacilityID,
					Date:       req.Date,
					Court:      courts[i],
					Attempts:   1,
				})
			}
		} else {
			log.Printf("Rolled back event %s (court %d, facility %s)", id, courts[i], facility.FacilityID)
		}
	}

	return &apperrors.PartialWriteFailureError{
		CreatedEventIDs:  created,
		OrphanedEventIDs: orphaned,
		Err:              cause,
	}
}

func buildEventDescription(facility entities.Facility, req entities.BookingRequest, court int) string {
	endClock, _ := utils.AddMinutesClock(req.StartTime, req.DurationMinutes)
	return fmt.Sprintf(`Customer Name: %s
Phone: %s
Facility: %s (%s)
Court Number: %d
Date: %s
Start Time: %s
End Time: %s
Duration: %d minutes`,
		req.CustomerName, req.CustomerPhone,
		facility.FacilityName, facility.FacilityID,
		court, req.Date, req.StartTime, endClock, req.DurationMinutes)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
