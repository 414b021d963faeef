package service

import (
	"context"
	"log"
	"sort"
	"time"

	"courtline/internal/entities"
	apperrors "courtline/internal/errors"
	"courtline/internal/repository"
	"courtline/internal/utils"
)

// AvailabilityService computes which courts are free for a slot by reading
// the external calendar. It is read-only and safe for concurrent use; results
// are never cached because the calendar may change between calls.
type AvailabilityService struct {
	Calendar     repository.CalendarRepository
	Facilities   *repository.FacilityRepository
	ExtractCourt utils.CourtMarkerFunc

	// now is swappable for tests.
	now func() time.Time
}

func NewAvailabilityService(cal repository.CalendarRepository, facilities *repository.FacilityRepository) *AvailabilityService {
	return &AvailabilityService{
		Calendar:     cal,
		Facilities:   facilities,
		ExtractCourt: utils.ExtractCourtNumber,
		now:          time.Now,
	}
}

// CheckAvailability validates the requested slot and returns the free-court
// set for it. Validation failures never reach the calendar.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, req entities.AvailabilityRequest) (*entities.CourtAvailability, error) {
	facility, ok := s.Facilities.GetByID(req.FacilityID)
	if !ok {
		return nil, &apperrors.FacilityNotFoundError{FacilityID: req.FacilityID}
	}

	if err := utils.ValidateBookingSlot(req.Date, req.StartTime, req.DurationMinutes, facility, s.now()); err != nil {
		return nil, err
	}

	start, err := utils.CombineDateTime(req.Date, req.StartTime, facility.Location())
	if err != nil {
		return nil, apperrors.NewValidationError("%v", err)
	}
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	free, err := s.FreeCourts(ctx, facility, start, end)
	if err != nil {
		return nil, err
	}

	return &entities.CourtAvailability{
		FacilityID:  facility.FacilityID,
		Date:        req.Date,
		StartTime:   start,
		EndTime:     end,
		TotalCourts: facility.NumberOfCourts,
		FreeCourts:  free,
		TotalFree:   len(free),
	}, nil
}

// FreeCourts returns the ascending list of courts with no booking event
// overlapping the half-open window [start, end). Adapter failures propagate;
// courts are never reported free on error.
func (s *AvailabilityService) FreeCourts(ctx context.Context, facility entities.Facility, start, end time.Time) ([]int, error) {
	events, err := s.Calendar.ListEvents(ctx, start, end)
	if err != nil {
		return nil, &apperrors.CalendarUnavailableError{Op: "list events", Err: err}
	}

	booked := make(map[int]bool)
	for _, ev := range events {
		if !ev.Overlaps(start, end) || !ev.MatchesFacility(facility.FacilityID) {
			continue
		}
		court, ok := s.ExtractCourt(ev.Title)
		if !ok {
			// Malformed calendar entries must not break availability checks.
			log.Printf("Calendar anomaly: event %s has no parseable court marker in title %q", ev.ID, ev.Title)
			continue
		}
		if court >= 1 && court <= facility.NumberOfCourts {
			booked[court] = true
		}
	}

	free := make([]int, 0, facility.NumberOfCourts)
	for c := 1; c <= facility.NumberOfCourts; c++ {
		if !booked[c] {
			free = append(free, c)
		}
	}
	sort.Ints(free)
	return free, nil
}
