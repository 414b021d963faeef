package utils

import (
	"time"

	"courtline/internal/entities"
	apperrors "courtline/internal/errors"
)

// ValidateBookingSlot checks a requested slot against the facility rules.
// Checks run in order and the first violation wins:
//
//  1. start time aligned to the duration multiple, measured from midnight
//     (only when the facility uses fixed slots)
//  2. duration a positive multiple of the duration multiple and at least the
//     minimum duration
//  3. the whole slot inside operating hours
//  4. the slot not in the past, judged in the facility's local time
//
// Pure: no I/O, deterministic for a given now.
func ValidateBookingSlot(date, startTime string, durationMinutes int, f entities.Facility, now time.Time) error {
	rules := f.Rules()

	startMin, err := ParseClock(startTime)
	if err != nil {
		return apperrors.NewValidationError("%v", err)
	}

	if rules.FixedSlots && startMin%rules.DurationMultiples != 0 {
		return apperrors.NewValidationError(
			"start time must align with %d-minute boundaries (e.g., 06:00, 14:00), got %s",
			rules.DurationMultiples, startTime)
	}

	if durationMinutes < rules.MinimumDuration {
		return apperrors.NewValidationError("duration must be at least %d minutes", rules.MinimumDuration)
	}
	if durationMinutes%rules.DurationMultiples != 0 {
		return apperrors.NewValidationError(
			"duration must be a multiple of %d minutes, got %d", rules.DurationMultiples, durationMinutes)
	}

	openMin, err := ParseClock(f.OpenTime)
	if err != nil {
		return apperrors.NewValidationError("facility open_time: %v", err)
	}
	closeMin, err := ParseClock(f.CloseTime)
	if err != nil {
		return apperrors.NewValidationError("facility close_time: %v", err)
	}
	endMin := startMin + durationMinutes
	if startMin < openMin {
		return apperrors.NewValidationError("outside operating hours: facility opens at %s", f.OpenTime)
	}
	if endMin > closeMin {
		return apperrors.NewValidationError("outside operating hours: facility closes at %s", f.CloseTime)
	}

	loc := f.Location()
	start, err := CombineDateTime(date, startTime, loc)
	if err != nil {
		return apperrors.NewValidationError("%v", err)
	}
	if start.Before(now.In(loc)) {
		return apperrors.NewValidationError("cannot book a slot in the past: %s %s", date, startTime)
	}

	return nil
}

// ValidateCourtNumbers checks explicitly requested court numbers against the
// facility size and rejects duplicates.
func ValidateCourtNumbers(courts []int, numberOfCourts int) error {
	if len(courts) == 0 {
		return apperrors.NewValidationError("at least one court must be specified")
	}
	seen := make(map[int]bool, len(courts))
	for _, c := range courts {
		if c < 1 || c > numberOfCourts {
			return apperrors.NewValidationError("invalid court number %d, facility has courts 1-%d", c, numberOfCourts)
		}
		if seen[c] {
			return apperrors.NewValidationError("duplicate court number %d in request", c)
		}
		seen[c] = true
	}
	return nil
}
