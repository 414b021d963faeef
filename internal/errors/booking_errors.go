package errors

import (
	"fmt"
	"strings"
)

// ValidationError rejects a slot request before any calendar I/O happens.
// Always recoverable by the caller, never retried automatically.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// FacilityNotFoundError means the requested facility is not configured.
type FacilityNotFoundError struct {
	FacilityID string
}

func (e *FacilityNotFoundError) Error() string {
	return fmt.Sprintf("facility not found: %s", e.FacilityID)
}

// CalendarUnavailableError wraps an adapter I/O failure or timeout. The engine
// must surface this instead of reporting courts as free.
type CalendarUnavailableError struct {
	Op  string
	Err error
}

func (e *CalendarUnavailableError) Error() string {
	return fmt.Sprintf("calendar unavailable during %s: %v", e.Op, e.Err)
}

func (e *CalendarUnavailableError) Unwrap() error {
	return e.Err
}

// InsufficientAvailabilityError is a normal business rejection: fewer courts
// are free than the request needs. FreeCourts carries the state observed under
// the booking lock.
type InsufficientAvailabilityError struct {
	Requested  int
	FreeCourts []int
}

func (e *InsufficientAvailabilityError) Error() string {
	return fmt.Sprintf("only %d court(s) available, but %d requested", len(e.FreeCourts), e.Requested)
}

// PartialWriteFailureError is the serious case: some but not all court events
// were written. CreatedEventIDs were rolled back; OrphanedEventIDs are events
// whose compensating delete also failed and now require operator attention.
type PartialWriteFailureError struct {
	CreatedEventIDs  []string
	OrphanedEventIDs []string
	Err              error
}

func (e *PartialWriteFailureError) Error() string {
	if e.ManualCleanupRequired() {
		return fmt.Sprintf("partial write failure, manual cleanup required for orphaned events [%s]: %v",
			strings.Join(e.OrphanedEventIDs, ", "), e.Err)
	}
	return fmt.Sprintf("partial write failure, %d event(s) rolled back: %v", len(e.CreatedEventIDs), e.Err)
}

func (e *PartialWriteFailureError) Unwrap() error {
	return e.Err
}

// ManualCleanupRequired reports whether rollback itself failed and calendar
// state needs operator intervention.
func (e *PartialWriteFailureError) ManualCleanupRequired() bool {
	return len(e.OrphanedEventIDs) > 0
}
