package service

import (
	"context"
	"log"
	"time"

	"courtline/internal/repository"
)

const maxOrphanDeleteAttempts = 5

// JobService holds the periodic maintenance work scheduled from main:
// pruning stale booking locks, retrying deletes of orphaned calendar events,
// and reloading the facility configuration.
type JobService struct {
	Calendar   repository.CalendarRepository
	Facilities *repository.FacilityRepository
	Locks      *LockRegistry
	Orphans    *OrphanRegistry
}

func NewJobService(cal repository.CalendarRepository, facilities *repository.FacilityRepository, locks *LockRegistry, orphans *OrphanRegistry) *JobService {
	return &JobService{Calendar: cal, Facilities: facilities, Locks: locks, Orphans: orphans}
}

// PruneStaleLocks evicts lock entries whose booking date is in the past.
// Those keys can never be booked again, so keeping them only grows the map.
func (s *JobService) PruneStaleLocks() {
	cutoff := time.Now().AddDate(0, 0, -1)
	removed := s.Locks.Prune(cutoff)
	if removed > 0 {
		log.Printf("Cron Job: pruned %d stale booking lock(s), %d remain", removed, s.Locks.Size())
	}
}

// SweepOrphanedEvents retries the compensating deletes that failed during
// booking rollback. Orphans that survive the attempt cap stay listed and are
// logged loudly; they represent real calendar state needing an operator.
func (s *JobService) SweepOrphanedEvents(ctx context.Context) {
	orphans := s.Orphans.List()
	if len(orphans) == 0 {
		return
	}

	log.Printf("Cron Job: sweeping %d orphaned calendar event(s)", len(orphans))
	for _, orphan := range orphans {
		if orphan.Attempts >= maxOrphanDeleteAttempts {
			log.Printf("MANUAL CLEANUP REQUIRED: orphaned event %s (facility %s, court %d, date %s) after %d delete attempts",
				orphan.EventID, orphan.FacilityID, orphan.Court, orphan.Date, orphan.Attempts)
			continue
		}

		s.Orphans.MarkAttempt(orphan.EventID)
		if err := s.Calendar.DeleteEvent(ctx, orphan.EventID); err != nil {
			log.Printf("Cron Job: delete of orphaned event %s failed (attempt %d): %v",
				orphan.EventID, orphan.Attempts+1, err)
			continue
		}
		s.Orphans.Remove(orphan.EventID)
		log.Printf("Cron Job: cleaned up orphaned event %s (facility %s, court %d)",
			orphan.EventID, orphan.FacilityID, orphan.Court)
	}
}

// ReloadFacilities re-reads the facility configuration file. A failed reload
// keeps the previous configuration in place.
func (s *JobService) ReloadFacilities() {
	if err := s.Facilities.Load(); err != nil {
		log.Printf("Cron Job: facility config reload failed, keeping previous config: %v", err)
	}
}
