package service

import (
	"sync"
	"time"
)

// OrphanedEvent is a calendar event left behind by a failed compensating
// delete. It exists in the real calendar but belongs to no confirmed booking,
// so someone (the sweep job, or failing that an operator) has to remove it.
type OrphanedEvent struct {
	EventID    string    `json:"event_id"`
	FacilityID string    `json:"facility_id"`
	Date       string    `json:"date"`
	Court      int       `json:"court"`
	RecordedAt time.Time `json:"recorded_at"`
	Attempts   int       `json:"attempts"`
}

// OrphanRegistry tracks orphaned events in memory. Losing this state on a
// crash is acceptable: the calendar itself remains the durable truth and the
// orphans stay visible there.
type OrphanRegistry struct {
	mu     sync.Mutex
	events map[string]OrphanedEvent
}

func NewOrphanRegistry() *OrphanRegistry {
	return &OrphanRegistry{events: make(map[string]OrphanedEvent)}
}

func (r *OrphanRegistry) Record(ev OrphanedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now()
	}
	r.events[ev.EventID] = ev
}

func (r *OrphanRegistry) Remove(eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, eventID)
}

// MarkAttempt bumps the delete-attempt counter for an orphan.
func (r *OrphanRegistry) MarkAttempt(eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev, ok := r.events[eventID]; ok {
		ev.Attempts++
		r.events[eventID] = ev
	}
}

func (r *OrphanRegistry) List() []OrphanedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]OrphanedEvent, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev)
	}
	return out
}
