package service

import (
	"sync"
	"time"

	"courtline/internal/utils"
)

// LockRegistry provides process-wide mutual exclusion keyed by
// (facility_id, date). Only one create-booking attempt per facility-day runs
// at a time; attempts for other days or facilities proceed in parallel.
// Entries are created on demand and pruned once their date has passed, so the
// map does not grow without bound.
type LockRegistry struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu       sync.Mutex
	date     string
	waiters  int
	lastUsed time.Time
}

// Lease is a held lock. Release must be called exactly once, on every exit
// path of the operation that acquired it.
type Lease struct {
	registry *LockRegistry
	key      string
	entry    *lockEntry
}

func NewLockRegistry() *LockRegistry {
	return &LockRegistry{entries: make(map[string]*lockEntry)}
}

// Acquire blocks until the caller holds the exclusive lock for the given
// facility and date. Attempts for one key are served in lock-acquisition
// order.
func (r *LockRegistry) Acquire(facilityID, date string) *Lease {
	key := facilityID + "|" + date

	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &lockEntry{date: date}
		r.entries[key] = e
	}
	e.waiters++
	r.mu.Unlock()

	e.mu.Lock()
	return &Lease{registry: r, key: key, entry: e}
}

// Release gives the lock back.
func (l *Lease) Release() {
	l.entry.mu.Unlock()

	l.registry.mu.Lock()
	l.entry.waiters--
	l.entry.lastUsed = time.Now()
	l.registry.mu.Unlock()
}

// Prune drops entries for dates before the cutoff date. Entries with waiters
// (held or queued) are left alone so an in-flight booking never loses its
// lock.
func (r *LockRegistry) Prune(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, e := range r.entries {
		if e.waiters > 0 {
			continue
		}
		d, err := utils.ParseDate(e.date)
		if err != nil || d.Before(cutoff) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// Size reports how many keys the registry currently tracks.
func (r *LockRegistry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
