package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"courtline/internal/entities"
)

// FacilityRepository holds the static facility configuration, loaded from a
// JSON file keyed by facility_id. The booking engine consumes it read-only;
// Load may be called again at any time, and lookups hand out value copies so
// one validate/check/create call always works from a single consistent
// snapshot of the rules.
type FacilityRepository struct {
	path string

	mu         sync.RWMutex
	facilities map[string]entities.Facility
	byPhone    map[string]string
}

func NewFacilityRepository(path string) *FacilityRepository {
	return &FacilityRepository{
		path:       path,
		facilities: make(map[string]entities.Facility),
		byPhone:    make(map[string]string),
	}
}

// Load reads the configuration file and swaps the in-memory tables
// atomically. On error the previous tables stay in place.
func (r *FacilityRepository) Load() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("reading facilities config %s: %w", r.path, err)
	}

	var parsed map[string]entities.Facility
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parsing facilities config %s: %w", r.path, err)
	}

	facilities := make(map[string]entities.Facility, len(parsed))
	byPhone := make(map[string]string, len(parsed))
	for id, f := range parsed {
		if f.FacilityID == "" {
			f.FacilityID = id
		}
		if err := f.Validate(); err != nil {
			return fmt.Errorf("facilities config %s: %w", r.path, err)
		}
		facilities[f.FacilityID] = f
		if f.PhoneNumber != "" {
			byPhone[f.PhoneNumber] = f.FacilityID
		}
	}

	r.mu.Lock()
	r.facilities = facilities
	r.byPhone = byPhone
	r.mu.Unlock()

	log.Printf("Loaded %d facilities from %s", len(facilities), r.path)
	return nil
}

// GetByID returns a copy of the facility, or false when unknown.
func (r *FacilityRepository) GetByID(facilityID string) (entities.Facility, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.facilities[facilityID]
	return f, ok
}

// GetByPhone resolves a facility from the number a caller dialed.
func (r *FacilityRepository) GetByPhone(phoneNumber string) (entities.Facility, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPhone[phoneNumber]
	if !ok {
		return entities.Facility{}, false
	}
	f, ok := r.facilities[id]
	return f, ok
}

// All returns a copy of every configured facility.
func (r *FacilityRepository) All() []entities.Facility {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Facility, 0, len(r.facilities))
	for _, f := range r.facilities {
		out = append(out, f)
	}
	return out
}
