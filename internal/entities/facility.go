package entities

import (
	"fmt"
	"time"
)

// BookingRules describes how slots may be requested at a facility.
type BookingRules struct {
	MinimumDuration   int  `json:"minimum_duration"`
	DurationMultiples int  `json:"duration_multiples"`
	FixedSlots        bool `json:"fixed_slots"`
}

// Facility is the static configuration for one venue. It is loaded from the
// facilities config file and treated as read-only by the booking engine.
type Facility struct {
	FacilityID     string       `json:"facility_id"`
	FacilityName   string       `json:"facility_name"`
	PhoneNumber    string       `json:"phone_number"`
	NumberOfCourts int          `json:"number_of_courts"`
	OpenTime       string       `json:"open_time"`
	CloseTime      string       `json:"close_time"`
	Timezone       string       `json:"timezone"`
	BookingRules   BookingRules `json:"booking_rules"`
}

// Location resolves the facility timezone, falling back to UTC when the
// configured name cannot be loaded.
func (f Facility) Location() *time.Location {
	if f.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate checks the structural invariants of a facility entry.
func (f Facility) Validate() error {
	if f.FacilityID == "" {
		return fmt.Errorf("facility_id is required")
	}
	if f.NumberOfCourts < 1 {
		return fmt.Errorf("facility %s: number_of_courts must be >= 1, got %d", f.FacilityID, f.NumberOfCourts)
	}
	if f.OpenTime >= f.CloseTime {
		return fmt.Errorf("facility %s: open_time %s must be before close_time %s", f.FacilityID, f.OpenTime, f.CloseTime)
	}
	return nil
}

// Rules returns the booking rules with defaults applied (60-minute slots on
// hourly boundaries, matching the common facility setup).
func (f Facility) Rules() BookingRules {
	r := f.BookingRules
	if r.MinimumDuration == 0 {
		r.MinimumDuration = 60
	}
	if r.DurationMultiples == 0 {
		r.DurationMultiples = 60
	}
	return r
}
