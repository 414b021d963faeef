package utils

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %s, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// CombineDateTime builds a timezone-aware timestamp from a date string, an
// HH:MM time string and a location.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), m/60, m%60, 0, 0, loc), nil
}

// AddMinutesClock returns the HH:MM clock string that lies duration minutes
// after the given HH:MM start.
func AddMinutesClock(clock string, duration int) (string, error) {
	m, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return FormatClock((m + duration) % (24 * 60)), nil
}
