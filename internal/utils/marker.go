package utils

import (
	"regexp"
	"strconv"
)

// CourtMarkerFunc extracts a court number from a calendar event title.
// The calendar has no structured court field, so court identity rides inside
// free text; keeping extraction pluggable lets the parsing rule be swapped or
// hardened without touching the availability algorithm.
type CourtMarkerFunc func(title string) (int, bool)

var courtMarkerRe = regexp.MustCompile(`(?i)\bcourt\s*#?\s*(\d+)\b`)

// ExtractCourtNumber is the default marker strategy: the first "Court N"
// token in the title, case-insensitive.
func ExtractCourtNumber(title string) (int, bool) {
	m := courtMarkerRe.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
