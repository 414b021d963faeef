package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCourtNumber(t *testing.T) {
	tests := []struct {
		title string
		court int
		ok    bool
	}{
		{"Court 3 Booking - Priya", 3, true},
		{"court 12 booking", 12, true},
		{"COURT 1 - maintenance", 1, true},
		{"Court #2 Booking - Ravi", 2, true},
		{"Coaching session court4", 4, true},
		{"Private event", 0, false},
		{"Courtney's birthday", 0, false},
		{"Court zero", 0, false},
		{"Court 0 Booking", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		court, ok := ExtractCourtNumber(tc.title)
		assert.Equal(t, tc.ok, ok, "title %q", tc.title)
		if tc.ok {
			assert.Equal(t, tc.court, court, "title %q", tc.title)
		}
	}
}
