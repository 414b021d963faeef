package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const facilitiesJSON = `{
  "pickle_x_mysore": {
    "facility_name": "Pickle X Mysore",
    "phone_number": "+918012345678",
    "number_of_courts": 4,
    "open_time": "06:00",
    "close_time": "23:00",
    "timezone": "Asia/Kolkata",
    "booking_rules": {
      "minimum_duration": 60,
      "duration_multiples": 60,
      "fixed_slots": true
    }
  },
  "smash_arena_blr": {
    "facility_id": "smash_arena_blr",
    "facility_name": "Smash Arena Bengaluru",
    "phone_number": "+918098765432",
    "number_of_courts": 6,
    "open_time": "05:00",
    "close_time": "22:00",
    "timezone": "Asia/Kolkata",
    "booking_rules": {
      "minimum_duration": 60,
      "duration_multiples": 60,
      "fixed_slots": true
    }
  }
}`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facilities.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestFacilityRepositoryLoad(t *testing.T) {
	repo := NewFacilityRepository(writeConfig(t, facilitiesJSON))
	require.NoError(t, repo.Load())

	assert.Len(t, repo.All(), 2)

	f, ok := repo.GetByID("pickle_x_mysore")
	require.True(t, ok)
	assert.Equal(t, "Pickle X Mysore", f.FacilityName)
	assert.Equal(t, 4, f.NumberOfCourts)
	// The map key fills in a missing facility_id field.
	assert.Equal(t, "pickle_x_mysore", f.FacilityID)

	_, ok = repo.GetByID("nowhere")
	assert.False(t, ok)
}

func TestFacilityRepositoryGetByPhone(t *testing.T) {
	repo := NewFacilityRepository(writeConfig(t, facilitiesJSON))
	require.NoError(t, repo.Load())

	f, ok := repo.GetByPhone("+918098765432")
	require.True(t, ok)
	assert.Equal(t, "smash_arena_blr", f.FacilityID)

	_, ok = repo.GetByPhone("+10000000000")
	assert.False(t, ok)
}

func TestFacilityRepositoryLookupsAreSnapshots(t *testing.T) {
	repo := NewFacilityRepository(writeConfig(t, facilitiesJSON))
	require.NoError(t, repo.Load())

	f, ok := repo.GetByID("pickle_x_mysore")
	require.True(t, ok)
	f.NumberOfCourts = 99

	again, _ := repo.GetByID("pickle_x_mysore")
	assert.Equal(t, 4, again.NumberOfCourts, "callers must not be able to mutate the registry")
}

func TestFacilityRepositoryRejectsBadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		repo := NewFacilityRepository(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, repo.Load())
	})

	t.Run("invalid json", func(t *testing.T) {
		repo := NewFacilityRepository(writeConfig(t, "{not json"))
		assert.Error(t, repo.Load())
	})

	t.Run("zero courts", func(t *testing.T) {
		repo := NewFacilityRepository(writeConfig(t, `{"x": {"facility_id": "x", "number_of_courts": 0, "open_time": "06:00", "close_time": "23:00"}}`))
		assert.Error(t, repo.Load())
	})

	t.Run("open after close", func(t *testing.T) {
		repo := NewFacilityRepository(writeConfig(t, `{"x": {"facility_id": "x", "number_of_courts": 2, "open_time": "23:00", "close_time": "06:00"}}`))
		assert.Error(t, repo.Load())
	})
}

func TestFacilityRepositoryFailedReloadKeepsPrevious(t *testing.T) {
	path := writeConfig(t, facilitiesJSON)
	repo := NewFacilityRepository(path)
	require.NoError(t, repo.Load())

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	assert.Error(t, repo.Load())
	assert.Len(t, repo.All(), 2, "a failed reload must keep serving the old config")
}
