package api

import (
	"net/http"

	"courtline/internal/repository"
	"courtline/internal/service"
)

type StatusHandler struct {
	Facilities *repository.FacilityRepository
	Orphans    *service.OrphanRegistry
}

func NewStatusHandler(facilities *repository.FacilityRepository, orphans *service.OrphanRegistry) *StatusHandler {
	return &StatusHandler{Facilities: facilities, Orphans: orphans}
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:           "healthy",
		FacilitiesLoaded: len(h.Facilities.All()),
		OrphanedEvents:   len(h.Orphans.List()),
	})
}

func (h *StatusHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities := h.Facilities.All()
	out := make([]FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, FacilityResponse{
			FacilityID:     f.FacilityID,
			FacilityName:   f.FacilityName,
			PhoneNumber:    f.PhoneNumber,
			NumberOfCourts: f.NumberOfCourts,
			OpenTime:       f.OpenTime,
			CloseTime:      f.CloseTime,
			Timezone:       f.Timezone,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ListOrphanedEvents surfaces calendar events whose rollback delete failed.
// Operators clean these up by hand when the sweep job gives up.
func (h *StatusHandler) ListOrphanedEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Orphans.List())
}
