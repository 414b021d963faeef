package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/twilio/twilio-go/twiml"

	"courtline/internal/repository"
)

// VoiceHandler answers the Twilio voice webhook. It only resolves which
// facility was dialed and greets the caller; the conversation itself is
// driven by the realtime AI layer, which calls back into the booking API.
type VoiceHandler struct {
	Facilities *repository.FacilityRepository
}

func NewVoiceHandler(facilities *repository.FacilityRepository) *VoiceHandler {
	return &VoiceHandler{Facilities: facilities}
}

func (h *VoiceHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	called := r.FormValue("To")
	caller := r.FormValue("From")

	facility, ok := h.Facilities.GetByPhone(called)
	var message string
	if ok {
		log.Printf("Voice call from %s for facility %s", caller, facility.FacilityID)
		message = fmt.Sprintf("Welcome to %s. Please hold while we connect you to our booking assistant.", facility.FacilityName)
	} else {
		log.Printf("Voice call from %s to unknown number %s", caller, called)
		message = "Sorry, this number is not associated with a facility. Please check the number and try again."
	}

	doc, err := twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: message},
	})
	if err != nil {
		http.Error(w, "Error building response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	fmt.Fprint(w, doc)
}
