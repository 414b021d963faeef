package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"courtline/internal/api"
	"courtline/internal/repository"
	"courtline/internal/service"
)

func main() {
	godotenv.Load()

	calendarID := os.Getenv("GOOGLE_CALENDAR_ID")
	if calendarID == "" {
		calendarID = "primary"
	}
	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		log.Fatal("GOOGLE_CREDENTIALS_FILE not set")
	}
	facilitiesConfig := os.Getenv("FACILITIES_CONFIG")
	if facilitiesConfig == "" {
		facilitiesConfig = "config/facilities.json"
	}

	ctx := context.Background()
	calendarRepo, err := repository.NewGoogleCalendarRepository(ctx, calendarID, credentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize calendar: %v", err)
	}

	facilityRepo := repository.NewFacilityRepository(facilitiesConfig)
	if err := facilityRepo.Load(); err != nil {
		log.Fatalf("Failed to load facilities: %v", err)
	}

	locks := service.NewLockRegistry()
	orphans := service.NewOrphanRegistry()
	sender := service.NewSenderService()

	availabilitySvc := service.NewAvailabilityService(calendarRepo, facilityRepo)
	bookingSvc := service.NewBookingService(availabilitySvc, calendarRepo, facilityRepo, locks, orphans, sender)
	jobSvc := service.NewJobService(calendarRepo, facilityRepo, locks, orphans)

	bookingHandler := api.NewBookingHandler(availabilitySvc, bookingSvc)
	statusHandler := api.NewStatusHandler(facilityRepo, orphans)
	voiceHandler := api.NewVoiceHandler(facilityRepo)

	c := cron.New()
	c.AddFunc("@every 1h", jobSvc.PruneStaleLocks)
	c.AddFunc("@every 5m", func() { jobSvc.SweepOrphanedEvents(context.Background()) })
	c.AddFunc("@every 10m", jobSvc.ReloadFacilities)
	c.Start()

	r := mux.NewRouter()

	// Function-call bridge for the voice/AI layer
	r.HandleFunc("/api/availability", bookingHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")

	// Status and configuration
	r.HandleFunc("/api/facilities", statusHandler.ListFacilities).Methods("GET")
	r.HandleFunc("/api/orphaned-events", statusHandler.ListOrphanedEvents).Methods("GET")
	r.HandleFunc("/health", statusHandler.Health).Methods("GET")

	// Telephony webhook
	r.HandleFunc("/voice/webhook", voiceHandler.Webhook).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
