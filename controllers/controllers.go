package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tripmate_server/services"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps the typed service errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	var te *services.TransientStoreError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Reason})
	case errors.Is(err, services.ErrCapacityFull):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "trip is full"})
	case errors.Is(err, services.ErrTripEnded):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "trip has ended"})
	case errors.Is(err, services.ErrPermission):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "permission denied"})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.As(err, &te):
		log.Printf("❌ Store failure: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "temporary store failure, please retry"})
	default:
		log.Printf("❌ Unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the TripMate API"})
}
