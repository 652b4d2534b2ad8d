// Package handler contains HTTP request handlers for the reservation API.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// cacheInvalidator is the subset of repository.AvailabilityCache the booking
// and cancel handlers need, kept as an interface so handlers don't import
// the concrete Redis-backed repository type directly. Invalidate is always
// called fire-and-forget, after the coordinator's lock has already been
// released — never from inside a critical section.
type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// writeJSON is a helper that writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
