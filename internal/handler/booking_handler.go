package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Amanastel/TicketFlow/internal/model"
	"github.com/Amanastel/TicketFlow/internal/reservation"
)

// BookingHandler handles booking HTTP requests.
type BookingHandler struct {
	coordinator *reservation.Coordinator
	cache       cacheInvalidator
}

// NewBookingHandler creates a new booking handler. cache may be nil, in
// which case no invalidation is attempted (suitable for tests).
func NewBookingHandler(coordinator *reservation.Coordinator, cache cacheInvalidator) *BookingHandler {
	return &BookingHandler{coordinator: coordinator, cache: cache}
}

type passengerRequest struct {
	Name             string       `json:"name"`
	Age              int          `json:"age"`
	Gender           model.Gender `json:"gender"`
	IsParent         bool         `json:"is_parent"`
	ParentIdentifier string       `json:"parent_identifier"`
}

type bookRequest struct {
	Passengers []passengerRequest `json:"passengers"`
}

// Book handles POST /api/v1/book
//
// Attempts to seat a group of passengers, following the Confirmed → RAC →
// Waiting fallback chain. Returns the booked ticket, or a tagged error.
//
// Response codes:
//
//	200 — booking successful (returns ticket details)
//	400 — malformed JSON or validation failure
//	422 — no availability on any of the three paths
//	500 — unexpected error
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "request body must be valid JSON")
		return
	}

	in := reservation.BookingInput{Passengers: make([]reservation.PassengerInput, len(req.Passengers))}
	for i, p := range req.Passengers {
		in.Passengers[i] = reservation.PassengerInput{
			Name:             p.Name,
			Age:              p.Age,
			Gender:           p.Gender,
			IsParent:         p.IsParent,
			ParentIdentifier: p.ParentIdentifier,
		}
	}

	ticket, err := h.coordinator.Book(r.Context(), in)
	if err != nil {
		writeReservationError(w, err)
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}

	writeJSON(w, http.StatusOK, newBookResponse(ticket))
}
