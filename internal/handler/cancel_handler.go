package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Amanastel/TicketFlow/internal/reservation"
)

// CancelHandler handles ticket cancellation HTTP requests.
type CancelHandler struct {
	coordinator *reservation.Coordinator
	cache       cacheInvalidator
}

// NewCancelHandler creates a new cancel handler. cache may be nil, in which
// case no invalidation is attempted (suitable for tests).
func NewCancelHandler(coordinator *reservation.Coordinator, cache cacheInvalidator) *CancelHandler {
	return &CancelHandler{coordinator: coordinator, cache: cache}
}

// Cancel handles POST /api/v1/cancel/{ticket_id}
//
// Cancels a ticket and runs the RAC→Confirmed / Waiting→RAC promotion
// cascade. Only a known, not-yet-cancelled ticket can be cancelled.
//
// Response codes:
//
//	200 — cancellation successful
//	400 — invalid ticket_id
//	404 — ticket not found
//	409 — ticket already cancelled
func (h *CancelHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticketID, err := strconv.ParseInt(vars["ticket_id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "ticket_id must be an integer")
		return
	}

	if err := h.coordinator.Cancel(r.Context(), ticketID); err != nil {
		writeReservationError(w, err)
		return
	}
	if h.cache != nil {
		h.cache.Invalidate(r.Context())
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "ticket cancelled",
	})
}
