package handler

import (
	"context"
	"net/http"

	"github.com/Amanastel/TicketFlow/internal/reservation"
)

// availabilityCache is the subset of repository.AvailabilityCache the status
// handler needs for the Available cache-aside read path: try the cache,
// fall back to the coordinator on a miss, then repopulate.
type availabilityCache interface {
	Get(ctx context.Context) (reservation.AvailableSnapshot, bool)
	Set(ctx context.Context, snap reservation.AvailableSnapshot)
}

// StatusHandler handles the read-only Available and Booked endpoints.
type StatusHandler struct {
	coordinator *reservation.Coordinator
	cache       availabilityCache
}

// NewStatusHandler creates a new status handler. cache may be nil, in which
// case Available always recomputes from the coordinator (suitable for
// tests).
func NewStatusHandler(coordinator *reservation.Coordinator, cache availabilityCache) *StatusHandler {
	return &StatusHandler{coordinator: coordinator, cache: cache}
}

type availableBerths struct {
	Lower     int `json:"lower"`
	Middle    int `json:"middle"`
	Upper     int `json:"upper"`
	SideLower int `json:"side_lower"`
}

type availableResponse struct {
	ConfirmedAvailable   int             `json:"confirmed_available"`
	RACAvailable         int             `json:"rac_available"`
	WaitingListAvailable int             `json:"waiting_list_available"`
	AvailableBerths      availableBerths `json:"available_berths"`
}

// Available handles GET /api/v1/available
func (h *StatusHandler) Available(w http.ResponseWriter, r *http.Request) {
	var snap reservation.AvailableSnapshot
	var hit bool
	if h.cache != nil {
		snap, hit = h.cache.Get(r.Context())
	}
	if !hit {
		snap = h.coordinator.Available()
		if h.cache != nil {
			h.cache.Set(r.Context(), snap)
		}
	}
	writeJSON(w, http.StatusOK, availableResponse{
		ConfirmedAvailable:   snap.ConfirmedAvailable,
		RACAvailable:         snap.RACAvailable,
		WaitingListAvailable: snap.WaitingListAvailable,
		AvailableBerths: availableBerths{
			Lower:     snap.Lower,
			Middle:    snap.Middle,
			Upper:     snap.Upper,
			SideLower: snap.SideLower,
		},
	})
}

type bookedSummary struct {
	Confirmed int `json:"confirmed"`
	RAC       int `json:"rac"`
	Waiting   int `json:"waiting"`
}

type bookedResponse struct {
	Confirmed []ticketView  `json:"confirmed"`
	RAC       []ticketView  `json:"rac"`
	Waiting   []ticketView  `json:"waiting"`
	Summary   bookedSummary `json:"summary"`
}

// Booked handles GET /api/v1/booked
func (h *StatusHandler) Booked(w http.ResponseWriter, r *http.Request) {
	confirmed, rac, waiting := h.coordinator.Booked()
	writeJSON(w, http.StatusOK, bookedResponse{
		Confirmed: newTicketViews(confirmed),
		RAC:       newTicketViews(rac),
		Waiting:   newTicketViews(waiting),
		Summary: bookedSummary{
			Confirmed: len(confirmed),
			RAC:       len(rac),
			Waiting:   len(waiting),
		},
	})
}
