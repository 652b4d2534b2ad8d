package handler

import (
	"net/http"
	"time"

	"github.com/Amanastel/TicketFlow/internal/model"
	"github.com/Amanastel/TicketFlow/internal/reservation"
)

// passengerView is the wire shape of one passenger (SPEC_FULL.md §6): berth
// is a bare enum scalar — `lower`/`middle`/`upper`/`side_lower`/`null` — and
// always present, unlike rac_position/waiting_position which are omitted
// when the passenger holds neither. model.Passenger.Berth is a *BerthID
// struct ({type,index}) internally, so it cannot be marshalled directly
// onto the wire without leaking the index and, for an unassigned passenger,
// dropping the key entirely under omitempty; this view narrows it to just
// the type, the same way availableBerths/bookedSummary in status_handler.go
// wrap internal values for the wire instead of marshalling them as-is.
type passengerView struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Age             int              `json:"age"`
	Gender          model.Gender     `json:"gender"`
	Berth           *model.BerthType `json:"berth"`
	RACPosition     *int             `json:"rac_position,omitempty"`
	WaitingPosition *int             `json:"waiting_position,omitempty"`
}

func newPassengerView(p *model.Passenger) passengerView {
	v := passengerView{
		ID:              p.ID,
		Name:            p.Name,
		Age:             p.Age,
		Gender:          p.Gender,
		RACPosition:     p.RACPosition,
		WaitingPosition: p.WaitingPosition,
	}
	if p.Berth != nil {
		t := p.Berth.Type
		v.Berth = &t
	}
	return v
}

func newPassengerViews(passengers []*model.Passenger) []passengerView {
	views := make([]passengerView, len(passengers))
	for i, p := range passengers {
		views[i] = newPassengerView(p)
	}
	return views
}

// ticketView is the wire shape of one ticket, as returned by Booked
// (SPEC_FULL.md §6): same passenger narrowing as passengerView, applied to
// every passenger on the ticket.
type ticketView struct {
	ID          int64              `json:"id"`
	Status      model.TicketStatus `json:"status"`
	BookingTime time.Time          `json:"booking_time"`
	Passengers  []passengerView    `json:"passengers"`
}

func newTicketView(t *model.Ticket) ticketView {
	return ticketView{
		ID:          t.ID,
		Status:      t.Status,
		BookingTime: t.BookingTime,
		Passengers:  newPassengerViews(t.Passengers),
	}
}

func newTicketViews(tickets []*model.Ticket) []ticketView {
	views := make([]ticketView, len(tickets))
	for i, t := range tickets {
		views[i] = newTicketView(t)
	}
	return views
}

// bookResponse is the wire shape for a successful Book call (SPEC_FULL.md
// §6): the ticket id is top-level as ticket_id, distinct from the id field
// Booked/Cancel-affected tickets carry.
type bookResponse struct {
	TicketID   int64              `json:"ticket_id"`
	Status     model.TicketStatus `json:"status"`
	Passengers []passengerView    `json:"passengers"`
}

func newBookResponse(t *model.Ticket) bookResponse {
	return bookResponse{TicketID: t.ID, Status: t.Status, Passengers: newPassengerViews(t.Passengers)}
}

// writeReservationError maps a reservation.Error (or any other error) to the
// HTTP status table in SPEC_FULL.md §7, grounded on the teacher's
// errors.Is(...) switch in booking_handler.go/cancel_handler.go.
func writeReservationError(w http.ResponseWriter, err error) {
	rerr, ok := err.(*reservation.Error)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	switch rerr.Code {
	case reservation.CodeValidation:
		writeError(w, http.StatusBadRequest, "validation_error", rerr.Message)
	case reservation.CodeNoAvailability:
		writeError(w, http.StatusUnprocessableEntity, "no_availability", rerr.Message)
	case reservation.CodeNotFound:
		writeError(w, http.StatusNotFound, "not_found", rerr.Message)
	case reservation.CodeAlreadyCancelled:
		writeError(w, http.StatusConflict, "already_cancelled", rerr.Message)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", rerr.Message)
	}
}
