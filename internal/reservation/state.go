package reservation

import (
	"time"

	"github.com/Amanastel/TicketFlow/internal/model"
)

// state is the entire mutable reservation state for one coach: the berth
// inventory, the RAC/Waiting queues, and the ticket table. It carries no
// locking of its own — the Coordinator (coordinator.go) is the only thing
// allowed to touch it, always under its mutex (SPEC_FULL.md §4.5/§5).
type state struct {
	inv     *inventory
	queues  *queueManager
	tickets map[int64]*model.Ticket

	nextTicketID    int64
	nextPassengerID int64
	lastBookingTime time.Time
}

func newState() *state {
	return &state{
		inv:     newInventory(),
		queues:  newQueueManager(),
		tickets: make(map[int64]*model.Ticket),
	}
}

// nextMonotonicTime returns a timestamp strictly later than any previously
// returned one, assigned inside the coordinator's critical section. This is
// what gives the RAC/Waiting queues their deterministic FIFO ordering even
// when wall-clock resolution is coarser than the arrival rate
// (SPEC_FULL.md §5, "Ordering guarantees").
func (s *state) nextMonotonicTime() time.Time {
	now := time.Now()
	if !now.After(s.lastBookingTime) {
		now = s.lastBookingTime.Add(time.Nanosecond)
	}
	s.lastBookingTime = now
	return now
}

func (s *state) newTicketID() int64 {
	s.nextTicketID++
	return s.nextTicketID
}

func (s *state) newPassengerID() int64 {
	s.nextPassengerID++
	return s.nextPassengerID
}

// syncPositions rewrites RACPosition/WaitingPosition on every passenger
// currently referenced by the queues, and clears the field on passengers
// removed from their queue since the last sync. Called once after any
// queue mutation so that I3 (contiguous 1..K positions) is always visible
// on the passenger records the API returns, not just on the internal slice
// order.
func (s *state) syncPositions() {
	for _, t := range s.tickets {
		for _, p := range t.Passengers {
			p.RACPosition = nil
			p.WaitingPosition = nil
		}
	}
	for i, e := range s.queues.rac {
		pos := i + 1
		if p := s.findPassenger(e.ticketID, e.passengerID); p != nil {
			p.RACPosition = &pos
		}
	}
	for i, e := range s.queues.waiting {
		pos := i + 1
		if p := s.findPassenger(e.ticketID, e.passengerID); p != nil {
			p.WaitingPosition = &pos
		}
	}
}

func (s *state) findPassenger(ticketID, passengerID int64) *model.Passenger {
	t, ok := s.tickets[ticketID]
	if !ok {
		return nil
	}
	for _, p := range t.Passengers {
		if p.ID == passengerID {
			return p
		}
	}
	return nil
}

// recomputeTicketStatus applies the §3 rule: a ticket is Waiting if any
// passenger is Waiting; otherwise RAC if any passenger is RAC; otherwise
// Confirmed. Cancelled tickets are never touched by this (their status is
// set once, terminally, by the canceller).
func recomputeTicketStatus(t *model.Ticket) {
	if t.Status == model.StatusCancelled {
		return
	}
	hasWaiting, hasRAC := false, false
	for _, p := range t.Passengers {
		if p.IsChild() {
			continue
		}
		switch {
		case p.WaitingPosition != nil:
			hasWaiting = true
		case p.RACPosition != nil:
			hasRAC = true
		}
	}
	switch {
	case hasWaiting:
		t.Status = model.StatusWaiting
	case hasRAC:
		t.Status = model.StatusRAC
	default:
		t.Status = model.StatusConfirmed
	}
}
