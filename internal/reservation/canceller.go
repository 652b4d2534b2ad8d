package reservation

import "github.com/Amanastel/TicketFlow/internal/model"

// cancel releases every berth/queue slot held by ticketID and then runs the
// promotion cascade — RAC→Confirmed for each confirmed berth freed, then
// Waiting→RAC for each side-lower slot freed — strictly in queue order
// (SPEC_FULL.md §4.4). It never partially applies: ticket lookup and status
// checks happen before any mutation.
//
// Grounded on the teacher's CancelRide state-transition switch in
// repository/booking_repository.go (release request → decrement trip load
// → cascade-free the cab if the trip is now empty), generalized from a
// single-step cascade to the two-stage RAC/Waiting cascade this spec
// requires.
func cancel(s *state, ticketID int64) ([]int64, error) {
	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	if ticket.Status == model.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	confirmedFreed := 0
	for _, p := range ticket.Passengers {
		switch {
		case p.Berth != nil && p.RACPosition != nil:
			s.inv.release(*p.Berth, p.ID)
			s.queues.removeRAC(p.ID)
			p.Berth = nil
		case p.Berth != nil:
			s.inv.release(*p.Berth, p.ID)
			confirmedFreed++
			p.Berth = nil
		case p.WaitingPosition != nil:
			s.queues.removeWaiting(p.ID)
		}
	}
	ticket.Status = model.StatusCancelled
	s.syncPositions()

	affected := []int64{ticketID}
	affected = append(affected, promoteRACToConfirmed(s, confirmedFreed)...)
	affected = append(affected, promoteWaitingToRAC(s)...)

	s.syncPositions()
	return dedupeIDs(affected), nil
}

// promoteRACToConfirmed pops up to n passengers off the head of the RAC
// queue and seats each on a confirmed berth, freeing one side-lower slot
// per promotion. Order is strict FIFO (P7): priority class plays no part
// here, only in the original Confirmed descent. Returns the ids of tickets
// whose status may have changed.
func promoteRACToConfirmed(s *state, n int) []int64 {
	var touched []int64
	for n > 0 {
		entry, ok := s.queues.popRACHead()
		if !ok {
			return touched
		}
		p := s.findPassenger(entry.ticketID, entry.passengerID)
		if p == nil {
			panic(fmtInternal("promote RAC: passenger %d not found for ticket %d", entry.passengerID, entry.ticketID))
		}

		s.inv.release(*p.Berth, p.ID)

		id := s.inv.takeFirstFree(model.Lower, p)
		if id == nil {
			id = s.inv.takeFirstFree(model.Middle, p)
		}
		if id == nil {
			id = s.inv.takeFirstFree(model.Upper, p)
		}
		if id == nil {
			panic(fmtInternal("promote RAC: no confirmed berth available for passenger %d despite a freed slot", p.ID))
		}
		p.Berth = id
		p.RACPosition = nil
		n--

		recomputeTicketStatus(s.tickets[entry.ticketID])
		touched = append(touched, entry.ticketID)
	}
	return touched
}

// promoteWaitingToRAC pops passengers off the head of the Waiting queue
// while side-lower slots remain free, assigning each a side-lower slot and
// the next RAC tail position. Returns the ids of tickets whose status may
// have changed.
func promoteWaitingToRAC(s *state) []int64 {
	var touched []int64
	for s.inv.sideLowerFreeSlots() > 0 {
		entry, ok := s.queues.popWaitingHead()
		if !ok {
			return touched
		}
		p := s.findPassenger(entry.ticketID, entry.passengerID)
		if p == nil {
			panic(fmtInternal("promote waiting: passenger %d not found for ticket %d", entry.passengerID, entry.ticketID))
		}

		id := s.inv.takeSideLowerSlot(p)
		if id == nil {
			panic(fmtInternal("promote waiting: no side-lower slot available despite free-slot count"))
		}
		p.Berth = id
		pos := s.queues.pushRAC(entry)
		p.RACPosition = &pos
		p.WaitingPosition = nil

		recomputeTicketStatus(s.tickets[entry.ticketID])
		touched = append(touched, entry.ticketID)
	}
	return touched
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
