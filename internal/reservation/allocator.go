package reservation

import "github.com/Amanastel/TicketFlow/internal/model"

// PassengerInput is the validated-at-the-boundary shape of one passenger in
// a booking request, before it has been assigned an id or any berth/queue
// coordinates.
type PassengerInput struct {
	Name             string
	Age              int
	Gender           model.Gender
	IsParent         bool
	ParentIdentifier string
}

// BookingInput is one booking request: the ordered group of passengers to
// seat together on a single ticket.
type BookingInput struct {
	Passengers []PassengerInput
}

// validateBooking checks the group for the validation failures enumerated
// in SPEC_FULL.md §4.3/§7, without touching any shared state.
func validateBooking(in BookingInput) error {
	if len(in.Passengers) == 0 {
		return validationErrf("booking group must contain at least one passenger")
	}

	nonChild := 0
	for i, p := range in.Passengers {
		if p.Name == "" {
			return validationErrf("passenger %d: name is required", i)
		}
		if p.Age < 0 {
			return validationErrf("passenger %d: age must be non-negative", i)
		}
		switch p.Gender {
		case model.Male, model.Female, model.Other:
		default:
			return validationErrf("passenger %d: invalid gender %q", i, p.Gender)
		}
		if p.Age < model.ChildAgeThreshold {
			if p.ParentIdentifier == "" || !hasMatchingParent(in.Passengers, p.ParentIdentifier, i) {
				return validationErrf("passenger %d: child has no matching parent_identifier in this booking", i)
			}
		} else {
			nonChild++
		}
	}

	if nonChild < 1 || nonChild > model.MaxGroupSize {
		return validationErrf("booking group must have between 1 and %d non-child passengers, got %d", model.MaxGroupSize, nonChild)
	}
	return nil
}

// hasMatchingParent reports whether some other passenger in the request
// shares parentID and is not itself a child.
func hasMatchingParent(all []PassengerInput, parentID string, childIndex int) bool {
	for i, p := range all {
		if i == childIndex {
			continue
		}
		if p.Age >= model.ChildAgeThreshold && p.ParentIdentifier == parentID {
			return true
		}
	}
	return false
}

// book runs the Confirmed → RAC → Waiting fallback chain of SPEC_FULL.md
// §4.3 against the shared state. Every path is attempted atomically: either
// the whole group is seated on that path, or nothing changes and the next
// path (or ErrNoAvailability) is tried.
//
// Grounded on the teacher's staged "try the preferred path, fall back on
// failure" shape in service/booking.go BookRide (match → create-new-trip
// fallback), and on its "all changes inside one transaction, deferred
// rollback" atomicity discipline in repository/booking_repository.go,
// translated here from SQL transaction semantics to an in-memory
// check-before-mutate discipline — each path first verifies it has enough
// capacity for the whole group before mutating anything, so no rollback
// step is ever needed.
func book(s *state, in BookingInput) (*model.Ticket, error) {
	if err := validateBooking(in); err != nil {
		return nil, err
	}

	group := make([]*model.Passenger, len(in.Passengers))
	for i, pi := range in.Passengers {
		group[i] = &model.Passenger{
			Name:             pi.Name,
			Age:              pi.Age,
			Gender:           pi.Gender,
			IsParent:         pi.IsParent,
			ParentIdentifier: pi.ParentIdentifier,
		}
	}

	var nonChild []*model.Passenger
	for _, p := range group {
		if !p.IsChild() {
			nonChild = append(nonChild, p)
		}
	}
	ordered := priorityOrder(nonChild, group)
	n := len(ordered)

	var status model.TicketStatus
	switch {
	case s.inv.countFree(model.Lower)+s.inv.countFree(model.Middle)+s.inv.countFree(model.Upper) >= n:
		allocateConfirmed(s.inv, ordered, group)
		status = model.StatusConfirmed

	case s.inv.sideLowerFreeSlots() >= n:
		for _, p := range ordered {
			id := s.inv.takeSideLowerSlot(p)
			if id == nil {
				panic(fmtInternal("RAC path: side-lower slot vanished under lock"))
			}
			p.Berth = id
		}
		status = model.StatusRAC

	case s.queues.waitingRemaining() >= n:
		status = model.StatusWaiting

	default:
		return nil, ErrNoAvailability
	}

	ticketID := s.newTicketID()
	bookingTime := s.nextMonotonicTime()
	for _, p := range group {
		p.ID = s.newPassengerID()
		p.TicketID = ticketID
	}

	ticket := &model.Ticket{
		ID:          ticketID,
		Status:      status,
		BookingTime: bookingTime,
		Passengers:  group,
	}
	s.tickets[ticketID] = ticket

	switch status {
	case model.StatusRAC:
		for _, p := range ordered {
			s.queues.pushRAC(queueEntry{ticketID: ticketID, passengerID: p.ID})
		}
	case model.StatusWaiting:
		for _, p := range ordered {
			s.queues.pushWaiting(queueEntry{ticketID: ticketID, passengerID: p.ID})
		}
	}
	s.syncPositions()

	return ticket, nil
}

// allocateConfirmed seats every passenger in priority order onto a regular
// berth: Lower first if free, else Middle, else Upper, lowest index first.
// Because ordered is priority-sorted, priority passengers always reach the
// Lower pool before normal passengers do.
func allocateConfirmed(inv *inventory, ordered, group []*model.Passenger) {
	for _, p := range ordered {
		id := inv.takeFirstFree(model.Lower, p)
		if id == nil {
			id = inv.takeFirstFree(model.Middle, p)
		}
		if id == nil {
			id = inv.takeFirstFree(model.Upper, p)
		}
		if id == nil {
			panic(fmtInternal("confirmed path: berth vanished under lock for passenger %q", p.Name))
		}
		p.Berth = id
	}
}
