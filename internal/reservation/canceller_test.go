package reservation

import (
	"testing"

	"github.com/Amanastel/TicketFlow/internal/model"
)

func TestCancel_UnknownTicket(t *testing.T) {
	s := newState()
	if _, err := cancel(s, 999); err != ErrTicketNotFound {
		t.Errorf("cancel(unknown) error = %v, want ErrTicketNotFound", err)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	s := newState()
	ticket, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("A")}})
	if _, err := cancel(s, ticket.ID); err != nil {
		t.Fatalf("first cancel() error = %v", err)
	}
	if _, err := cancel(s, ticket.ID); err != ErrAlreadyCancelled {
		t.Errorf("second cancel() error = %v, want ErrAlreadyCancelled", err)
	}
}

func TestCancel_FreesConfirmedBerth(t *testing.T) {
	s := newState()
	ticket, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("A")}})
	before := s.inv.countFree(model.Lower)
	if _, err := cancel(s, ticket.ID); err != nil {
		t.Fatalf("cancel() error = %v", err)
	}
	if got := s.inv.countFree(model.Lower); got != before+1 {
		t.Errorf("countFree(Lower) after cancel = %d, want %d", got, before+1)
	}
}

// TestCancel_PromotesRACToConfirmed verifies that when a confirmed
// passenger cancels, the longest-waiting RAC passenger is promoted.
func TestCancel_PromotesRACToConfirmed(t *testing.T) {
	s := newState()
	fillConfirmed(t, s)

	rac1, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("RAC-1")}})
	rac2, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("RAC-2")}})
	if rac1.Status != model.StatusRAC || rac2.Status != model.StatusRAC {
		t.Fatalf("setup: expected two RAC tickets, got %v, %v", rac1.Status, rac2.Status)
	}

	// Cancel one confirmed ticket (ticket id 1, the first booked).
	affected, err := cancel(s, 1)
	if err != nil {
		t.Fatalf("cancel() error = %v", err)
	}
	if len(affected) != 2 {
		t.Fatalf("affected = %v, want 2 entries (cancelled + promoted)", affected)
	}

	promoted := s.tickets[rac1.ID]
	if promoted.Status != model.StatusConfirmed {
		t.Errorf("rac1 status after promotion = %v, want Confirmed (FIFO head)", promoted.Status)
	}
	stillRAC := s.tickets[rac2.ID]
	if stillRAC.Status != model.StatusRAC {
		t.Errorf("rac2 status = %v, want still RAC", stillRAC.Status)
	}
}

// TestCancel_PromotesWaitingToRAC verifies that cancelling an RAC ticket
// frees a side-lower slot which is backfilled from the Waiting queue.
func TestCancel_PromotesWaitingToRAC(t *testing.T) {
	s := newState()
	fillConfirmed(t, s)
	fillRAC(t, s)

	waiting1, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("W-1")}})
	if waiting1.Status != model.StatusWaiting {
		t.Fatalf("setup: expected Waiting ticket, got %v", waiting1.Status)
	}

	// Cancel the very first RAC ticket booked (ticket id = LowerBerths+MiddleBerths+UpperBerths+1).
	firstRACTicketID := int64(model.LowerBerths + model.MiddleBerths + model.UpperBerths + 1)
	if _, err := cancel(s, firstRACTicketID); err != nil {
		t.Fatalf("cancel() error = %v", err)
	}

	promoted := s.tickets[waiting1.ID]
	if promoted.Status != model.StatusRAC {
		t.Errorf("waiting1 status after promotion = %v, want RAC", promoted.Status)
	}
	if promoted.Passengers[0].RACPosition == nil {
		t.Errorf("promoted passenger has no RACPosition")
	}
}

func TestCancel_QueuePositionsStayContiguousAfterRemoval(t *testing.T) {
	s := newState()
	fillConfirmed(t, s)

	a, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("A")}})
	b, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("B")}})
	c, _ := book(s, BookingInput{Passengers: []PassengerInput{adult("C")}})
	_ = a

	if _, err := cancel(s, b.ID); err != nil {
		t.Fatalf("cancel() error = %v", err)
	}

	cTicket := s.tickets[c.ID]
	if got := *cTicket.Passengers[0].RACPosition; got != 2 {
		t.Errorf("RACPosition of c after b cancelled = %d, want 2 (contiguous, no gap)", got)
	}
}
