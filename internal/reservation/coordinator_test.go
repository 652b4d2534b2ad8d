package reservation

import (
	"context"
	"sync"
	"testing"

	"github.com/Amanastel/TicketFlow/internal/model"
)

func TestCoordinator_BookAndCancel_RoundTrip(t *testing.T) {
	c := NewCoordinator(nil)
	ctx := context.Background()

	ticket, err := c.Book(ctx, BookingInput{Passengers: []PassengerInput{adult("A")}})
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if ticket.Status != model.StatusConfirmed {
		t.Fatalf("status = %v, want Confirmed", ticket.Status)
	}

	if err := c.Cancel(ctx, ticket.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	got, ok := c.Ticket(ticket.ID)
	if !ok {
		t.Fatal("Ticket() ok = false after cancel, want true (cancelled tickets are retained)")
	}
	if got.Status != model.StatusCancelled {
		t.Errorf("status after cancel = %v, want Cancelled", got.Status)
	}
}

func TestCoordinator_Ticket_ReturnsClone_NotInternalPointer(t *testing.T) {
	c := NewCoordinator(nil)
	ctx := context.Background()

	ticket, _ := c.Book(ctx, BookingInput{Passengers: []PassengerInput{adult("A")}})
	clone, _ := c.Ticket(ticket.ID)
	clone.Status = model.StatusCancelled // mutate the returned copy

	again, _ := c.Ticket(ticket.ID)
	if again.Status == model.StatusCancelled {
		t.Error("mutating a returned ticket affected internal state — Ticket() did not deep-copy")
	}
}

// TestCoordinator_ConcurrentBookings_NeverExceedsCapacity spawns many
// goroutines booking single-passenger groups against a coach with limited
// total capacity, and asserts that exactly as many succeed as there is
// capacity across Confirmed+RAC+Waiting, with no two passengers ever
// double-assigned the same berth.
func TestCoordinator_ConcurrentBookings_NeverExceedsCapacity(t *testing.T) {
	c := NewCoordinator(nil)
	ctx := context.Background()

	totalCapacity := model.LowerBerths + model.MiddleBerths + model.UpperBerths +
		model.RACCapacity + model.WaitingCapacity

	const attempts = 600 // intentionally > totalCapacity
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Book(ctx, BookingInput{Passengers: []PassengerInput{adult("A")}})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != totalCapacity {
		t.Errorf("succeeded = %d, want exactly %d (coach capacity)", succeeded, totalCapacity)
	}

	confirmed, rac, waiting := c.Booked()
	seenBerths := map[model.BerthID]bool{}
	for _, ticket := range confirmed {
		for _, p := range ticket.Passengers {
			if p.Berth == nil {
				t.Fatalf("confirmed passenger %d has no berth", p.ID)
			}
			if seenBerths[*p.Berth] {
				t.Fatalf("berth %+v double-assigned", *p.Berth)
			}
			seenBerths[*p.Berth] = true
		}
	}
	if got := len(confirmed) + len(rac) + len(waiting); got != totalCapacity {
		t.Errorf("len(confirmed)+len(rac)+len(waiting) = %d, want %d", got, totalCapacity)
	}
}

// TestCoordinator_ConcurrentBookAndCancel interleaves concurrent Book and
// Cancel calls and asserts the engine never panics and ends in a state
// where every ticket's status matches its passengers' recorded positions.
func TestCoordinator_ConcurrentBookAndCancel(t *testing.T) {
	c := NewCoordinator(nil)
	ctx := context.Background()

	var ticketIDs []int64
	for i := 0; i < 50; i++ {
		ticket, err := c.Book(ctx, BookingInput{Passengers: []PassengerInput{adult("A")}})
		if err != nil {
			t.Fatalf("setup Book() error = %v", err)
		}
		ticketIDs = append(ticketIDs, ticket.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ticketIDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = c.Cancel(ctx, id)
		}(id)
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Book(ctx, BookingInput{Passengers: []PassengerInput{adult("B")}})
		}()
	}
	wg.Wait()

	confirmed, rac, waiting := c.Booked()
	for _, bucket := range [][]*model.Ticket{confirmed, rac, waiting} {
		for _, ticket := range bucket {
			for _, p := range ticket.Passengers {
				switch ticket.Status {
				case model.StatusConfirmed:
					if p.Berth == nil || p.RACPosition != nil || p.WaitingPosition != nil {
						t.Errorf("ticket %d marked Confirmed but passenger state is %+v", ticket.ID, p)
					}
				case model.StatusRAC:
					if p.RACPosition == nil {
						t.Errorf("ticket %d marked RAC but passenger has no RACPosition", ticket.ID)
					}
				case model.StatusWaiting:
					if p.WaitingPosition == nil {
						t.Errorf("ticket %d marked Waiting but passenger has no WaitingPosition", ticket.ID)
					}
				}
			}
		}
	}
}
