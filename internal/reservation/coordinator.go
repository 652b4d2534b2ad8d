package reservation

import (
	"context"
	"log"
	"sync"

	"github.com/Amanastel/TicketFlow/internal/model"
)

// Journal is the durable append-only mirror the Coordinator writes every
// committed mutation to. It is called from inside the Coordinator's
// critical section (SPEC_FULL.md §3.1), with the in-memory reservation
// state as the sole authority for allocation decisions — a Journal write
// failure is logged, not rolled back, since the journal is an audit/replay
// aid (§3.1: it is not the source of truth for live allocation), not part
// of the core's own correctness.
type Journal interface {
	Append(ctx context.Context, event TicketEvent) error
}

// TicketEvent is one durable record of a ticket mutation: a snapshot of the
// ticket after the mutation, ordered by Sequence. Replaying the events
// rebuilds ticket history only, not berth occupancy or queue order.
type TicketEvent struct {
	TicketID int64
	Sequence int64
	Snapshot *model.Ticket
}

// Coordinator serializes every booking and cancellation over one
// process-wide reservation state, and lets readers (Available/Booked)
// observe a consistent snapshot via a reader lock that excludes writers.
//
// Grounded on the teacher's documented pessimistic-locking discipline in
// internal/repository/booking_repository.go (there: Postgres row lock via
// SELECT ... FOR UPDATE; here: a single in-memory sync.RWMutex, per
// SPEC_FULL.md §4.5/§5's single-global-lock scheduling model).
type Coordinator struct {
	mu       sync.RWMutex
	state    *state
	journal  Journal
	eventSeq int64
}

// NewCoordinator creates a Coordinator with an empty coach. journal may be
// nil, in which case no durable mirror is kept (suitable for tests).
func NewCoordinator(journal Journal) *Coordinator {
	return &Coordinator{state: newState(), journal: journal}
}

// SeedHistory preloads replayed ticket snapshots into the ticket table so
// that Ticket(id) resolves for tickets booked before a restart. It does not
// touch the berth inventory or the RAC/Waiting queues — a restarted process
// always starts with an empty coach (§6); seeded tickets are historical
// records only; passengers on a seeded ticket may still show a Berth or
// queue position in the response since that is what last happened to them,
// but no live berth or queue slot is actually held on their behalf. Call
// this once, before serving any traffic.
func (c *Coordinator) SeedHistory(tickets map[int64]*model.Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range tickets {
		c.state.tickets[id] = t
		if id > c.state.nextTicketID {
			c.state.nextTicketID = id
		}
		for _, p := range t.Passengers {
			if p.ID > c.state.nextPassengerID {
				c.state.nextPassengerID = p.ID
			}
		}
	}
}

// Book attempts to seat a group of passengers, following the
// Confirmed → RAC → Waiting fallback chain of SPEC_FULL.md §4.3.
func (c *Coordinator) Book(ctx context.Context, in BookingInput) (*model.Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ticket, err := book(c.state, in)
	if err != nil {
		return nil, err
	}
	c.appendJournal(ctx, ticket)
	return cloneTicket(ticket), nil
}

// Cancel releases the berths/queue slots held by ticketID and runs the
// RAC→Confirmed / Waiting→RAC promotion cascade of SPEC_FULL.md §4.4.
func (c *Coordinator) Cancel(ctx context.Context, ticketID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	affected, err := cancel(c.state, ticketID)
	if err != nil {
		return err
	}
	for _, id := range affected {
		if t, ok := c.state.tickets[id]; ok {
			c.appendJournal(ctx, t)
		}
	}
	return nil
}

func (c *Coordinator) appendJournal(ctx context.Context, ticket *model.Ticket) {
	if c.journal == nil {
		return
	}
	c.eventSeq++
	event := TicketEvent{TicketID: ticket.ID, Sequence: c.eventSeq, Snapshot: cloneTicket(ticket)}
	if err := c.journal.Append(ctx, event); err != nil {
		log.Printf("[reservation] WARNING: journal append failed for ticket %d: %v", ticket.ID, err)
	}
}

// AvailableSnapshot is the wire-shape-neutral view of current capacity.
type AvailableSnapshot struct {
	ConfirmedAvailable   int
	RACAvailable         int
	WaitingListAvailable int
	Lower                int
	Middle               int
	Upper                int
	SideLower            int
}

// Available reports current capacity across all three paths, under the
// reader lock so it never observes a half-applied mutation.
func (c *Coordinator) Available() AvailableSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lower := c.state.inv.countFree(model.Lower)
	middle := c.state.inv.countFree(model.Middle)
	upper := c.state.inv.countFree(model.Upper)
	sideLower := c.state.inv.sideLowerFreeSlots()

	return AvailableSnapshot{
		ConfirmedAvailable:   lower + middle + upper,
		RACAvailable:         sideLower,
		WaitingListAvailable: c.state.queues.waitingRemaining(),
		Lower:                lower,
		Middle:               middle,
		Upper:                upper,
		SideLower:            sideLower,
	}
}

// Booked returns every non-cancelled ticket, partitioned by status.
func (c *Coordinator) Booked() (confirmed, rac, waiting []*model.Ticket) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, t := range c.state.tickets {
		if t.Status == model.StatusCancelled {
			continue
		}
		clone := cloneTicket(t)
		switch t.Status {
		case model.StatusConfirmed:
			confirmed = append(confirmed, clone)
		case model.StatusRAC:
			rac = append(rac, clone)
		case model.StatusWaiting:
			waiting = append(waiting, clone)
		}
	}
	return confirmed, rac, waiting
}

// Ticket returns a snapshot of one ticket by id, for idempotent lookups
// (including already-cancelled tickets, per the Lifecycle rule that
// cancelled records are retained).
func (c *Coordinator) Ticket(ticketID int64) (*model.Ticket, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.state.tickets[ticketID]
	if !ok {
		return nil, false
	}
	return cloneTicket(t), true
}

// cloneTicket returns a deep copy so callers can never mutate engine state
// through a returned pointer.
func cloneTicket(t *model.Ticket) *model.Ticket {
	clone := &model.Ticket{ID: t.ID, Status: t.Status, BookingTime: t.BookingTime}
	clone.Passengers = make([]*model.Passenger, len(t.Passengers))
	for i, p := range t.Passengers {
		pc := *p
		if p.Berth != nil {
			b := *p.Berth
			pc.Berth = &b
		}
		if p.RACPosition != nil {
			v := *p.RACPosition
			pc.RACPosition = &v
		}
		if p.WaitingPosition != nil {
			v := *p.WaitingPosition
			pc.WaitingPosition = &v
		}
		clone.Passengers[i] = &pc
	}
	return clone
}
