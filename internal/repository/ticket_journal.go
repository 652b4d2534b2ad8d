// Package repository provides durable and cached access for the reservation
// system's external collaborators — the ticket journal and the availability
// cache — kept separate from the in-memory allocation core itself.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amanastel/TicketFlow/internal/model"
	"github.com/Amanastel/TicketFlow/internal/reservation"
)

// DefaultCommitTimeout bounds a single journal append so the Coordinator
// never blocks its critical section on a slow or wedged database.
const DefaultCommitTimeout = 5 * time.Second

// TicketJournal is the durable, append-only Postgres mirror of every ticket
// mutation the Coordinator commits. It is written inside the same critical
// section as the in-memory mutation (reservation.Coordinator.appendJournal),
// mirroring the teacher's "any durable write happens inside the same
// transaction as the state change" discipline — translated here from a SQL
// transaction to "call Append before releasing the mutex."
//
// On restart, Replay rebuilds ticket history in sequence order; it does not
// reconstruct live berth occupancy or queue order, which are Non-goal scope
// for persistence beyond ticket status.
type TicketJournal struct {
	pool *pgxpool.Pool
}

// NewTicketJournal creates a journal backed by pool. The caller is
// responsible for ensuring the ticket_events table exists (see schema.sql).
func NewTicketJournal(pool *pgxpool.Pool) *TicketJournal {
	return &TicketJournal{pool: pool}
}

// Append writes one ticket mutation event. Failures are the caller's to log,
// not to treat as a rollback signal — the journal is an audit/replay aid,
// not part of the core's own correctness.
func (j *TicketJournal) Append(ctx context.Context, event reservation.TicketEvent) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultCommitTimeout)
	defer cancel()

	payload, err := json.Marshal(event.Snapshot)
	if err != nil {
		return fmt.Errorf("journal: marshal snapshot for ticket %d: %w", event.TicketID, err)
	}

	_, err = j.pool.Exec(ctx, `
		INSERT INTO ticket_events (ticket_id, sequence, status, booking_time, payload_json)
		VALUES ($1, $2, $3, $4, $5)
	`, event.TicketID, event.Sequence, event.Snapshot.Status, event.Snapshot.BookingTime, payload)
	if err != nil {
		return fmt.Errorf("journal: insert event for ticket %d: %w", event.TicketID, err)
	}
	return nil
}

// journalRow is the decoded shape of one ticket_events row, in sequence
// order, used to rebuild ticket history on replay.
type journalRow struct {
	TicketID int64
	Sequence int64
	Snapshot *model.Ticket
}

// Replay reads every event in sequence order and returns the latest snapshot
// recorded for each ticket id — the state Coordinator.Ticket(id) would have
// reported just before the process stopped. It does not attempt to rebuild
// live berth/queue occupancy: new bookings after a restart start from an
// empty coach, per §6's resolution of "implementation-defined persisted
// state" (ticket history survives; live allocation state does not).
func (j *TicketJournal) Replay(ctx context.Context) (map[int64]*model.Ticket, error) {
	rows, err := j.pool.Query(ctx, `
		SELECT ticket_id, sequence, payload_json
		FROM ticket_events
		ORDER BY sequence ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("journal: replay query: %w", err)
	}
	defer rows.Close()

	latest := make(map[int64]*model.Ticket)
	for rows.Next() {
		var r journalRow
		var payload []byte
		if err := rows.Scan(&r.TicketID, &r.Sequence, &payload); err != nil {
			return nil, fmt.Errorf("journal: replay scan: %w", err)
		}
		var t model.Ticket
		if err := json.Unmarshal(payload, &t); err != nil {
			return nil, fmt.Errorf("journal: replay unmarshal ticket %d: %w", r.TicketID, err)
		}
		latest[r.TicketID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: replay iterate: %w", err)
	}
	return latest, nil
}
