package reservation

// queueEntry is one (ticket_id, passenger_id) tuple held in the RAC or
// Waiting queue, at a contiguous 1-based position.
type queueEntry struct {
	ticketID    int64
	passengerID int64
}

// queueManager maintains the RAC queue (capacity 18) and Waiting queue
// (capacity 10) as contiguous 1..K position lists. Positions are always
// renumbered after any removal so that I3 (no gaps) holds at every
// observable boundary.
//
// Grounded on the teacher's ordered, renumbered list handling in
// booking_repository.go / ride_repository.go (there expressed as SQL
// ORDER BY + position columns; here as a Go slice, since there is no table
// to order against).
type queueManager struct {
	rac      []queueEntry
	waiting  []queueEntry
	racCap   int
	waitCap  int
}

func newQueueManager() *queueManager {
	return &queueManager{racCap: 18, waitCap: 10}
}

func (q *queueManager) racLen() int     { return len(q.rac) }
func (q *queueManager) waitingLen() int { return len(q.waiting) }

func (q *queueManager) racRemaining() int     { return q.racCap - len(q.rac) }
func (q *queueManager) waitingRemaining() int { return q.waitCap - len(q.waiting) }

// pushRAC appends an entry to the tail of the RAC queue and returns its
// 1-based position.
func (q *queueManager) pushRAC(e queueEntry) int {
	q.rac = append(q.rac, e)
	return len(q.rac)
}

// pushWaiting appends an entry to the tail of the Waiting queue and returns
// its 1-based position.
func (q *queueManager) pushWaiting(e queueEntry) int {
	q.waiting = append(q.waiting, e)
	return len(q.waiting)
}

// popRACHead removes and returns the RAC entry at position 1, or false if
// the queue is empty.
func (q *queueManager) popRACHead() (queueEntry, bool) {
	if len(q.rac) == 0 {
		return queueEntry{}, false
	}
	head := q.rac[0]
	q.rac = q.rac[1:]
	return head, true
}

// popWaitingHead removes and returns the Waiting entry at position 1, or
// false if the queue is empty.
func (q *queueManager) popWaitingHead() (queueEntry, bool) {
	if len(q.waiting) == 0 {
		return queueEntry{}, false
	}
	head := q.waiting[0]
	q.waiting = q.waiting[1:]
	return head, true
}

// removeRAC removes the first entry belonging to passengerID from the RAC
// queue, leaving the remaining entries in order (renumbering happens when
// the caller re-reads positions from the slice index, so no separate
// compaction step is needed beyond the slice removal itself).
func (q *queueManager) removeRAC(passengerID int64) (removed bool) {
	for i, e := range q.rac {
		if e.passengerID == passengerID {
			q.rac = append(q.rac[:i], q.rac[i+1:]...)
			return true
		}
	}
	return false
}

// removeWaiting removes the entry belonging to passengerID from the
// Waiting queue.
func (q *queueManager) removeWaiting(passengerID int64) (removed bool) {
	for i, e := range q.waiting {
		if e.passengerID == passengerID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return true
		}
	}
	return false
}

// racPositionOf returns the 1-based position of passengerID in the RAC
// queue, or 0 if absent.
func (q *queueManager) racPositionOf(passengerID int64) int {
	for i, e := range q.rac {
		if e.passengerID == passengerID {
			return i + 1
		}
	}
	return 0
}

// waitingPositionOf returns the 1-based position of passengerID in the
// Waiting queue, or 0 if absent.
func (q *queueManager) waitingPositionOf(passengerID int64) int {
	for i, e := range q.waiting {
		if e.passengerID == passengerID {
			return i + 1
		}
	}
	return 0
}
