package reservation

import "testing"

func TestQueueManager_PushRAC_ReturnsContiguousPositions(t *testing.T) {
	q := newQueueManager()
	for i := int64(1); i <= 3; i++ {
		if pos := q.pushRAC(queueEntry{ticketID: i, passengerID: i}); pos != int(i) {
			t.Errorf("pushRAC #%d position = %d, want %d", i, pos, i)
		}
	}
}

func TestQueueManager_RemoveRAC_RenumbersRemainingByIndex(t *testing.T) {
	q := newQueueManager()
	q.pushRAC(queueEntry{ticketID: 1, passengerID: 1})
	q.pushRAC(queueEntry{ticketID: 2, passengerID: 2})
	q.pushRAC(queueEntry{ticketID: 3, passengerID: 3})

	if !q.removeRAC(2) {
		t.Fatalf("removeRAC(2) = false, want true")
	}
	if got := q.racPositionOf(1); got != 1 {
		t.Errorf("racPositionOf(1) after removal = %d, want 1", got)
	}
	if got := q.racPositionOf(3); got != 2 {
		t.Errorf("racPositionOf(3) after removal = %d, want 2 (renumbered)", got)
	}
	if got := q.racPositionOf(2); got != 0 {
		t.Errorf("racPositionOf(2) after removal = %d, want 0 (absent)", got)
	}
}

func TestQueueManager_PopRACHead_FIFO(t *testing.T) {
	q := newQueueManager()
	q.pushRAC(queueEntry{ticketID: 1, passengerID: 10})
	q.pushRAC(queueEntry{ticketID: 2, passengerID: 20})

	head, ok := q.popRACHead()
	if !ok || head.passengerID != 10 {
		t.Fatalf("popRACHead = %+v, %v, want passenger 10", head, ok)
	}
	if got := q.racPositionOf(20); got != 1 {
		t.Errorf("racPositionOf(20) after pop = %d, want 1", got)
	}
}

func TestQueueManager_PopRACHead_EmptyReturnsFalse(t *testing.T) {
	q := newQueueManager()
	if _, ok := q.popRACHead(); ok {
		t.Errorf("popRACHead on empty queue returned ok=true")
	}
}

func TestQueueManager_Remaining_TracksCapacity(t *testing.T) {
	q := newQueueManager()
	if got := q.racRemaining(); got != 18 {
		t.Errorf("racRemaining() = %d, want 18", got)
	}
	if got := q.waitingRemaining(); got != 10 {
		t.Errorf("waitingRemaining() = %d, want 10", got)
	}
	q.pushWaiting(queueEntry{ticketID: 1, passengerID: 1})
	if got := q.waitingRemaining(); got != 9 {
		t.Errorf("waitingRemaining() after push = %d, want 9", got)
	}
}
