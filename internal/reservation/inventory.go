package reservation

import "github.com/Amanastel/TicketFlow/internal/model"

// inventory is the fixed pool of berths for one coach, partitioned by type.
// It never allocates on its own initiative — callers (the allocator, the
// canceller) decide which passenger goes where; inventory only answers
// availability questions and performs the mechanical take/release.
//
// Grounded on the teacher's repository-layer query contracts in
// internal/repository/ride_repository.go (deterministic, index-ordered
// lookups), translated from SQL row scans to in-memory slice scans.
type inventory struct {
	berths map[model.BerthType][]*model.Berth
}

func newInventory() *inventory {
	inv := &inventory{berths: make(map[model.BerthType][]*model.Berth)}
	inv.berths[model.Lower] = makeBerths(model.Lower, model.LowerBerths)
	inv.berths[model.Middle] = makeBerths(model.Middle, model.MiddleBerths)
	inv.berths[model.Upper] = makeBerths(model.Upper, model.UpperBerths)
	inv.berths[model.SideLower] = makeBerths(model.SideLower, model.SideLowerBerths)
	return inv
}

func makeBerths(t model.BerthType, n int) []*model.Berth {
	berths := make([]*model.Berth, n)
	for i := 0; i < n; i++ {
		berths[i] = &model.Berth{ID: model.BerthID{Type: t, Index: i + 1}}
	}
	return berths
}

// countFree returns the number of berths of the given type with spare capacity.
func (inv *inventory) countFree(t model.BerthType) int {
	n := 0
	for _, b := range inv.berths[t] {
		if b.Free() {
			n++
		}
	}
	return n
}

// takeFirstFree assigns passenger p to the lowest-index free berth of type t,
// or returns nil if none is free.
func (inv *inventory) takeFirstFree(t model.BerthType, p *model.Passenger) *model.BerthID {
	for _, b := range inv.berths[t] {
		if b.Free() {
			b.Occupants = append(b.Occupants, p)
			id := b.ID
			return &id
		}
	}
	return nil
}

// release removes passenger p from the berth it occupies. It is a fatal
// programming error for p not to be present on that berth — the caller
// always releases a berth it recorded on the passenger itself.
func (inv *inventory) release(id model.BerthID, passengerID int64) {
	for _, b := range inv.berths[id.Type] {
		if b.ID != id {
			continue
		}
		for i, occ := range b.Occupants {
			if occ.ID == passengerID {
				b.Occupants = append(b.Occupants[:i], b.Occupants[i+1:]...)
				return
			}
		}
		panic(fmtInternal("release: passenger %d not found on berth %v", passengerID, id))
	}
	panic(fmtInternal("release: unknown berth %v", id))
}

// sideLowerFreeSlots sums the spare occupant capacity across all side-lower berths.
func (inv *inventory) sideLowerFreeSlots() int {
	n := 0
	for _, b := range inv.berths[model.SideLower] {
		n += b.Capacity() - len(b.Occupants)
	}
	return n
}

// takeSideLowerSlot assigns passenger p to a side-lower slot, preferring
// half-full berths over empty ones so that releasing one occupant always
// frees exactly one RAC slot (see SPEC_FULL.md §4.1 / DESIGN.md open question).
func (inv *inventory) takeSideLowerSlot(p *model.Passenger) *model.BerthID {
	// Pass 1: berths already holding exactly one occupant.
	for _, b := range inv.berths[model.SideLower] {
		if len(b.Occupants) == 1 {
			b.Occupants = append(b.Occupants, p)
			id := b.ID
			return &id
		}
	}
	// Pass 2: fully empty berths, lowest index first.
	for _, b := range inv.berths[model.SideLower] {
		if len(b.Occupants) == 0 {
			b.Occupants = append(b.Occupants, p)
			id := b.ID
			return &id
		}
	}
	return nil
}

func fmtInternal(format string, args ...interface{}) string {
	return newError(CodeInternal, format, args...).Error()
}
