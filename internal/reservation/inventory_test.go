package reservation

import (
	"testing"

	"github.com/Amanastel/TicketFlow/internal/model"
)

func TestInventory_CountFree_StartsFull(t *testing.T) {
	inv := newInventory()
	if got := inv.countFree(model.Lower); got != model.LowerBerths {
		t.Errorf("countFree(Lower) = %d, want %d", got, model.LowerBerths)
	}
	if got := inv.countFree(model.Middle); got != model.MiddleBerths {
		t.Errorf("countFree(Middle) = %d, want %d", got, model.MiddleBerths)
	}
	if got := inv.countFree(model.Upper); got != model.UpperBerths {
		t.Errorf("countFree(Upper) = %d, want %d", got, model.UpperBerths)
	}
}

func TestInventory_TakeFirstFree_LowestIndexFirst(t *testing.T) {
	inv := newInventory()
	p := &model.Passenger{ID: 1, Name: "A"}
	id := inv.takeFirstFree(model.Lower, p)
	if id == nil || id.Index != 1 {
		t.Fatalf("takeFirstFree = %+v, want index 1", id)
	}
	if got := inv.countFree(model.Lower); got != model.LowerBerths-1 {
		t.Errorf("countFree(Lower) after take = %d, want %d", got, model.LowerBerths-1)
	}
}

func TestInventory_TakeFirstFree_ExhaustsToNil(t *testing.T) {
	inv := newInventory()
	for i := 0; i < model.LowerBerths; i++ {
		if id := inv.takeFirstFree(model.Lower, &model.Passenger{ID: int64(i)}); id == nil {
			t.Fatalf("takeFirstFree unexpectedly nil at i=%d", i)
		}
	}
	if id := inv.takeFirstFree(model.Lower, &model.Passenger{ID: 999}); id != nil {
		t.Errorf("takeFirstFree on exhausted pool = %+v, want nil", id)
	}
}

func TestInventory_Release_FreesBerth(t *testing.T) {
	inv := newInventory()
	p := &model.Passenger{ID: 1}
	id := inv.takeFirstFree(model.Lower, p)
	inv.release(*id, p.ID)
	if got := inv.countFree(model.Lower); got != model.LowerBerths {
		t.Errorf("countFree(Lower) after release = %d, want %d", got, model.LowerBerths)
	}
}

func TestInventory_SideLowerFreeSlots_FullCapacity(t *testing.T) {
	inv := newInventory()
	want := model.SideLowerBerths * model.SideLowerSlots
	if got := inv.sideLowerFreeSlots(); got != want {
		t.Errorf("sideLowerFreeSlots() = %d, want %d", got, want)
	}
}

func TestInventory_TakeSideLowerSlot_FillsHalfFullBerthsFirst(t *testing.T) {
	inv := newInventory()
	first := inv.takeSideLowerSlot(&model.Passenger{ID: 1})
	second := inv.takeSideLowerSlot(&model.Passenger{ID: 2})
	if first == nil || second == nil {
		t.Fatalf("expected two side-lower slots, got %+v, %+v", first, second)
	}
	if first.Index != second.Index {
		t.Errorf("second occupant should share the first half-full berth: got %+v vs %+v", first, second)
	}
	third := inv.takeSideLowerSlot(&model.Passenger{ID: 3})
	if third == nil || third.Index == first.Index {
		t.Errorf("third occupant should move to a new berth: got %+v", third)
	}
}
