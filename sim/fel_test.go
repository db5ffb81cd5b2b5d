package sim

import "testing"

func TestFutureEventList_PopsInTimeOrder(t *testing.T) {
	f := NewFutureEventList()
	f.Schedule(100, 1)
	f.Schedule(50, 2)
	f.Schedule(150, 3)

	for _, want := range []struct {
		time float64
		id   EventID
	}{{50, 2}, {100, 1}, {150, 3}} {
		tm, id, ok := f.PopEarliest()
		if !ok || tm != want.time || id != want.id {
			t.Errorf("PopEarliest() = (%v, %d, %v), want (%v, %d, true)", tm, id, ok, want.time, want.id)
		}
	}
	if _, _, ok := f.PopEarliest(); ok {
		t.Error("PopEarliest() on empty list reported ok")
	}
}

func TestFutureEventList_TiesPopInInsertionOrder(t *testing.T) {
	// GIVEN three events at the same time inserted out of ID order
	f := NewFutureEventList()
	f.Schedule(10, 3)
	f.Schedule(10, 1)
	f.Schedule(10, 2)

	// THEN they come out in insertion order
	for _, want := range []EventID{3, 1, 2} {
		if _, id, _ := f.PopEarliest(); id != want {
			t.Errorf("popped %d, want %d", id, want)
		}
	}
}

func TestFutureEventList_SameTimeSameEvent_IsNoOp(t *testing.T) {
	f := NewFutureEventList()
	if !f.Schedule(5, 1) {
		t.Fatal("first Schedule reported duplicate")
	}
	if f.Schedule(5, 1) {
		t.Error("second Schedule at the same time should be a no-op")
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
	// a different time is a separate occurrence
	if !f.Schedule(6, 1) {
		t.Error("Schedule at another time should insert")
	}
}

func TestFutureEventList_RescheduleAfterPop(t *testing.T) {
	f := NewFutureEventList()
	f.Schedule(5, 1)
	f.PopEarliest()
	if !f.Schedule(5, 1) {
		t.Error("Schedule after the occurrence was popped should insert again")
	}
}

func TestFutureEventList_UnscheduleNext_RemovesEarliestOnly(t *testing.T) {
	// GIVEN event 1 pending at 20 and 8, event 2 at 8
	f := NewFutureEventList()
	f.Schedule(20, 1)
	f.Schedule(8, 2)
	f.Schedule(8, 1)

	// WHEN the next occurrence of 1 is unscheduled
	if !f.UnscheduleNext(1) {
		t.Fatal("UnscheduleNext reported nothing removed")
	}

	// THEN the occurrence at 8 is gone and the one at 20 remains
	if !f.IsScheduled(1) {
		t.Error("later occurrence was removed too")
	}
	tm, id, _ := f.PopEarliest()
	if tm != 8 || id != 2 {
		t.Errorf("first pop = (%v, %d), want (8, 2)", tm, id)
	}
	tm, id, _ = f.PopEarliest()
	if tm != 20 || id != 1 {
		t.Errorf("second pop = (%v, %d), want (20, 1)", tm, id)
	}
}

func TestFutureEventList_UnscheduleNext_Missing(t *testing.T) {
	f := NewFutureEventList()
	f.Schedule(1, 1)
	if f.UnscheduleNext(2) {
		t.Error("UnscheduleNext of an absent event reported a removal")
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestFutureEventList_IsScheduled_TracksAllOccurrences(t *testing.T) {
	f := NewFutureEventList()
	f.Schedule(1, 7)
	f.Schedule(2, 7)
	f.PopEarliest()
	if !f.IsScheduled(7) {
		t.Error("IsScheduled false with one occurrence left")
	}
	f.PopEarliest()
	if f.IsScheduled(7) {
		t.Error("IsScheduled true on an empty list")
	}
}

func TestFutureEventList_PeekTime(t *testing.T) {
	f := NewFutureEventList()
	if _, ok := f.PeekTime(); ok {
		t.Error("PeekTime on empty list reported ok")
	}
	f.Schedule(3, 1)
	f.Schedule(2, 1)
	if tm, _ := f.PeekTime(); tm != 2 {
		t.Errorf("PeekTime() = %v, want 2", tm)
	}
}
