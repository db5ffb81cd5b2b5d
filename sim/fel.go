package sim

import "container/heap"

// felEntry is one pending occurrence of a timed event.
type felEntry struct {
	time float64
	seq  uint64 // insertion order, breaks ties between equal times
	id   EventID
}

type felKey struct {
	time float64
	id   EventID
}

// felHeap implements heap.Interface ordered by time, then insertion order.
type felHeap []felEntry

func (h felHeap) Len() int { return len(h) }

func (h felHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h felHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *felHeap) Push(x any) { *h = append(*h, x.(felEntry)) }

func (h *felHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FutureEventList holds pending timed events keyed by absolute simulation time.
// Each (time, event) pair is present at most once. Events sharing the earliest
// time are popped in the order they were scheduled.
//
// The list does not know the clock; callers are responsible for never
// scheduling earlier than the current simulation time.
type FutureEventList struct {
	entries felHeap
	present map[felKey]struct{}
	counts  map[EventID]int
	nextSeq uint64
}

// NewFutureEventList returns an empty list.
func NewFutureEventList() *FutureEventList {
	return &FutureEventList{
		present: make(map[felKey]struct{}),
		counts:  make(map[EventID]int),
	}
}

// Len returns the number of pending occurrences.
func (f *FutureEventList) Len() int { return len(f.entries) }

// Schedule inserts id at absolute time at. It reports false, leaving the list
// unchanged, when id is already pending at exactly that time.
func (f *FutureEventList) Schedule(at float64, id EventID) bool {
	key := felKey{time: at, id: id}
	if _, ok := f.present[key]; ok {
		return false
	}
	f.present[key] = struct{}{}
	f.counts[id]++
	heap.Push(&f.entries, felEntry{time: at, seq: f.nextSeq, id: id})
	f.nextSeq++
	return true
}

// PeekTime returns the earliest pending time.
func (f *FutureEventList) PeekTime() (float64, bool) {
	if len(f.entries) == 0 {
		return 0, false
	}
	return f.entries[0].time, true
}

// PopEarliest removes and returns the earliest pending occurrence.
func (f *FutureEventList) PopEarliest() (float64, EventID, bool) {
	if len(f.entries) == 0 {
		return 0, 0, false
	}
	e := heap.Pop(&f.entries).(felEntry)
	f.forget(e)
	return e.time, e.id, true
}

// UnscheduleNext removes the earliest pending occurrence of id only.
// Occurrences at later times stay scheduled. It reports whether anything was removed.
func (f *FutureEventList) UnscheduleNext(id EventID) bool {
	if f.counts[id] == 0 {
		return false
	}
	best := -1
	for i, e := range f.entries {
		if e.id != id {
			continue
		}
		if best < 0 || f.entries.Less(i, best) {
			best = i
		}
	}
	e := heap.Remove(&f.entries, best).(felEntry)
	f.forget(e)
	return true
}

// IsScheduled reports whether id is pending at any time.
func (f *FutureEventList) IsScheduled(id EventID) bool {
	return f.counts[id] > 0
}

func (f *FutureEventList) forget(e felEntry) {
	delete(f.present, felKey{time: e.time, id: e.id})
	f.counts[e.id]--
	if f.counts[e.id] == 0 {
		delete(f.counts, e.id)
	}
}
