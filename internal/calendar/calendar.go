package calendar

import "container/heap"

// SimCalendar is a priority queue of SimTimeSlot instants keyed by
// simulated time. At most one slot exists per time value; intra-instant
// ordering lives in the slot's phase sequence, never in the calendar
// itself (see the "slot-based vs priority-heap" design note).
type SimCalendar struct {
	slots map[int64]*SimTimeSlot
	times timeHeap
}

// New returns an empty SimCalendar.
func New() *SimCalendar {
	return &SimCalendar{
		slots: make(map[int64]*SimTimeSlot),
	}
}

// Push inserts slot at time, or replaces the slot already stored there.
func (c *SimCalendar) Push(time int64, slot *SimTimeSlot) {
	if _, exists := c.slots[time]; !exists {
		heap.Push(&c.times, time)
	}
	c.slots[time] = slot
}

// PeekOrCreate returns the slot already scheduled at time, creating and
// registering an empty one if none exists yet.
func (c *SimCalendar) PeekOrCreate(time int64) *SimTimeSlot {
	if slot, ok := c.slots[time]; ok {
		return slot
	}
	slot := NewSimTimeSlot()
	c.Push(time, slot)
	return slot
}

// Pop removes and returns the slot with the smallest time. ok is false if
// the calendar is empty.
func (c *SimCalendar) Pop() (time int64, slot *SimTimeSlot, ok bool) {
	for c.times.Len() > 0 {
		t := heap.Pop(&c.times).(int64)
		slot, exists := c.slots[t]
		if !exists {
			// defensive: Push adds each time to the heap only once and
			// Pop removes heap entry and mapping together, so a heap
			// entry without a mapping is stale; skip it.
			continue
		}
		delete(c.slots, t)
		return t, slot, true
	}
	return 0, nil, false
}

// Len reports how many distinct instants are currently scheduled.
func (c *SimCalendar) Len() int {
	return len(c.slots)
}

type timeHeap []int64

func (h timeHeap) Len() int           { return len(h) }
func (h timeHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h timeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *timeHeap) Push(x any)        { *h = append(*h, x.(int64)) }
func (h *timeHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
