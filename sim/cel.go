package sim

// ConditionalEventList is the set of armed conditional events.
// IDs are dense registry indices, so the armed set is a bitmap scanned in
// registration order.
type ConditionalEventList struct {
	armed []bool
	n     int
}

// NewConditionalEventList returns an empty list able to hold IDs in [0, size).
func NewConditionalEventList(size int) *ConditionalEventList {
	return &ConditionalEventList{armed: make([]bool, size)}
}

// Arm adds id to the set. Arming an armed event is a no-op.
func (c *ConditionalEventList) Arm(id EventID) {
	if !c.armed[id] {
		c.armed[id] = true
		c.n++
	}
}

// Disarm removes id from the set and reports whether it was armed.
func (c *ConditionalEventList) Disarm(id EventID) bool {
	if !c.armed[id] {
		return false
	}
	c.armed[id] = false
	c.n--
	return true
}

// IsArmed reports whether id is in the set.
func (c *ConditionalEventList) IsArmed(id EventID) bool { return c.armed[id] }

// Len returns the number of armed events.
func (c *ConditionalEventList) Len() int { return c.n }

// FirstEnabled returns the lowest armed ID for which enabled returns true.
// The guard is only evaluated for armed IDs.
func (c *ConditionalEventList) FirstEnabled(enabled func(EventID) bool) (EventID, bool) {
	if c.n == 0 {
		return 0, false
	}
	for i, on := range c.armed {
		if on && enabled(EventID(i)) {
			return EventID(i), true
		}
	}
	return 0, false
}
