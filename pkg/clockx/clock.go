package clockx

// Clock implements the second-chance hand over a fixed number of slots.
// It tracks one reference bit per slot ID [0..capacity) and a revolving hand.
// Every slot is a candidate; callers decide what a slot holds.
type Clock struct {
	ref  []bool
	hand int
}

func New(capacity int) *Clock {
	if capacity <= 0 {
		capacity = 1
	}
	return &Clock{
		ref:  make([]bool, capacity),
		hand: 0,
	}
}

func (c *Clock) Capacity() int { return len(c.ref) }

// Hand returns the slot the next sweep starts from.
func (c *Clock) Hand() int { return c.hand }

// Touch sets the reference bit of a slot. The hand does not move.
func (c *Clock) Touch(id int) {
	if id < 0 || id >= len(c.ref) {
		return
	}
	c.ref[id] = true
}

// Referenced reports the reference bit of a slot.
func (c *Clock) Referenced(id int) bool {
	if id < 0 || id >= len(c.ref) {
		return false
	}
	return c.ref[id]
}

// Evict sweeps from the hand, clearing set bits, until it lands on a slot
// whose bit is clear. That slot is returned and the hand is left one past it.
// The victim's bit stays clear; callers Touch it once the new page is in.
// steps counts the slots inspected, victim included, and never exceeds 2*capacity.
func (c *Clock) Evict() (id int, steps int) {
	n := len(c.ref)

	for range 2 * n {
		idx := c.hand
		steps++
		c.hand = (c.hand + 1) % n

		if !c.ref[idx] {
			return idx, steps
		}
		// Second chance.
		c.ref[idx] = false
	}

	// After one full sweep every bit is clear, so the loop always returns.
	panic("clockx: no victim after two sweeps")
}
