package mmu

import (
	"log/slog"

	"github.com/tuannm99/memsim/pkg/clockx"
)

var _ MMU = (*Clock)(nil)

// Clock is the second-chance policy. Reference bits and the hand live in
// clockx.Clock; the hand starts at frame 0 and only moves on faults.
type Clock struct {
	core

	frames   []Frame        // len == capacity
	hand     *clockx.Clock  // one reference bit per frame
	resident map[PageID]int // page -> frame index
}

func NewClock(capacity int, opts ...Option) (*Clock, error) {
	c, err := newCore(capacity, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	slog.Debug("mmu: new engine", "policy", PolicyClock, "frames", capacity)
	return &Clock{
		core:     c,
		frames:   make([]Frame, capacity),
		hand:     clockx.New(capacity),
		resident: make(map[PageID]int, capacity),
	}, nil
}

func (c *Clock) ReadPage(page PageID)  { c.access(page, false) }
func (c *Clock) WritePage(page PageID) { c.access(page, true) }

// Hand returns the frame the next sweep starts from.
func (c *Clock) Hand() int { return c.hand.Hand() }

func (c *Clock) access(page PageID, write bool) {
	// HIT: set the bit (and dirty on write), nothing else moves.
	if idx, ok := c.resident[page]; ok {
		c.hand.Touch(idx)
		if write {
			c.frames[idx].Dirty = true
		}
		c.hit(page, write)
		return
	}

	c.fault(page)

	// Empty frames carry a clear bit and, while the table fills, always sit
	// under the hand, so the sweep hands them out in index order.
	idx, steps := c.hand.Evict()
	victim := &c.frames[idx]
	if victim.Used {
		slog.Debug("mmu.clock: evict",
			"frame", idx,
			"page", victim.Page,
			"dirty", victim.Dirty,
			"steps", steps,
		)
		delete(c.resident, victim.Page)
		if victim.Dirty {
			c.writeBack(victim.Page)
		}
	}

	c.metrics.DiskReads++
	*victim = Frame{Page: page, Used: true, Dirty: write}
	c.hand.Touch(idx)
	c.resident[page] = idx
	c.hit(page, write)
}
