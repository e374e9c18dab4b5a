package mmu

import (
	"log/slog"
	"math/rand/v2"
)

var (
	_ MMU         = (*Random)(nil)
	_ Snapshotter = (*Random)(nil)
)

// Random evicts a uniformly drawn frame once the table is full.
// Every access, hit or miss, is charged one disk read.
type Random struct {
	core

	frames   []Frame        // len == capacity
	resident map[PageID]int // page -> frame index
	used     int
	rng      *rand.Rand
}

// NewRandomSource returns the generator the Random policy uses for a seed.
func NewRandomSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func NewRandom(capacity int, opts ...Option) (*Random, error) {
	o := buildOptions(opts)
	c, err := newCore(capacity, o)
	if err != nil {
		return nil, err
	}

	rng := o.rng
	if rng == nil {
		rng = NewRandomSource(o.seed)
	}

	slog.Debug("mmu: new engine", "policy", PolicyRandom, "frames", capacity, "seed", o.seed)
	return &Random{
		core:     c,
		frames:   make([]Frame, capacity),
		resident: make(map[PageID]int, capacity),
		rng:      rng,
	}, nil
}

func (r *Random) ReadPage(page PageID)  { r.access(page, false) }
func (r *Random) WritePage(page PageID) { r.access(page, true) }

func (r *Random) access(page PageID, write bool) {
	r.metrics.DiskReads++

	if idx, ok := r.resident[page]; ok {
		if write {
			r.frames[idx].Dirty = true
		}
		r.hit(page, write)
		return
	}

	r.fault(page)

	var idx int
	if r.used < r.capacity {
		idx = r.firstFree()
		r.used++
	} else {
		idx = r.rng.IntN(r.capacity)
		victim := r.frames[idx]
		slog.Debug("mmu.random: evict", "frame", idx, "page", victim.Page, "dirty", victim.Dirty)
		delete(r.resident, victim.Page)
		if victim.Dirty {
			r.writeBack(victim.Page)
		}
	}

	r.frames[idx] = Frame{Page: page, Used: true, Dirty: write}
	r.resident[page] = idx
	r.hit(page, write)
}

func (r *Random) firstFree() int {
	for i := range r.frames {
		if !r.frames[i].Used {
			return i
		}
	}
	// used < capacity guarantees a free frame.
	panic("mmu: random frame table has no free frame")
}

// Frames lists frames in slot order.
func (r *Random) Frames() []FrameState {
	out := make([]FrameState, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.state()
	}
	return out
}
