package mmu

import "fmt"

// Frame is one physical slot.
type Frame struct {
	Page  PageID
	Used  bool
	Dirty bool
}

// FrameState is a read-only view of a frame, as returned by snapshots.
type FrameState struct {
	Page  PageID
	Empty bool
	Dirty bool
}

func (f Frame) state() FrameState {
	if !f.Used {
		return FrameState{Empty: true}
	}
	return FrameState{Page: f.Page, Dirty: f.Dirty}
}

func (s FrameState) String() string {
	if s.Empty {
		return "-"
	}
	if s.Dirty {
		return fmt.Sprintf("%d*", s.Page)
	}
	return fmt.Sprintf("%d", s.Page)
}

// core holds what every policy shares: capacity, counters and the trace flag.
type core struct {
	capacity int
	metrics  Metrics
	tr       tracer
}

func newCore(capacity int, o options) (core, error) {
	if capacity < 1 {
		return core{}, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return core{
		capacity: capacity,
		tr:       tracer{w: o.traceOut, on: o.trace},
	}, nil
}

func (c *core) Capacity() int    { return c.capacity }
func (c *core) PageFaults() int  { return c.metrics.PageFaults }
func (c *core) DiskReads() int   { return c.metrics.DiskReads }
func (c *core) DiskWrites() int  { return c.metrics.DiskWrites }
func (c *core) Metrics() Metrics { return c.metrics }

func (c *core) EnableTrace()  { c.tr.on = true }
func (c *core) DisableTrace() { c.tr.on = false }
func (c *core) Tracing() bool { return c.tr.on }

func (c *core) hit(page PageID, write bool) {
	if write {
		c.tr.event(labelWrite, page)
		return
	}
	c.tr.event(labelRead, page)
}

func (c *core) fault(page PageID) {
	c.metrics.PageFaults++
	c.tr.event(labelFault, page)
}

// writeBack charges the disk write for a dirty victim.
func (c *core) writeBack(victim PageID) {
	c.metrics.DiskWrites++
	c.tr.event(labelDiskWrite, victim)
}
