package mmu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClock(t *testing.T, capacity int, opts ...Option) *Clock {
	t.Helper()
	c, err := NewClock(capacity, opts...)
	require.NoError(t, err)
	return c
}

func clockPages(c *Clock) []PageID {
	out := make([]PageID, len(c.frames))
	for i, f := range c.frames {
		out[i] = f.Page
	}
	return out
}

func TestClock_RejectsBadCapacity(t *testing.T) {
	for _, n := range []int{0, -1, -64} {
		c, err := NewClock(n)
		require.ErrorIs(t, err, ErrInvalidCapacity)
		require.Nil(t, c)
	}
}

func TestClock_FourReadsTwoFrames(t *testing.T) {
	c := newTestClock(t, 2)
	require.Equal(t, 0, c.Hand())

	c.ReadPage(1) // frame 0, hand -> 1
	c.ReadPage(2) // frame 1, hand -> 0
	require.Equal(t, 0, c.Hand())

	// Both bits set: the sweep clears 0 and 1, then takes frame 0 (page 1).
	c.ReadPage(3)
	require.Equal(t, []PageID{3, 2}, clockPages(c))
	require.Equal(t, 1, c.Hand())
	require.True(t, c.hand.Referenced(0))
	require.False(t, c.hand.Referenced(1))

	// Page 1 is gone; frame 1 has a clear bit and is under the hand.
	c.ReadPage(1)
	require.Equal(t, []PageID{3, 1}, clockPages(c))
	require.Equal(t, 0, c.Hand())

	require.Equal(t, 4, c.PageFaults())
	require.Equal(t, 4, c.DiskReads())
	require.Equal(t, 0, c.DiskWrites())
}

func TestClock_HitSetsBitAndLeavesHand(t *testing.T) {
	c := newTestClock(t, 3)
	c.ReadPage(1)
	c.ReadPage(2)
	require.Equal(t, 2, c.Hand())

	c.ReadPage(1)
	c.WritePage(2)

	require.Equal(t, 2, c.Hand())
	require.Equal(t, 2, c.PageFaults())
	require.Equal(t, 2, c.DiskReads())
	require.False(t, c.frames[0].Dirty)
	require.True(t, c.frames[1].Dirty)
	require.True(t, c.hand.Referenced(0))
	require.True(t, c.hand.Referenced(1))
	require.False(t, c.hand.Referenced(2))
}

func TestClock_ReReferencingCostsNothing(t *testing.T) {
	c := newTestClock(t, 3)
	c.ReadPage(1)
	c.WritePage(2)
	c.ReadPage(3)
	before := c.Metrics()

	for i := 0; i < 100; i++ {
		p := PageID(i%3 + 1)
		if i%4 == 0 {
			c.WritePage(p)
		} else {
			c.ReadPage(p)
		}
	}

	require.Equal(t, before, c.Metrics())
	require.Equal(t, Metrics{PageFaults: 3, DiskReads: 3, DiskWrites: 0}, c.Metrics())
}

func TestClock_ReferencedPageSurvivesSweep(t *testing.T) {
	c := newTestClock(t, 3)
	c.ReadPage(1)
	c.ReadPage(2)
	c.ReadPage(3)

	// All bits set: full sweep, then frame 0 goes.
	c.ReadPage(4)
	require.Equal(t, []PageID{4, 2, 3}, clockPages(c))
	require.Equal(t, 1, c.Hand())

	// Page 2 gets a second chance, page 3 is taken instead.
	c.ReadPage(2)
	c.ReadPage(5)
	require.Equal(t, []PageID{4, 2, 5}, clockPages(c))
	require.Equal(t, 0, c.Hand())
}

func TestClock_DirtyVictimCostsOneWrite(t *testing.T) {
	c := newTestClock(t, 1)

	c.WritePage(1)
	c.ReadPage(2)
	require.Equal(t, 1, c.DiskWrites())

	c.ReadPage(3)
	require.Equal(t, 1, c.DiskWrites())

	c.ReadPage(3)
	c.WritePage(3)
	c.ReadPage(4)
	require.Equal(t, 2, c.DiskWrites())
	require.Equal(t, 4, c.PageFaults())
	require.Equal(t, 4, c.DiskReads())
}

func TestClock_TraceLines(t *testing.T) {
	var buf bytes.Buffer
	c := newTestClock(t, 1, WithTraceOutput(&buf))
	require.False(t, c.Tracing())

	c.ReadPage(9) // not traced
	require.Empty(t, buf.String())

	c.EnableTrace()
	require.True(t, c.Tracing())
	c.WritePage(1)
	c.ReadPage(1)
	c.ReadPage(2)
	c.DisableTrace()
	c.ReadPage(3)

	want := "" +
		"Page fault     1\n" +
		"Writing        1\n" +
		"Reading        1\n" +
		"Page fault     2\n" +
		"Disk write     1\n" +
		"Reading        2\n"
	require.Equal(t, want, buf.String())
}

func TestClock_HasNoSnapshot(t *testing.T) {
	c := newTestClock(t, 2)
	frames, err := Snapshot(c)
	require.ErrorIs(t, err, ErrSnapshotUnsupported)
	require.Nil(t, frames)
}
