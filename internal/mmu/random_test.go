package mmu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRandom(t *testing.T, capacity int, opts ...Option) *Random {
	t.Helper()
	r, err := NewRandom(capacity, opts...)
	require.NoError(t, err)
	return r
}

func TestRandom_RejectsBadCapacity(t *testing.T) {
	r, err := NewRandom(-3)
	require.ErrorIs(t, err, ErrInvalidCapacity)
	require.Nil(t, r)
}

func TestRandom_EveryAccessIsADiskRead(t *testing.T) {
	r := newTestRandom(t, 2)
	r.ReadPage(1)
	r.ReadPage(1)
	r.WritePage(1)
	r.ReadPage(2)

	require.Equal(t, Metrics{PageFaults: 2, DiskReads: 4}, r.Metrics())
}

func TestRandom_FillsFromSlotZero(t *testing.T) {
	r := newTestRandom(t, 3)
	r.ReadPage(5)
	r.WritePage(6)

	require.Equal(t, []FrameState{
		{Page: 5},
		{Page: 6, Dirty: true},
		{Empty: true},
	}, r.Frames())

	r.ReadPage(7)
	require.Equal(t, []PageID{5, 6, 7}, pagesOf(r.Frames()))
}

func TestRandom_HitOnlyTouchesDirty(t *testing.T) {
	r := newTestRandom(t, 3)
	r.ReadPage(1)
	r.ReadPage(2)
	r.WritePage(1)

	require.Equal(t, []FrameState{
		{Page: 1, Dirty: true},
		{Page: 2},
		{Empty: true},
	}, r.Frames())
}

func TestRandom_VictimsFollowSeed(t *testing.T) {
	const (
		capacity = 4
		seed     = 42
	)
	r := newTestRandom(t, capacity, WithSeed(seed))
	for p := 0; p < capacity; p++ {
		r.ReadPage(PageID(p))
	}

	want := NewRandomSource(seed)
	for p := PageID(100); p < 140; p++ {
		idx := want.IntN(capacity)
		r.ReadPage(p)
		require.Equal(t, p, r.Frames()[idx].Page, "page %d", p)
	}
	require.Equal(t, capacity+40, r.PageFaults())
}

func TestRandom_SameSeedSameRun(t *testing.T) {
	run := func(seed uint64) (Metrics, []FrameState) {
		r := newTestRandom(t, 5, WithSeed(seed))
		for i := 0; i < 500; i++ {
			p := PageID((i * 7919) % 23)
			if i%3 == 0 {
				r.WritePage(p)
			} else {
				r.ReadPage(p)
			}
		}
		return r.Metrics(), r.Frames()
	}

	m1, f1 := run(7)
	m2, f2 := run(7)
	require.Equal(t, m1, m2)
	require.Equal(t, f1, f2)
	require.Greater(t, m1.DiskWrites, 0)
}

func TestRandom_WithRandWinsOverSeed(t *testing.T) {
	a := newTestRandom(t, 3, WithSeed(1), WithRand(NewRandomSource(99)))
	b := newTestRandom(t, 3, WithSeed(99))
	for p := PageID(0); p < 50; p++ {
		a.WritePage(p % 11)
		b.WritePage(p % 11)
	}
	require.Equal(t, b.Frames(), a.Frames())
	require.Equal(t, b.Metrics(), a.Metrics())
}

func TestRandom_DirtyAccounting(t *testing.T) {
	r := newTestRandom(t, 1)
	r.WritePage(1)
	r.ReadPage(2)
	require.Equal(t, 1, r.DiskWrites())

	r.ReadPage(3)
	require.Equal(t, 1, r.DiskWrites())
}
