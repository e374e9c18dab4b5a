package mmu

import (
	"log/slog"

	"github.com/tuannm99/memsim/pkg/cache"
)

var (
	_ MMU         = (*LRU)(nil)
	_ Snapshotter = (*LRU)(nil)
)

// LRU evicts the least recently used page. Every access, hit or miss,
// moves exactly one page to the front of the recency order.
type LRU struct {
	core

	// page -> dirty, most recently used first
	order *cache.LRU[PageID, bool]
}

func NewLRU(capacity int, opts ...Option) (*LRU, error) {
	c, err := newCore(capacity, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	slog.Debug("mmu: new engine", "policy", PolicyLRU, "frames", capacity)
	return &LRU{
		core:  c,
		order: cache.NewLRU[PageID, bool](),
	}, nil
}

func (l *LRU) ReadPage(page PageID)  { l.access(page, false) }
func (l *LRU) WritePage(page PageID) { l.access(page, true) }

func (l *LRU) access(page PageID, write bool) {
	if dirty, ok := l.order.Get(page); ok {
		if write {
			*dirty = true
		}
		l.order.MoveToFront(page)
		l.hit(page, write)
		return
	}

	l.fault(page)
	l.metrics.DiskReads++

	if l.order.Len() >= l.capacity {
		victim, dirty, _ := l.order.RemoveBack()
		slog.Debug("mmu.lru: evict", "page", victim, "dirty", dirty)
		if dirty {
			l.writeBack(victim)
		}
	}

	l.order.PushFront(page, write)
	l.hit(page, write)
}

// Frames lists resident pages from most to least recently used, followed
// by one empty entry per unused frame.
func (l *LRU) Frames() []FrameState {
	out := make([]FrameState, 0, l.capacity)
	l.order.Each(func(page PageID, dirty bool) bool {
		out = append(out, FrameState{Page: page, Dirty: dirty})
		return true
	})
	for len(out) < l.capacity {
		out = append(out, FrameState{Empty: true})
	}
	return out
}
