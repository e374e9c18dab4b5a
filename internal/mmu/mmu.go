package mmu

import (
	"errors"
	"io"
	"math/rand/v2"
	"os"
)

var (
	ErrInvalidCapacity     = errors.New("mmu: frame capacity must be at least 1")
	ErrUnknownPolicy       = errors.New("mmu: unknown replacement policy")
	ErrSnapshotUnsupported = errors.New("mmu: policy does not expose a frame snapshot")
)

// PageID is a logical page number. Any value is valid.
type PageID uint64

type Op uint8

const (
	OpRead Op = iota
	OpWrite
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	default:
		return "?"
	}
}

// MMU is the access surface every replacement policy offers.
// Accesses must be applied one at a time, in trace order.
type MMU interface {
	ReadPage(page PageID)
	WritePage(page PageID)

	PageFaults() int
	DiskReads() int
	DiskWrites() int
	Metrics() Metrics
	Capacity() int

	EnableTrace()
	DisableTrace()
	Tracing() bool
}

// Snapshotter is implemented by policies that can list their frames.
type Snapshotter interface {
	Frames() []FrameState
}

// Snapshot returns the frame contents of m, or ErrSnapshotUnsupported.
func Snapshot(m MMU) ([]FrameState, error) {
	s, ok := m.(Snapshotter)
	if !ok {
		return nil, ErrSnapshotUnsupported
	}
	return s.Frames(), nil
}

// Access applies one trace event.
func Access(m MMU, page PageID, op Op) {
	if op == OpWrite {
		m.WritePage(page)
		return
	}
	m.ReadPage(page)
}

// Metrics are the counters of one engine. They only ever grow.
type Metrics struct {
	PageFaults int
	DiskReads  int
	DiskWrites int
}

type Option func(*options)

type options struct {
	traceOut io.Writer
	trace    bool
	seed     uint64
	rng      *rand.Rand
}

// DefaultSeed seeds the Random policy when neither WithSeed nor WithRand is given.
const DefaultSeed uint64 = 1

func defaultOptions() options {
	return options{
		traceOut: os.Stdout,
		seed:     DefaultSeed,
	}
}

// WithTraceOutput sets where trace lines go. A nil writer discards them.
func WithTraceOutput(w io.Writer) Option {
	return func(o *options) { o.traceOut = w }
}

// WithTrace starts the engine with tracing on or off.
func WithTrace(enabled bool) Option {
	return func(o *options) { o.trace = enabled }
}

// WithSeed seeds the Random policy's generator. Ignored by other policies.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithRand hands the Random policy its own generator. It takes precedence over WithSeed.
// The generator must not be shared with another engine.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
