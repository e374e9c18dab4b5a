package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tuannm99/memsim/internal/mmu"
	"github.com/tuannm99/memsim/internal/tracefile"
)

// AccessSource yields accesses in trace order and io.EOF at the end.
type AccessSource interface {
	Next() (tracefile.Access, error)
}

// Report is the outcome of one run.
type Report struct {
	Policy  mmu.Policy
	Frames  int
	Events  int
	Metrics mmu.Metrics
}

// FaultRate is page faults per event, 0 for an empty trace.
func (r Report) FaultRate() float64 {
	if r.Events == 0 {
		return 0
	}
	return float64(r.Metrics.PageFaults) / float64(r.Events)
}

// WriteSummary prints the end-of-run summary.
func (r Report) WriteSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"total memory frames:  %d\n"+
			"events in trace:      %d\n"+
			"total disk reads:     %d\n"+
			"total disk writes:    %d\n"+
			"page fault rate:      %.4f\n",
		r.Frames, r.Events, r.Metrics.DiskReads, r.Metrics.DiskWrites, r.FaultRate())
	return err
}

// Run feeds every access from src into m, one at a time and in order.
// ctx is checked between accesses; on cancellation the partial report is
// returned along with ctx.Err().
func Run(ctx context.Context, policy mmu.Policy, m mmu.MMU, src AccessSource) (Report, error) {
	rep := Report{Policy: policy, Frames: m.Capacity()}

	for {
		if err := ctx.Err(); err != nil {
			rep.Metrics = m.Metrics()
			return rep, err
		}

		a, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rep.Metrics = m.Metrics()
			return rep, fmt.Errorf("sim: after %d events: %w", rep.Events, err)
		}

		mmu.Access(m, a.Page, a.Op)
		rep.Events++
	}

	rep.Metrics = m.Metrics()
	slog.Info("sim: run done",
		"policy", policy,
		"frames", rep.Frames,
		"events", rep.Events,
		"faults", rep.Metrics.PageFaults,
		"reads", rep.Metrics.DiskReads,
		"writes", rep.Metrics.DiskWrites,
	)
	return rep, nil
}

// SliceSource replays a fixed list of accesses.
type SliceSource struct {
	accesses []tracefile.Access
	pos      int
}

func NewSliceSource(accesses []tracefile.Access) *SliceSource {
	return &SliceSource{accesses: accesses}
}

func (s *SliceSource) Next() (tracefile.Access, error) {
	if s.pos >= len(s.accesses) {
		return tracefile.Access{}, io.EOF
	}
	a := s.accesses[s.pos]
	s.pos++
	return a, nil
}
