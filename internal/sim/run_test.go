package sim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/memsim/internal/mmu"
	"github.com/tuannm99/memsim/internal/tracefile"
)

func reads(pages ...mmu.PageID) []tracefile.Access {
	out := make([]tracefile.Access, len(pages))
	for i, p := range pages {
		out[i] = tracefile.Access{Page: p, Op: mmu.OpRead}
	}
	return out
}

func TestRun_ClockScenario(t *testing.T) {
	m, err := mmu.New(mmu.PolicyClock, 2)
	require.NoError(t, err)

	rep, err := Run(context.Background(), mmu.PolicyClock, m, NewSliceSource(reads(1, 2, 3, 1)))
	require.NoError(t, err)

	require.Equal(t, Report{
		Policy:  mmu.PolicyClock,
		Frames:  2,
		Events:  4,
		Metrics: mmu.Metrics{PageFaults: 4, DiskReads: 4},
	}, rep)
	require.InDelta(t, 1.0, rep.FaultRate(), 1e-9)
}

func TestRun_FromTraceText(t *testing.T) {
	in := "00001000 W\n00002000 R\n00001004 R\n00003000 R\n"
	r, err := tracefile.NewReader(strings.NewReader(in), tracefile.DefaultPageSize)
	require.NoError(t, err)

	m, err := mmu.New(mmu.PolicyLRU, 2)
	require.NoError(t, err)

	rep, err := Run(context.Background(), mmu.PolicyLRU, m, r)
	require.NoError(t, err)
	require.Equal(t, 4, rep.Events)
	require.Equal(t, m.Metrics(), rep.Metrics)
	// page 2 is least recent when page 3 arrives; it is clean
	require.Equal(t, mmu.Metrics{PageFaults: 3, DiskReads: 3, DiskWrites: 0}, rep.Metrics)
	require.InDelta(t, 0.75, rep.FaultRate(), 1e-9)
}

func TestRun_StopsOnTraceError(t *testing.T) {
	r, err := tracefile.NewReader(strings.NewReader("00001000 R\nbroken\n"), tracefile.DefaultPageSize)
	require.NoError(t, err)
	m, err := mmu.New(mmu.PolicyRandom, 2)
	require.NoError(t, err)

	rep, err := Run(context.Background(), mmu.PolicyRandom, m, r)
	require.ErrorIs(t, err, tracefile.ErrMalformedLine)
	require.Equal(t, 1, rep.Events)
	require.Equal(t, 1, rep.Metrics.PageFaults)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := mmu.New(mmu.PolicyLRU, 2)
	require.NoError(t, err)

	rep, err := Run(ctx, mmu.PolicyLRU, m, NewSliceSource(reads(1, 2, 3)))
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, 0, rep.Events)
	require.Equal(t, mmu.Metrics{}, rep.Metrics)
}

func TestReport_EmptyAndSummary(t *testing.T) {
	require.Zero(t, Report{}.FaultRate())

	rep := Report{
		Frames:  64,
		Events:  1000,
		Metrics: mmu.Metrics{PageFaults: 250, DiskReads: 250, DiskWrites: 40},
	}
	var buf bytes.Buffer
	require.NoError(t, rep.WriteSummary(&buf))

	want := "" +
		"total memory frames:  64\n" +
		"events in trace:      1000\n" +
		"total disk reads:     250\n" +
		"total disk writes:    40\n" +
		"page fault rate:      0.2500\n"
	require.Equal(t, want, buf.String())
}
