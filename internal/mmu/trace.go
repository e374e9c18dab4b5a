package mmu

import (
	"fmt"
	"io"
)

const (
	labelFault     = "Page fault"
	labelRead      = "Reading"
	labelWrite     = "Writing"
	labelDiskWrite = "Disk write"
)

// tracer prints one human-readable line per event when on.
// Output is best-effort: write errors are dropped and never reach the caller.
type tracer struct {
	w  io.Writer
	on bool
}

func (t *tracer) event(label string, page PageID) {
	if !t.on || t.w == nil {
		return
	}
	_, _ = fmt.Fprintf(t.w, "%-15s%d\n", label, page)
}
