package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tuannm99/memsim/internal/mmu"
)

var (
	ErrQuit           = errors.New("shell: quit")
	ErrUnknownCommand = errors.New("shell: unknown command")
	ErrUsage          = errors.New("shell: usage")
)

const helpText = `commands:
  r <page>         read a page
  w <page>         write a page
  stats            show counters
  frames           show frame contents (lru, rand)
  debug on|off     toggle per-access trace lines
  reset            start over with empty frames
  help             this text
  quit             leave
`

// Factory builds a fresh engine; reset calls it again.
type Factory func() (mmu.MMU, error)

// Session runs shell commands against one engine.
type Session struct {
	out     io.Writer
	factory Factory
	m       mmu.MMU
	events  int
}

func NewSession(out io.Writer, factory Factory) (*Session, error) {
	m, err := factory()
	if err != nil {
		return nil, err
	}
	return &Session{out: out, factory: factory, m: m}, nil
}

func (s *Session) MMU() mmu.MMU { return s.m }

// Exec runs one line. ErrQuit means the caller should stop.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "r", "read", "w", "write":
		if len(args) != 1 {
			return fmt.Errorf("%w: %s <page>", ErrUsage, cmd)
		}
		page, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return fmt.Errorf("%w: page %q: %v", ErrUsage, args[0], err)
		}
		op := mmu.OpRead
		if cmd[0] == 'w' {
			op = mmu.OpWrite
		}

		faults := s.m.PageFaults()
		mmu.Access(s.m, mmu.PageID(page), op)
		s.events++
		if s.m.PageFaults() > faults {
			s.printf("%s %d: fault\n", op, page)
		} else {
			s.printf("%s %d: hit\n", op, page)
		}

	case "stats":
		met := s.m.Metrics()
		s.printf("events=%d faults=%d reads=%d writes=%d\n",
			s.events, met.PageFaults, met.DiskReads, met.DiskWrites)

	case "frames":
		frames, err := mmu.Snapshot(s.m)
		if err != nil {
			return err
		}
		parts := make([]string, len(frames))
		for i, f := range frames {
			parts[i] = f.String()
		}
		s.printf("[%s]\n", strings.Join(parts, " "))

	case "debug":
		if len(args) != 1 {
			return fmt.Errorf("%w: debug on|off", ErrUsage)
		}
		switch strings.ToLower(args[0]) {
		case "on":
			s.m.EnableTrace()
		case "off":
			s.m.DisableTrace()
		default:
			return fmt.Errorf("%w: debug on|off", ErrUsage)
		}
		s.printf("debug %s\n", strings.ToLower(args[0]))

	case "reset":
		m, err := s.factory()
		if err != nil {
			return err
		}
		if s.m.Tracing() {
			m.EnableTrace()
		}
		s.m, s.events = m, 0
		s.printf("reset: %d empty frames\n", m.Capacity())

	case "help", "?":
		s.printf("%s", helpText)

	case "quit", "exit", "q":
		return ErrQuit

	default:
		return fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, fields[0])
	}
	return nil
}

func (s *Session) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}
