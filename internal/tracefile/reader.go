package tracefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/tuannm99/memsim/internal/mmu"
)

var (
	ErrMalformedLine   = errors.New("trace: malformed line")
	ErrInvalidPageSize = errors.New("trace: page size must be a power of two")
)

// DefaultPageSize is the page size used to turn addresses into page numbers.
const DefaultPageSize = 4096

// Access is one trace event.
type Access struct {
	Page mmu.PageID
	Op   mmu.Op
}

// Reader streams accesses from a memsim trace: one "<hex address> <R|W>"
// pair per line. Blank lines and '#' comments are skipped.
type Reader struct {
	sc     *bufio.Scanner
	shift  int
	lineNo int
}

func NewReader(r io.Reader, pageSize int) (*Reader, error) {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}
	return &Reader{
		sc:    bufio.NewScanner(r),
		shift: bits.TrailingZeros(uint(pageSize)),
	}, nil
}

// Next returns the next access, or io.EOF once the trace is exhausted.
func (r *Reader) Next() (Access, error) {
	for r.sc.Scan() {
		r.lineNo++
		line := strings.TrimSpace(r.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return r.parse(line)
	}
	if err := r.sc.Err(); err != nil {
		return Access{}, fmt.Errorf("trace: read line %d: %w", r.lineNo+1, err)
	}
	return Access{}, io.EOF
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]Access, error) {
	var out []Access
	for {
		a, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}

func (r *Reader) parse(line string) (Access, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Access{}, fmt.Errorf("%w %d: want \"<address> <R|W>\", got %q", ErrMalformedLine, r.lineNo, line)
	}

	addr, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(fields[0]), "0x"), 16, 64)
	if err != nil {
		return Access{}, fmt.Errorf("%w %d: address %q: %v", ErrMalformedLine, r.lineNo, fields[0], err)
	}

	var op mmu.Op
	switch strings.ToUpper(fields[1]) {
	case "R":
		op = mmu.OpRead
	case "W":
		op = mmu.OpWrite
	default:
		return Access{}, fmt.Errorf("%w %d: mode %q is neither R nor W", ErrMalformedLine, r.lineNo, fields[1])
	}

	return Access{Page: mmu.PageID(addr >> r.shift), Op: op}, nil
}
