package tracefile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression of a trace file, picked from its suffix.
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionLZ4    Compression = "lz4"
	CompressionSnappy Compression = "snappy"
)

func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return CompressionLZ4
	case ".sz", ".snappy":
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// File is an open trace file. Close releases the underlying file.
type File struct {
	*Reader
	f *os.File
}

func (f *File) Close() error {
	return f.f.Close()
}

// Open opens a trace file, decompressing .lz4 and .sz/.snappy (framed) streams.
func Open(path string, pageSize int) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}

	var src io.Reader = f
	switch CompressionFor(path) {
	case CompressionLZ4:
		src = lz4.NewReader(f)
	case CompressionSnappy:
		src = snappy.NewReader(f)
	}

	r, err := NewReader(src, pageSize)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{Reader: r, f: f}, nil
}

// Write encodes accesses as trace lines, compressed per c.
// Addresses are page-aligned: page * pageSize.
func Write(w io.Writer, c Compression, pageSize int, accesses []Access) error {
	var (
		dst    io.Writer = w
		closer io.Closer
	)
	switch c {
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		dst, closer = zw, zw
	case CompressionSnappy:
		zw := snappy.NewBufferedWriter(w)
		dst, closer = zw, zw
	}

	for _, a := range accesses {
		addr := uint64(a.Page) * uint64(pageSize)
		if _, err := fmt.Fprintf(dst, "%08x %s\n", addr, a.Op); err != nil {
			return fmt.Errorf("trace: write: %w", err)
		}
	}

	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("trace: flush %s: %w", c, err)
		}
	}
	return nil
}
