// Package reader owns the chunk/stream driver. A Source opens one input at
// a time (regular file, mmap window, or standard input) and hands out
// consecutive fixed-size chunks from a single buffer that is reused across
// chunks and across streams. The counting engines treat each chunk as
// borrowed, read-only memory, so nothing here copies or retains data.
package reader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/mmap"
	"golang.org/x/time/rate"
)

const (
	// DefaultChunkSize is the read buffer size: large enough to keep the
	// engines memory-bandwidth-bound, small enough to stay cache-friendly.
	DefaultChunkSize = 1 << 20

	// DefaultMmapMinSize is the smallest regular file the auto read mode
	// will map instead of streaming.
	DefaultMmapMinSize = 128 * 1024
)

// Options configures a Source for the whole run.
type Options struct {
	ChunkSize         int
	ReadMode          string // "auto", "stream", or "mmap"
	MmapMinSize       int64
	MaxBytesPerSecond int // 0 disables throttling
}

// Source reads one input stream at a time. It is not safe for concurrent
// use; streams are scanned strictly sequentially.
type Source struct {
	buf     []byte
	limiter *rate.Limiter
	mode    string
	mmapMin int64

	path    string
	file    *os.File
	mm      *mmap.ReaderAt
	off     int64
	stdin   bool
	pending error
}

// NewSource allocates the chunk buffer once for the whole run.
func NewSource(opts Options) *Source {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.MmapMinSize <= 0 {
		opts.MmapMinSize = DefaultMmapMinSize
	}
	mode := strings.ToLower(strings.TrimSpace(opts.ReadMode))
	if mode == "" {
		mode = "auto"
	}
	s := &Source{
		buf:     make([]byte, opts.ChunkSize),
		mode:    mode,
		mmapMin: opts.MmapMinSize,
	}
	if opts.MaxBytesPerSecond > 0 {
		burst := opts.MaxBytesPerSecond
		if burst < opts.ChunkSize {
			burst = opts.ChunkSize
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.MaxBytesPerSecond), burst)
	}
	return s
}

// Open prepares the source for one input; "-" means standard input.
// Regular files go through mmap when the read mode allows it and the file
// is big enough; any mmap failure falls back to plain streaming.
func (s *Source) Open(path string) error {
	s.path = path
	if path == "-" {
		s.stdin = true
		return nil
	}
	if s.mode != "stream" {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() &&
			(s.mode == "mmap" || info.Size() >= s.mmapMin) {
			if mm, err := mmap.Open(path); err == nil {
				s.mm = mm
				return nil
			}
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open '%s': %w", path, err)
	}
	s.file = f
	return nil
}

// Path returns the name of the currently open input.
func (s *Source) Path() string {
	return s.path
}

// ReadChunk returns the next chunk of the current stream. The slice aliases
// the reused buffer and is valid only until the next call. A clean end of
// stream is io.EOF; any other error means the stream was truncated and the
// caller should still finalize and report the partial counts.
func (s *Source) ReadChunk(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pending != nil {
		err := s.pending
		s.pending = nil
		return nil, err
	}
	for {
		var n int
		var err error
		switch {
		case s.stdin:
			n, err = os.Stdin.Read(s.buf)
		case s.mm != nil:
			if s.off >= int64(s.mm.Len()) {
				return nil, io.EOF
			}
			n, err = s.mm.ReadAt(s.buf, s.off)
			s.off += int64(n)
			if err == io.EOF && n > 0 {
				err = nil
			}
		case s.file != nil:
			n, err = s.file.Read(s.buf)
		default:
			return nil, fmt.Errorf("source is not open")
		}
		if n > 0 {
			if err != nil {
				// Deliver the data now, the error on the next call.
				s.pending = err
			}
			if s.limiter != nil {
				_ = s.limiter.WaitN(ctx, n)
			}
			return s.buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Close releases the current stream. The chunk buffer stays allocated for
// the next Open.
func (s *Source) Close() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	if s.mm != nil {
		s.mm.Close()
		s.mm = nil
	}
	s.stdin = false
	s.off = 0
	s.pending = nil
}
