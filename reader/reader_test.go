package reader

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// drain reads the stream to EOF, copying chunks out of the reused buffer.
func drain(t *testing.T, s *Source) ([]byte, int) {
	t.Helper()
	var out []byte
	chunks := 0
	for {
		chunk, err := s.ReadChunk(context.Background())
		if err == io.EOF {
			return out, chunks
		}
		if err != nil {
			t.Fatalf("ReadChunk: %v", err)
		}
		out = append(out, chunk...)
		chunks++
	}
}

func randomData(n int) []byte {
	rng := rand.New(rand.NewSource(99))
	data := make([]byte, n)
	rng.Read(data)
	return data
}

func TestStreamChunks(t *testing.T) {
	data := randomData(100_000)
	path := writeTemp(t, "input.txt", data)

	s := NewSource(Options{ChunkSize: 1024, ReadMode: "stream"})
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, chunks := drain(t, s)
	if !bytes.Equal(got, data) {
		t.Fatalf("streamed data differs: got %d bytes, want %d", len(got), len(data))
	}
	if chunks < len(data)/1024 {
		t.Fatalf("expected at least %d chunks, got %d", len(data)/1024, chunks)
	}
}

func TestMmapChunks(t *testing.T) {
	data := randomData(100_000)
	path := writeTemp(t, "input.txt", data)

	s := NewSource(Options{ChunkSize: 4096, ReadMode: "mmap"})
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.mm == nil {
		t.Fatal("mmap mode did not map a regular file")
	}
	got, _ := drain(t, s)
	if !bytes.Equal(got, data) {
		t.Fatal("mapped data differs from file contents")
	}
}

func TestAutoModeThreshold(t *testing.T) {
	small := writeTemp(t, "small.txt", []byte("tiny"))
	big := writeTemp(t, "big.txt", randomData(8192))

	s := NewSource(Options{ChunkSize: 1024, ReadMode: "auto", MmapMinSize: 4096})
	if err := s.Open(small); err != nil {
		t.Fatal(err)
	}
	if s.mm != nil {
		t.Error("small file should stream, not map")
	}
	s.Close()

	if err := s.Open(big); err != nil {
		t.Fatal(err)
	}
	if s.mm == nil {
		t.Error("file above the threshold should be mapped")
	}
	s.Close()
}

func TestBufferReusedAcrossStreams(t *testing.T) {
	a := writeTemp(t, "a.txt", []byte("first stream\n"))
	b := writeTemp(t, "b.txt", []byte("second\n"))

	s := NewSource(Options{ChunkSize: 64, ReadMode: "stream"})
	if err := s.Open(a); err != nil {
		t.Fatal(err)
	}
	got, _ := drain(t, s)
	s.Close()
	if string(got) != "first stream\n" {
		t.Fatalf("got %q", got)
	}

	if err := s.Open(b); err != nil {
		t.Fatal(err)
	}
	got, _ = drain(t, s)
	s.Close()
	if string(got) != "second\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := NewSource(Options{})
	err := s.Open(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "cannot open") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestReadChunkAfterCancel(t *testing.T) {
	path := writeTemp(t, "input.txt", []byte("data"))
	s := NewSource(Options{ReadMode: "stream"})
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ReadChunk(ctx); err != context.Canceled {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestThrottledReadStillCorrect(t *testing.T) {
	data := randomData(16 * 1024)
	path := writeTemp(t, "input.txt", data)

	// A generous cap must not change what is read.
	s := NewSource(Options{ChunkSize: 2048, ReadMode: "stream", MaxBytesPerSecond: 1 << 30})
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, _ := drain(t, s)
	if !bytes.Equal(got, data) {
		t.Fatal("throttled read corrupted the stream")
	}
}

func TestReadFilesFrom(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"terminated", "a.txt\x00b.txt\x00", []string{"a.txt", "b.txt"}},
		{"trailing unterminated", "a.txt\x00b.txt", []string{"a.txt", "b.txt"}},
		{"empty entries dropped", "a.txt\x00\x00b.txt\x00", []string{"a.txt", "b.txt"}},
		{"single", "only", []string{"only"}},
		{"empty list", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, "list", []byte(tc.in))
			got, err := ReadFilesFrom(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestReadFilesFromMissing(t *testing.T) {
	if _, err := ReadFilesFrom(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error")
	}
}
