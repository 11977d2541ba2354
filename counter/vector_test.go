package counter

import (
	"math/rand"
	"testing"
)

// refMask32 builds a lane mask from a per-byte predicate; the mask
// builders must agree with it bit for bit.
func refMask32(lane []byte, pred func(byte) bool) uint32 {
	var m uint32
	for i, b := range lane {
		if pred(b) {
			m |= 1 << uint(i)
		}
	}
	return m
}

func adversarialLanes() [][]byte {
	lanes := [][]byte{
		make([]byte, laneSize),                       // all zero
		[]byte("abcdefghijklmnopqrstuvwxyz012345"),   // plain ASCII
		[]byte(" \t\n\r\v\f \t\n\r\v\f \t\n\r\v\f "), // dense whitespace
	}
	// Byte values adjacent to the whitespace set: \x0B after \x0A and
	// friends, which trip inexact zero-byte tests.
	adj := make([]byte, 0, laneSize)
	for b := byte(0x08); len(adj) < laneSize; b++ {
		adj = append(adj, b)
	}
	lanes = append(lanes, adj)
	// UTF-8 lead/continuation boundary values.
	utf := make([]byte, laneSize)
	for i := range utf {
		utf[i] = []byte{0x7F, 0x80, 0xBF, 0xC0, 0xC1, 0xFF, 0x00, 0x01}[i%8]
	}
	lanes = append(lanes, utf)
	// Pad the whitespace lane literal to exactly one lane.
	for i, l := range lanes {
		if len(l) < laneSize {
			lanes[i] = append(l, make([]byte, laneSize-len(l))...)
		} else {
			lanes[i] = l[:laneSize]
		}
	}
	return lanes
}

func TestLaneMasksMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lanes := adversarialLanes()
	for i := 0; i < 200; i++ {
		lane := make([]byte, laneSize)
		rng.Read(lane)
		lanes = append(lanes, lane)
	}
	for _, lane := range lanes {
		if got, want := eqMask32(lane, '\n'), refMask32(lane, func(b byte) bool { return b == '\n' }); got != want {
			t.Errorf("eqMask32(%q, '\\n') = %032b, want %032b", lane, got, want)
		}
		if got, want := whitespaceMask32(lane), refMask32(lane, isSpace); got != want {
			t.Errorf("whitespaceMask32(%q) = %032b, want %032b", lane, got, want)
		}
		if got, want := leadMask32(lane), refMask32(lane, isUTF8Lead); got != want {
			t.Errorf("leadMask32(%q) = %032b, want %032b", lane, got, want)
		}
	}
}

func TestVectorMatchesScalarRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sel := Selection{Lines: true, Words: true, Bytes: true, Chars: true, MaxLineLength: true}
	for trial := 0; trial < 100; trial++ {
		n := rng.Intn(600)
		data := randomText(rng, n)
		chunk := 1 + rng.Intn(128)
		s := scanSplit(ModeScalar, sel, data, chunk)
		v := scanSplit(ModeVector, sel, data, chunk)
		if s != v {
			t.Fatalf("trial %d (len=%d chunk=%d): scalar %+v != vector %+v", trial, len(data), chunk, s, v)
		}
	}
}

func TestVectorCarryAcrossLaneBoundary(t *testing.T) {
	// A word straddling positions 31/32 must count once, and the carried
	// space bit from a lane must seed the next lane and the tail.
	data := make([]byte, 0, 70)
	for len(data) < 30 {
		data = append(data, 'a', ' ')
	}
	data = append(data, []byte("wordacrosslanes and a tail")...)
	sel := Selection{Words: true}
	want := refCounts(data, sel)
	got := scanSplit(ModeVector, sel, data)
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestVectorSplitMidUTF8(t *testing.T) {
	sel := Selection{Chars: true, Bytes: true, MaxLineLength: true}
	data := []byte("🙂🙂🙂🙂🙂🙂🙂🙂🙂🙂\n🙂")
	want := refCounts(data, sel)
	for split := 1; split < len(data); split++ {
		var c Counts
		eng := New(ModeVector, sel)
		eng.Process(data[:split], &c)
		eng.Process(data[split:], &c)
		eng.Finalize(&c)
		if c != want {
			t.Fatalf("split at %d: got %+v, want %+v", split, c, want)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeScalar.String() != "scalar" || ModeVector.String() != "vector" {
		t.Fatal("unexpected Mode strings")
	}
}
