package counter

import (
	"encoding/binary"
	"math/bits"
)

// laneSize is the vector engine's lane width in bytes. Each full lane is
// reduced to 32-bit classification masks whose population counts drive the
// line, word, and char counters.
const laneSize = 32

const (
	lowBytes  = 0x0101010101010101
	highBytes = 0x8080808080808080
	sevenBits = 0x7F7F7F7F7F7F7F7F
)

// Vector is the lane engine. Counting of newlines, word starts, and UTF-8
// lead bytes is branchless mask arithmetic; max-line bookkeeping still
// walks lane bytes one at a time because the reset on every newline is a
// sequential dependency that does not vectorize.
type Vector struct {
	sel       Selection
	prevSpace bool
	lineLen   uint64
}

func newVector(sel Selection) *Vector {
	return &Vector{sel: sel, prevSpace: true}
}

// Process consumes one chunk: full 32-byte lanes through the mask path,
// then the sub-lane tail through the scalar per-byte loop on the same
// carried state, so results are identical to the scalar engine for any
// chunking.
func (e *Vector) Process(chunk []byte, c *Counts) {
	if e.sel.Bytes {
		c.Bytes += uint64(len(chunk))
	}
	i := 0
	for ; i+laneSize <= len(chunk); i += laneSize {
		lane := chunk[i : i+laneSize : i+laneSize]
		if e.sel.Lines {
			c.Lines += uint64(bits.OnesCount32(eqMask32(lane, '\n')))
		}
		if e.sel.Words {
			ws := whitespaceMask32(lane)
			carry := uint32(0)
			if e.prevSpace {
				carry = 1
			}
			// A word starts where a non-space byte follows a space byte
			// (or the carried space bit at lane position 0).
			starts := ^ws & ((ws << 1) | carry)
			c.Words += uint64(bits.OnesCount32(starts))
			e.prevSpace = ws>>(laneSize-1)&1 != 0
		} else {
			e.prevSpace = spaceTable[lane[laneSize-1]]
		}
		if e.sel.Chars {
			c.Chars += uint64(bits.OnesCount32(leadMask32(lane)))
		}
		if e.sel.MaxLineLength {
			e.lineLen = scanLineLengths(lane, c, e.sel.Chars, e.lineLen)
		}
	}
	e.prevSpace, e.lineLen = scanBytes(chunk[i:], c, tailSelection(e.sel), e.prevSpace, e.lineLen)
}

// Finalize folds a still-open final line into MaxLineLength. Call exactly
// once, after the last chunk of the stream.
func (e *Vector) Finalize(c *Counts) {
	if e.sel.MaxLineLength && e.lineLen > c.MaxLineLength {
		c.MaxLineLength = e.lineLen
	}
}

// tailSelection is the selection used for the sub-lane tail: everything but
// byte counting, which Process already added for the whole chunk.
func tailSelection(sel Selection) Selection {
	sel.Bytes = false
	return sel
}

// scanLineLengths applies only the max-line bookkeeping to one lane: fold
// and reset on newline, otherwise extend the running length by code points
// (chars enabled) or bytes. Lines, Words, and Chars were already counted
// from the lane masks.
func scanLineLengths(lane []byte, c *Counts, chars bool, lineLen uint64) uint64 {
	for _, b := range lane {
		if b == '\n' {
			if lineLen > c.MaxLineLength {
				c.MaxLineLength = lineLen
			}
			lineLen = 0
			continue
		}
		if !chars || isUTF8Lead(b) {
			lineLen++
		}
	}
	return lineLen
}

// eqMask32 builds a 32-bit mask with bit k set iff lane[k] == ch, using the
// zero-byte test over four 64-bit words.
func eqMask32(lane []byte, ch byte) uint32 {
	pat := uint64(ch) * lowBytes
	var m uint32
	for w := 0; w < 4; w++ {
		q := binary.LittleEndian.Uint64(lane[w*8:]) ^ pat
		m |= uint32(moveMask8(zeroByteHigh(q))) << (8 * w)
	}
	return m
}

// whitespaceMask32 builds a 32-bit mask of the six ASCII whitespace bytes.
// The six equality tests are OR-ed per word before the bit gather.
func whitespaceMask32(lane []byte) uint32 {
	var m uint32
	for w := 0; w < 4; w++ {
		q := binary.LittleEndian.Uint64(lane[w*8:])
		h := zeroByteHigh(q^(' '*lowBytes)) |
			zeroByteHigh(q^('\n'*lowBytes)) |
			zeroByteHigh(q^('\t'*lowBytes)) |
			zeroByteHigh(q^('\r'*lowBytes)) |
			zeroByteHigh(q^('\v'*lowBytes)) |
			zeroByteHigh(q^('\f'*lowBytes))
		m |= uint32(moveMask8(h)) << (8 * w)
	}
	return m
}

// leadMask32 builds a 32-bit mask of UTF-8 lead bytes (everything that is
// not a 10xxxxxx continuation byte). A byte is a continuation byte iff its
// top bit is set and the next bit is clear.
func leadMask32(lane []byte) uint32 {
	var cont uint32
	for w := 0; w < 4; w++ {
		q := binary.LittleEndian.Uint64(lane[w*8:])
		h := q & ^(q << 1) & highBytes
		cont |= uint32(moveMask8(h)) << (8 * w)
	}
	return ^cont
}

// zeroByteHigh sets bit 7 of every byte of q that is zero; all other bits
// come out clear. The per-byte add cannot carry across byte lanes, so the
// test is exact for every byte independently.
func zeroByteHigh(q uint64) uint64 {
	return ^(((q & sevenBits) + sevenBits) | q | sevenBits)
}

// moveMask8 gathers the high bit of each of the eight bytes into the low
// eight bits of the result, byte 0 to bit 0.
func moveMask8(high uint64) uint64 {
	return (high >> 7) * 0x0102040810204080 >> 56
}
