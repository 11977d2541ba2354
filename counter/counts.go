// Package counter implements the streaming text-statistics engines.
//
// Two engines are provided: a byte-at-a-time scalar engine and a 32-byte
// lane engine built on bitmask/popcount arithmetic. Both consume borrowed,
// read-only chunks of one input stream in order and accumulate into the
// caller's Counts. For any input, any chunking, and any selection the two
// engines produce identical results.
package counter

// Counts holds the aggregates for one input stream. Each field is an
// independent unsigned accumulator; a field is only ever written when the
// corresponding selection flag is set.
type Counts struct {
	Lines         uint64
	Words         uint64
	Bytes         uint64
	Chars         uint64
	MaxLineLength uint64
}

// Accumulate folds another stream's counts into a running total. The four
// additive counters are summed; MaxLineLength takes the running maximum.
func (c *Counts) Accumulate(o Counts) {
	c.Lines += o.Lines
	c.Words += o.Words
	c.Bytes += o.Bytes
	c.Chars += o.Chars
	if o.MaxLineLength > c.MaxLineLength {
		c.MaxLineLength = o.MaxLineLength
	}
}

// Selection names the counters enabled for a run. It is chosen once before
// scanning begins and held constant for every stream.
type Selection struct {
	Lines         bool
	Words         bool
	Bytes         bool
	Chars         bool
	MaxLineLength bool
}

// Any reports whether at least one counter is enabled. An all-false
// selection is legal and makes every scan a no-op.
func (s Selection) Any() bool {
	return s.Lines || s.Words || s.Bytes || s.Chars || s.MaxLineLength
}

// ApplyDefault substitutes the classic lines/words/bytes selection when
// nothing was requested. The engines themselves never default; this is the
// caller's policy.
func (s Selection) ApplyDefault() Selection {
	if s.Any() {
		return s
	}
	return Selection{Lines: true, Words: true, Bytes: true}
}
