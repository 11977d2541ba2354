package counter

// Scalar is the byte-at-a-time engine. It carries exactly two pieces of
// state across chunk boundaries: whether the previous byte was whitespace
// (true at stream start, so a leading non-space byte opens a word) and the
// length of the line in progress.
type Scalar struct {
	sel       Selection
	prevSpace bool
	lineLen   uint64
}

func newScalar(sel Selection) *Scalar {
	return &Scalar{sel: sel, prevSpace: true}
}

// Process consumes one chunk and updates the enabled counters in c. The
// chunk is borrowed: valid only for the duration of the call.
func (e *Scalar) Process(chunk []byte, c *Counts) {
	if e.sel.Bytes {
		c.Bytes += uint64(len(chunk))
	}
	e.prevSpace, e.lineLen = scanBytes(chunk, c, e.sel, e.prevSpace, e.lineLen)
}

// Finalize folds a still-open final line (no trailing newline) into
// MaxLineLength. Call exactly once, after the last chunk of the stream.
func (e *Scalar) Finalize(c *Counts) {
	if e.sel.MaxLineLength && e.lineLen > c.MaxLineLength {
		c.MaxLineLength = e.lineLen
	}
}

// scanBytes is the per-byte accumulation loop shared by the scalar engine
// and the vector engine's sub-lane tail. Byte counting is handled by the
// callers, once per chunk.
//
// A newline is a code point (it counts toward Chars) but never part of a
// line, so it closes the running line length without extending it.
func scanBytes(chunk []byte, c *Counts, sel Selection, prevSpace bool, lineLen uint64) (bool, uint64) {
	for _, b := range chunk {
		if b == '\n' {
			if sel.Lines {
				c.Lines++
			}
			if sel.Chars {
				c.Chars++
			}
			if sel.MaxLineLength {
				if lineLen > c.MaxLineLength {
					c.MaxLineLength = lineLen
				}
				lineLen = 0
			}
			prevSpace = true
			continue
		}
		space := spaceTable[b]
		if sel.Words && !space && prevSpace {
			c.Words++
		}
		prevSpace = space
		if sel.Chars {
			if isUTF8Lead(b) {
				c.Chars++
				if sel.MaxLineLength {
					lineLen++
				}
			}
		} else if sel.MaxLineLength {
			// Without char counting, line length degrades to byte length.
			lineLen++
		}
	}
	return prevSpace, lineLen
}
