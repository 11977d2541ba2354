package counter

// Mode selects the execution strategy for a run. It is resolved once before
// any stream is scanned and never changes mid-run.
type Mode int

const (
	ModeScalar Mode = iota
	ModeVector
)

func (m Mode) String() string {
	if m == ModeVector {
		return "vector"
	}
	return "scalar"
}

// Engine scans one input stream. Process may be called any number of times
// with consecutive chunks; Finalize must be called exactly once after the
// last chunk (including after a truncating read error, so partial counts
// are still correct). Engines are single-stream: construct a fresh one per
// input.
type Engine interface {
	Process(chunk []byte, c *Counts)
	Finalize(c *Counts)
}

// New returns a fresh engine for one stream. Callers should only pass
// ModeVector when VectorAvailable reports true.
func New(mode Mode, sel Selection) Engine {
	if mode == ModeVector {
		return newVector(sel)
	}
	return newScalar(sel)
}
