package counter

// spaceTable marks the six ASCII whitespace bytes: space, \n, \t, \r, \v, \f.
// Word boundaries are defined by these bytes only; multi-byte Unicode spaces
// are intentionally not word separators.
var spaceTable = [256]bool{
	' ':  true,
	'\n': true,
	'\t': true,
	'\r': true,
	'\v': true,
	'\f': true,
}

func isSpace(b byte) bool {
	return spaceTable[b]
}

// isUTF8Lead reports whether b starts a code point: ASCII or a multi-byte
// lead byte. Continuation bytes (10xxxxxx) are excluded, so summing lead
// bytes over a valid UTF-8 stream counts code points.
func isUTF8Lead(b byte) bool {
	return b&0xC0 != 0x80
}
