package output

import (
	"io"
	"testing"

	"fastawc/counter"
)

func BenchmarkPrintCounts(b *testing.B) {
	w := New(io.Discard)
	sel := counter.Selection{Lines: true, Words: true, Bytes: true, Chars: true, MaxLineLength: true}
	c := counter.Counts{Lines: 12345, Words: 67890, Bytes: 1 << 20, Chars: 1 << 19, MaxLineLength: 240}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = w.PrintCounts(c, "bench.txt", sel)
	}
	_ = w.Flush()
}
