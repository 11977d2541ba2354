// Package output renders count rows. Every selected counter is printed
// right-aligned to seven columns in a fixed order (lines, words, bytes,
// chars, max line length) so rows from different inputs line up, matching
// the layout wc users expect.
package output

import (
	"bufio"
	"fmt"
	"io"

	"fastawc/counter"
)

type Writer struct {
	buf *bufio.Writer
}

func New(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriterSize(w, 64*1024)}
}

// PrintCounts writes one result row. The label follows the columns; an
// empty label (standard input) still produces a row. Column order is fixed
// regardless of the order flags were given on the command line.
func (w *Writer) PrintCounts(c counter.Counts, label string, sel counter.Selection) error {
	cols := make([]uint64, 0, 5)
	if sel.Lines {
		cols = append(cols, c.Lines)
	}
	if sel.Words {
		cols = append(cols, c.Words)
	}
	if sel.Bytes {
		cols = append(cols, c.Bytes)
	}
	if sel.Chars {
		cols = append(cols, c.Chars)
	}
	if sel.MaxLineLength {
		cols = append(cols, c.MaxLineLength)
	}
	for _, v := range cols {
		fmt.Fprintf(w.buf, "%7d ", v)
	}
	w.buf.WriteString(label)
	return w.buf.WriteByte('\n')
}

func (w *Writer) Flush() error {
	return w.buf.Flush()
}
