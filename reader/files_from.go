package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadFilesFrom reads a NUL-separated list of input names from path, or
// from standard input when path is "-". A final name without a trailing
// NUL is kept; empty entries are dropped.
func ReadFilesFrom(path string) ([]string, error) {
	if path == "-" {
		return readNulSeparated(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open '%s': %w", path, err)
	}
	defer f.Close()
	names, err := readNulSeparated(f)
	if err != nil {
		return nil, fmt.Errorf("reading file list from '%s': %w", path, err)
	}
	return names, nil
}

func readNulSeparated(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(splitNul)
	var names []string
	for sc.Scan() {
		if name := sc.Text(); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// splitNul is a bufio.SplitFunc for NUL-separated records.
func splitNul(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
