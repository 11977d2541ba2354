//go:build amd64

package counter

import "golang.org/x/sys/cpu"

// VectorAvailable reports whether this host supports the vector engine.
// The lane kernel needs fast 32-byte loads and mask arithmetic, which maps
// onto AVX2; without it the scalar engine wins.
func VectorAvailable() bool {
	return cpu.X86.HasAVX2
}
