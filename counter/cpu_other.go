//go:build !amd64

package counter

// VectorAvailable reports whether this host supports the vector engine.
func VectorAvailable() bool {
	return false
}
