package landscape

// Wrap maps index onto [0, n), wrapping negative and overflowing values
// around the torus. n must be positive.
func Wrap(index, n int) int {
	r := index % n
	if r < 0 {
		r += n
	}
	return r
}
