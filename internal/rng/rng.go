package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Between returns a random number in the inclusive range [min, max]
// If max < min, min is returned
func Between(g Generator, min, max int) int {
	if max <= min {
		return min
	}

	return min + g.Intn(max-min+1)
}

// Pick returns a random index into a collection of size n
func Pick(g Generator, n int) int {
	if n <= 1 {
		return 0
	}

	return g.Intn(n)
}
