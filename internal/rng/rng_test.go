package rng

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixed int

func (f fixed) Intn(n int) int {
	return int(f) % n
}

func TestBetween(t *testing.T) {
	a := assert.New(t)

	a.Equal(5, Between(fixed(0), 5, 30))
	a.Equal(30, Between(fixed(25), 5, 30))
	a.Equal(-50, Between(fixed(0), -50, 125))
	a.Equal(7, Between(fixed(3), 7, 7))
	a.Equal(7, Between(fixed(3), 7, 2))

	r := rand.New(rand.NewSource(0)) // nolint:gosec
	for i := 0; i < 1000; i++ {
		v := Between(r, -20, 20)
		a.True(v >= -20 && v <= 20)
	}
}

func TestPick(t *testing.T) {
	a := assert.New(t)
	a.Equal(0, Pick(fixed(4), 1))
	a.Equal(0, Pick(fixed(4), 0))
	a.Equal(1, Pick(fixed(4), 3))
}
