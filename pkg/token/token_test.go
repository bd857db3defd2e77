package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	a := assert.New(t)

	token, err := Generate(8)
	a.NoError(err)
	a.Equal(8, len(token))

	token2, err := Generate(8)
	a.NoError(err)
	a.NotEqual(token, token2)

	for _, n := range []int{1, 3, 26, 27, 64} {
		token, err := Generate(n)
		a.NoError(err)
		a.Equal(n, len(token))
		a.Regexp(regexp.MustCompile(`^[A-Za-z0-9_-]+$`), token)
	}

	_, err = Generate(0)
	a.EqualError(err, "length must be > 0")
}
