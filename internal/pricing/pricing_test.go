package pricing

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomPricer_Range(t *testing.T) {
	twoDecimals := regexp.MustCompile(`^\d{3}\.\d{2}$`)

	for _, p := range []*RandomPricer{NewRandomPricer(nil), NewRandomPricer(rand.NewPCG(1, 2))} {
		for i := 0; i < 5000; i++ {
			cents := p.Price()
			assert.GreaterOrEqual(t, cents, MinCents)
			assert.LessOrEqual(t, cents, MaxCents)
			assert.Regexp(t, twoDecimals, Format(cents))
		}
	}
}

func TestRandomPricer_Deterministic(t *testing.T) {
	a := NewRandomPricer(rand.NewPCG(7, 7))
	b := NewRandomPricer(rand.NewPCG(7, 7))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Price(), b.Price())
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "100.00", Format(10000))
	assert.Equal(t, "999.00", Format(99900))
	assert.Equal(t, "123.05", Format(12305))
	assert.Equal(t, "0.07", Format(7))
	assert.Equal(t, "-1.50", Format(-150))
}
