// Package pricing holds the placeholder fare policy. Reservations are priced with a
// uniformly random amount; there is no fare calculation behind it.
package pricing

import (
	"fmt"
	"math/rand/v2"
)

const (
	MinCents int64 = 10000
	MaxCents int64 = 99900
)

type Pricer interface {
	// Price returns a total in cents.
	Price() int64
}

type RandomPricer struct {
	rnd *rand.Rand
}

// NewRandomPricer uses src when given, otherwise the runtime's random source.
func NewRandomPricer(src rand.Source) *RandomPricer {
	p := &RandomPricer{}
	if src != nil {
		p.rnd = rand.New(src)
	}
	return p
}

func (p *RandomPricer) Price() int64 {
	span := MaxCents - MinCents + 1
	if p.rnd == nil {
		return MinCents + rand.Int64N(span)
	}
	return MinCents + p.rnd.Int64N(span)
}

// Format renders cents as a decimal amount with exactly two fraction digits.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

var _ Pricer = (*RandomPricer)(nil)
