// Package random provides the production shuffle source.
package random

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"

	"github.com/khempel0430/solitaire/internal/domain"
)

type source struct{ r *rand.Rand }

func (s source) Intn(n int) int { return s.r.IntN(n) }

// New returns a ChaCha8 generator seeded from the operating system. Each game
// gets its own generator so deals never share a stream.
func New() (domain.RNG, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoEntropy, err)
	}
	return source{r: rand.New(rand.NewChaCha8(seed))}, nil
}

// Seeded returns a reproducible generator for replays and tests.
func Seeded(seed [32]byte) domain.RNG {
	return source{r: rand.New(rand.NewChaCha8(seed))}
}
