package game

import "math/rand/v2"

// Rand is the random source used by round settlement. Tests substitute a
// deterministic implementation.
type Rand interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

type defaultRand struct{}

func (defaultRand) Intn(n int) int   { return rand.IntN(n) }
func (defaultRand) Float64() float64 { return rand.Float64() }

// NewRand returns the process-wide default random source.
func NewRand() Rand { return defaultRand{} }
