// Package random supplies uniform values in caller-given ranges.
//
// Every consumer takes a [Source] explicitly so tests can inject a
// deterministic [Sequence] instead of a seeded generator.
package random

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source returns values drawn uniformly from [low, high).
type Source interface {
	Uniform(low, high float64) float64
}

// Generator is a seeded PCG-backed Source.
type Generator struct {
	src rand.Source
}

// New returns a Generator seeded with seed. Equal seeds produce equal streams.
func New(seed int64) *Generator {
	s := uint64(seed)
	return &Generator{src: rand.NewPCG(s, s^0x9e3779b97f4a7c15)}
}

func (g *Generator) Uniform(low, high float64) float64 {
	if high <= low {
		return low
	}
	return distuv.Uniform{Min: low, Max: high, Src: g.src}.Rand()
}

// Sequence replays fixed fractions in [0, 1], cycling when exhausted.
// Uniform(low, high) maps fraction t to low + t*(high-low).
type Sequence struct {
	Fractions []float64
	next      int
}

// NewSequence returns a Sequence over the given fractions.
func NewSequence(fractions ...float64) *Sequence {
	return &Sequence{Fractions: fractions}
}

// Fixed returns a Sequence that always yields fraction t.
func Fixed(t float64) *Sequence {
	return NewSequence(t)
}

func (s *Sequence) Uniform(low, high float64) float64 {
	if len(s.Fractions) == 0 {
		return low
	}
	t := s.Fractions[s.next%len(s.Fractions)]
	s.next++
	return low + t*(high-low)
}

// Calls reports how many values have been drawn.
func (s *Sequence) Calls() int { return s.next }
