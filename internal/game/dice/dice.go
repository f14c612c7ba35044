// Package dice provides the randomness abstraction, pool types, and the
// pool-to-final-value resolution pipeline used by the skirmish combat formulas.
package dice

import "fmt"

// TagRerolled marks a die whose value was replaced by a reroll.
const TagRerolled = "rerolled"

// MaxPoolDice is the largest number of individual dice a parsed or loaded
// pool may hold.
const MaxPoolDice = 1000

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Draw returns a uniformly distributed face value in [1, sides].
//
// Precondition: src must be non-nil; sides > 0.
// Postcondition: 1 <= return value <= sides.
func Draw(src Source, sides int) int {
	return src.Intn(sides) + 1
}

// DieSpec describes one homogeneous group of dice within a pool.
type DieSpec struct {
	Sides int `yaml:"sides"`
	Count int `yaml:"count"`
}

// DieRoll is one instantiated die.
//
// Tags records provenance events in the order they happened. A DieRoll is
// owned by the Result that created it.
type DieRoll struct {
	Sides int      `yaml:"sides"`
	Value int      `yaml:"value"`
	Tags  []string `yaml:"tags,omitempty"`
}

// Rerolled reports whether the die carries the rerolled tag.
func (d DieRoll) Rerolled() bool {
	for _, t := range d.Tags {
		if t == TagRerolled {
			return true
		}
	}
	return false
}

// Pool is an ordered collection of dice groups rolled together.
type Pool []DieSpec

// Size returns the total number of individual dice in the pool.
//
// Postcondition: Returns sum(Count) over all groups with Count > 0.
func (p Pool) Size() int {
	n := 0
	for _, s := range p {
		if s.Count > 0 {
			n += s.Count
		}
	}
	return n
}

// String renders the pool in expression notation, e.g. "2d6+1d8".
//
// A pool with no groups has no expression form and renders as "", which
// ParsePool rejects. Every pool returned by ParsePool renders back to an
// equal pool.
func (p Pool) String() string {
	s := ""
	for i, spec := range p {
		if i > 0 {
			s += "+"
		}
		s += fmt.Sprintf("%dd%d", spec.Count, spec.Sides)
	}
	return s
}

// Expand turns a pool into the sides of each individual die, in pool order
// followed by within-group repetition.
//
// Postcondition: len(result) == pool.Size().
func Expand(pool []DieSpec) []int {
	sides := make([]int, 0, Pool(pool).Size())
	for _, spec := range pool {
		for i := 0; i < spec.Count; i++ {
			sides = append(sides, spec.Sides)
		}
	}
	return sides
}
