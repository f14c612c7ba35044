// Package testutil provides shared helpers for skirmish tests.
package testutil

import (
	"fmt"
	"sync"
)

// ScriptedSource is a dice Source that replays a fixed sequence of face values.
//
// Faces are 1-based die results: a script of {3, 6} makes the first d6 show 3
// and the second show 6. It is safe for concurrent use.
type ScriptedSource struct {
	mu    sync.Mutex
	faces []int
	next  int
	sides []int
}

// NewScriptedSource returns a ScriptedSource that will produce faces in order.
//
// Postcondition: Draws() == 0.
func NewScriptedSource(faces ...int) *ScriptedSource {
	return &ScriptedSource{faces: append([]int(nil), faces...)}
}

// Intn returns the next scripted face minus one.
//
// Precondition: n > 0; the script must not be exhausted and the next face
// must lie in [1, n]. Violations panic so a mis-scripted test fails loudly.
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		panic("testutil: Intn called with n <= 0")
	}
	if s.next >= len(s.faces) {
		panic(fmt.Sprintf("testutil: scripted source exhausted after %d draws", s.next))
	}
	face := s.faces[s.next]
	if face < 1 || face > n {
		panic(fmt.Sprintf("testutil: scripted face %d at draw %d is outside [1, %d]", face, s.next, n))
	}
	s.next++
	s.sides = append(s.sides, n)
	return face - 1
}

// Draws returns the number of values consumed so far.
func (s *ScriptedSource) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Sides returns the n passed to each Intn call, in order.
func (s *ScriptedSource) Sides() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.sides...)
}

// CycleSource is a dice Source that repeats one face for every draw, clamped
// into [1, n].
type CycleSource struct{ Face int }

// Intn returns min(max(Face, 1), n) - 1.
func (c CycleSource) Intn(n int) int {
	f := c.Face
	if f < 1 {
		f = 1
	}
	if f > n {
		f = n
	}
	return f - 1
}
