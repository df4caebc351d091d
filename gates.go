package qsim

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/theapemachine/errnie"
)

// X applies the NOT gate to qubit j: every configuration has bit j
// flipped, amplitudes untouched. Flipping is a bijection on
// configurations, so no two outputs collide.
func (s *State) X(j int) *State {
	s.checkQubit(j)
	errnie.Info("-> Applying X gate to qubit %d", j)
	s.amplitudes.Transform(func(b BasisState, a complex128) (BasisState, complex128) {
		return b.Flip(j), a
	})
	return s
}

// CX applies the controlled-NOT gate: configurations with bit control
// set have bit target flipped, the rest pass through. Amplitudes are
// untouched. Control and target must be distinct in-range indices.
func (s *State) CX(control, target int) *State {
	s.checkQubit(control)
	s.checkQubit(target)
	if control == target {
		panic(fmt.Sprintf("qsim: CX control and target must differ, got %d", control))
	}
	errnie.Info("-> Applying CX gate with control %d and target %d", control, target)
	s.amplitudes.Transform(func(b BasisState, a complex128) (BasisState, complex128) {
		if b.Bit(control) == 0 {
			return b, a
		}
		return b.Flip(target), a
	})
	return s
}

// S applies the phase gate: amplitudes of configurations with bit j set
// are multiplied by i. Four applications are the identity.
func (s *State) S(j int) *State {
	s.checkQubit(j)
	errnie.Info("-> Applying S gate to qubit %d", j)
	s.amplitudes.Transform(func(b BasisState, a complex128) (BasisState, complex128) {
		if b.Bit(j) == 1 {
			a *= 1i
		}
		return b, a
	})
	return s
}

// T applies the π/8 gate: amplitudes of configurations with bit j set
// pick up an e^{iπ/4} phase. Eight applications are the identity.
func (s *State) T(j int) *State {
	s.checkQubit(j)
	errnie.Info("-> Applying T gate to qubit %d", j)
	phase := cmplx.Exp(complex(0, math.Pi/4))
	s.amplitudes.Transform(func(b BasisState, a complex128) (BasisState, complex128) {
		if b.Bit(j) == 1 {
			a *= phase
		}
		return b, a
	})
	return s
}

/*
H applies the Hadamard gate to qubit j, the only branching gate here.
Each entry splits into the bit-0 and bit-1 configurations at 1/√2
weight, the latter negated when bit j was already set. Branches landing
on the same configuration merge by complex addition; the merge is what
keeps the entry count bounded by 2^n and makes H its own inverse.
*/
func (s *State) H(j int) *State {
	s.checkQubit(j)
	errnie.Info("-> Applying Hadamard gate to qubit %d", j)
	norm := complex(1/math.Sqrt2, 0)
	s.amplitudes.Expand(func(b BasisState, a complex128) []Entry {
		sign := complex128(1)
		if b.Bit(j) == 1 {
			sign = -1
		}
		return []Entry{
			{Basis: b.WithBit(j, 0), Amplitude: a * norm},
			{Basis: b.WithBit(j, 1), Amplitude: a * norm * sign},
		}
	})
	return s
}
