package qsim

import (
	"fmt"
	"strings"
)

/*
BasisState is one classical configuration of the qubit register, stored
as an ordered bit sequence. Index 0 is the leftmost character of the
rendered bit-string, matching the zero-padded binary rendering of the
basis index. The value is immutable and comparable, so it doubles as
the key of an AmplitudeMap.
*/
type BasisState string

// GroundBasis returns the all-zero configuration for n qubits.
func GroundBasis(n int) BasisState {
	return BasisState(strings.Repeat("0", n))
}

// Len returns the number of qubits the configuration covers.
func (b BasisState) Len() int { return len(b) }

// Bit returns the value of position i, either 0 or 1.
func (b BasisState) Bit(i int) int {
	if b[i] == '1' {
		return 1
	}
	return 0
}

// Flip returns a copy of b with bit i negated.
func (b BasisState) Flip(i int) BasisState {
	buf := []byte(b)
	if buf[i] == '0' {
		buf[i] = '1'
	} else {
		buf[i] = '0'
	}
	return BasisState(buf)
}

// WithBit returns a copy of b with bit i forced to v.
func (b BasisState) WithBit(i, v int) BasisState {
	buf := []byte(b)
	if v == 0 {
		buf[i] = '0'
	} else {
		buf[i] = '1'
	}
	return BasisState(buf)
}

func (b BasisState) String() string { return string(b) }

// Ket renders the configuration in bra-ket notation, e.g. |10⟩.
func (b BasisState) Ket() string { return fmt.Sprintf("|%s⟩", string(b)) }
