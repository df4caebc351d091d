package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Display floors: amplitudes below displayFloor are hidden from the
// rendered state, probabilities at or below probFloor are omitted from
// Probabilities. Entries stay in the map either way.
const (
	displayFloor = 1e-10
	probFloor    = 1e-10
)

/*
ClassicalRegister is a fixed array of classical bits, all zero at
construction. No gate or measurement path writes it yet; it exists so a
circuit can declare classical storage up front and is rendered for
inspection only. Measurement outcomes are reported through Run's counts
instead.
*/
type ClassicalRegister []int

func (r ClassicalRegister) String() string {
	var sb strings.Builder
	for _, bit := range r {
		sb.WriteByte(byte('0' + bit))
	}
	return sb.String()
}

/*
State is the simulator aggregate: the sparse superposition, a classical
register, the deferred-measurement plan, and the fixed register sizes.
Gate methods mutate the superposition in place and return the receiver,
so short circuits read as chains:

	bell := qsim.New(2, 0).H(0).CX(0, 1).MeasureAll()
	counts, err := qsim.Run(bell, 1000)
*/
type State struct {
	nQubits int
	nBits   int

	amplitudes *AmplitudeMap
	cbits      ClassicalRegister
	plan       *MeasurementPlan
}

// New constructs a state of nQubits qubits and nBits classical bits in
// the all-zero configuration with amplitude one. Panics unless
// nQubits > 0 and nBits >= 0.
func New(nQubits, nBits int) *State {
	if nQubits <= 0 {
		panic(fmt.Sprintf("qsim: n_qubits must be positive, got %d", nQubits))
	}
	if nBits < 0 {
		panic(fmt.Sprintf("qsim: n_bits must be non-negative, got %d", nBits))
	}
	return &State{
		nQubits:    nQubits,
		nBits:      nBits,
		amplitudes: newGroundMap(nQubits),
		cbits:      make(ClassicalRegister, nBits),
		plan:       newMeasurementPlan(),
	}
}

// NumQubits returns the qubit register size.
func (s *State) NumQubits() int { return s.nQubits }

// NumBits returns the classical register size.
func (s *State) NumBits() int { return s.nBits }

// Amplitudes returns the live superposition.
func (s *State) Amplitudes() *AmplitudeMap { return s.amplitudes }

// Plan returns the deferred-measurement plan.
func (s *State) Plan() *MeasurementPlan { return s.plan }

// Copy returns a fully independent deep copy of the superposition, the
// classical register, and the measurement plan. Every sampling shot
// collapses such a copy, never the original.
func (s *State) Copy() *State {
	return &State{
		nQubits:    s.nQubits,
		nBits:      s.nBits,
		amplitudes: s.amplitudes.Clone(),
		cbits:      append(ClassicalRegister(nil), s.cbits...),
		plan:       s.plan.clone(),
	}
}

// checkQubit panics on an out-of-range index. Gate and measurement
// calls treat this as a precondition violation, not a runtime error.
func (s *State) checkQubit(j int) {
	if j < 0 || j >= s.nQubits {
		panic(fmt.Sprintf("qsim: qubit index %d out of range [0, %d)", j, s.nQubits))
	}
}

// Probabilities returns the probability of observing each basis
// configuration, omitting entries with probability at or below the
// display floor.
func (s *State) Probabilities() map[string]float64 {
	probs := make(map[string]float64, s.amplitudes.Len())
	for _, e := range s.amplitudes.Sorted() {
		mag := cmplx.Abs(e.Amplitude)
		if p := mag * mag; p > probFloor {
			probs[e.Basis.String()] = p
		}
	}
	return probs
}

// String renders the non-negligible amplitudes sorted by bit-string,
// one ket per line, plus the classical register when one was declared.
func (s *State) String() string {
	lines := make([]string, 0, s.amplitudes.Len())
	for _, e := range s.amplitudes.Sorted() {
		if cmplx.Abs(e.Amplitude) > displayFloor {
			lines = append(lines, fmt.Sprintf("%s: %s", e.Basis.Ket(), formatAmplitude(e.Amplitude)))
		}
	}

	var sb strings.Builder
	if len(lines) == 0 {
		sb.WriteString("Quantum state: |0⟩^n (all zero amplitudes)")
	} else {
		sb.WriteString("Quantum state:\n")
		sb.WriteString(strings.Join(lines, "\n"))
	}

	if s.nBits > 0 {
		fmt.Fprintf(&sb, "\n\nClassical register: %s", s.cbits)
	}
	return sb.String()
}

// formatAmplitude renders three decimals, dropping a negligible
// imaginary part so real-valued amplitudes read as plain floats.
func formatAmplitude(a complex128) string {
	if math.Abs(imag(a)) < displayFloor {
		return fmt.Sprintf("%.3f", real(a))
	}
	return fmt.Sprintf("(%.3f%+.3fi)", real(a), imag(a))
}
