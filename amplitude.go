package qsim

import (
	"math/cmplx"
	"sort"
)

// Entry pairs a basis configuration with its complex amplitude.
type Entry struct {
	Basis     BasisState
	Amplitude complex128
}

/*
AmplitudeMap is the sparse superposition: a map from basis configuration
to complex amplitude. Whenever the state is settled (after a gate
finishes, or after a measurement collapse) the keys are unique, because
entries landing on the same configuration are merged by complex
addition, and the squared magnitudes sum to one. Amplitudes that cancel
to zero through interference stay in the map; only display and
probability queries filter them out.
*/
type AmplitudeMap struct {
	entries map[BasisState]complex128
}

// newGroundMap builds the initial superposition: the all-zero
// configuration with amplitude one.
func newGroundMap(nQubits int) *AmplitudeMap {
	return &AmplitudeMap{
		entries: map[BasisState]complex128{GroundBasis(nQubits): 1},
	}
}

// Len returns the number of entries currently held.
func (m *AmplitudeMap) Len() int { return len(m.entries) }

// Amplitude returns the amplitude attached to basis b, zero if absent.
func (m *AmplitudeMap) Amplitude(b BasisState) complex128 {
	return m.entries[b]
}

/*
Transform rewrites every entry through fn and merges outputs that share
a basis configuration by complex addition. Permutation and phase gates
are one-in one-out, but merging is applied unconditionally so the
uniqueness invariant holds no matter what fn returns.
*/
func (m *AmplitudeMap) Transform(fn func(BasisState, complex128) (BasisState, complex128)) {
	next := make(map[BasisState]complex128, len(m.entries))
	for b, a := range m.entries {
		nb, na := fn(b, a)
		next[nb] += na
	}
	m.entries = next
}

/*
Expand rewrites every entry into zero or more entries, then merges by
basis configuration. This is the flatten plus reduce-by-key step that
branching gates require: without the merge, repeated Hadamards would
double the entry count on every call instead of keeping it bounded by
2^n.
*/
func (m *AmplitudeMap) Expand(fn func(BasisState, complex128) []Entry) {
	next := make(map[BasisState]complex128, 2*len(m.entries))
	for b, a := range m.entries {
		for _, e := range fn(b, a) {
			next[e.Basis] += e.Amplitude
		}
	}
	m.entries = next
}

// Fold sums fn over all entries.
func (m *AmplitudeMap) Fold(fn func(BasisState, complex128) float64) float64 {
	total := 0.0
	for b, a := range m.entries {
		total += fn(b, a)
	}
	return total
}

// Norm returns the sum of squared amplitude magnitudes, one within
// floating tolerance for any normalized state.
func (m *AmplitudeMap) Norm() float64 {
	return m.Fold(func(_ BasisState, a complex128) float64 {
		mag := cmplx.Abs(a)
		return mag * mag
	})
}

// Filter keeps only the entries fn accepts.
func (m *AmplitudeMap) Filter(fn func(BasisState, complex128) bool) {
	for b, a := range m.entries {
		if !fn(b, a) {
			delete(m.entries, b)
		}
	}
}

// Scale multiplies every amplitude by factor.
func (m *AmplitudeMap) Scale(factor complex128) {
	for b := range m.entries {
		m.entries[b] *= factor
	}
}

// Clone returns a fully independent copy. Sampling shots collapse
// clones so the prepared superposition is never disturbed.
func (m *AmplitudeMap) Clone() *AmplitudeMap {
	next := make(map[BasisState]complex128, len(m.entries))
	for b, a := range m.entries {
		next[b] = a
	}
	return &AmplitudeMap{entries: next}
}

// Sorted returns the entries ordered by ascending bit-string. Sorted
// order is only needed transiently, for rendering.
func (m *AmplitudeMap) Sorted() []Entry {
	entries := make([]Entry, 0, len(m.entries))
	for b, a := range m.entries {
		entries = append(entries, Entry{Basis: b, Amplitude: a})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Basis < entries[j].Basis
	})
	return entries
}
