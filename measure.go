package qsim

import (
	"sort"

	"github.com/theapemachine/errnie"
)

/*
MeasurementPlan records which qubits are scheduled for deferred
measurement: a set of individually marked indices plus a measure-all
flag. It holds no amplitude data. Marking never touches the
superposition; the Sampler reads the plan and performs the actual
collapse per shot.
*/
type MeasurementPlan struct {
	qubits map[int]struct{}
	all    bool
}

func newMeasurementPlan() *MeasurementPlan {
	return &MeasurementPlan{qubits: make(map[int]struct{})}
}

// Mark schedules qubit j for measurement. Idempotent.
func (p *MeasurementPlan) Mark(j int) {
	p.qubits[j] = struct{}{}
}

// MarkAll sets the measure-all flag. Once set it dominates the
// individual set: the Sampler reports every qubit.
func (p *MeasurementPlan) MarkAll() {
	p.all = true
}

// All reports the measure-all flag.
func (p *MeasurementPlan) All() bool { return p.all }

// Empty reports whether nothing has been scheduled.
func (p *MeasurementPlan) Empty() bool {
	return !p.all && len(p.qubits) == 0
}

// Targets resolves the ordered list of qubits to measure for a register
// of nQubits: every qubit when the all-flag is set, otherwise the
// individually marked ones in ascending index order. Ascending order is
// load-bearing: each measurement conditions the next collapse.
func (p *MeasurementPlan) Targets(nQubits int) []int {
	if p.all {
		targets := make([]int, nQubits)
		for i := range targets {
			targets[i] = i
		}
		return targets
	}
	targets := make([]int, 0, len(p.qubits))
	for j := range p.qubits {
		targets = append(targets, j)
	}
	sort.Ints(targets)
	return targets
}

func (p *MeasurementPlan) clone() *MeasurementPlan {
	next := newMeasurementPlan()
	for j := range p.qubits {
		next.qubits[j] = struct{}{}
	}
	next.all = p.all
	return next
}

// Measure marks qubit j for deferred measurement; the superposition is
// untouched until Run samples it. The optional cbit names a classical
// register slot, but no outcome is written there: outcomes are reported
// through Run's counts and the register stays all zero.
func (s *State) Measure(j int, cbit ...int) *State {
	s.checkQubit(j)
	errnie.Info("-> Adding measurement for qubit %d", j)
	s.plan.Mark(j)
	return s
}

// MeasureAll marks every qubit for deferred measurement.
func (s *State) MeasureAll() *State {
	errnie.Info("-> Adding measurement for all qubits")
	s.plan.MarkAll()
	return s
}
