package qsim

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// Counts maps an observed bit-string to the number of shots that
// produced it.
type Counts map[string]int

// Keys returns the observed bit-strings in ascending order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the number of shots the counts cover.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// String renders one outcome per line, sorted by bit-string.
func (c Counts) String() string {
	lines := make([]string, 0, len(c))
	for _, k := range c.Keys() {
		lines = append(lines, fmt.Sprintf("%s: %d", k, c[k]))
	}
	return strings.Join(lines, "\n")
}

/*
Sampler draws repeated independent measurement shots from a prepared
state. Every shot collapses a private copy of the superposition, so the
prepared state survives sampling untouched and shots never interact.

The random source is explicit and seedable for reproducible runs. With
more than one worker the shot budget is split across goroutines, each
drawing from its own source seeded off the sampler's, so trials stay
independent without sharing a generator.
*/
type Sampler struct {
	mu      sync.Mutex
	rng     *rand.Rand
	shots   int
	workers int
}

// NewSampler builds a sampler from cfg; nil selects NewConfig defaults.
func NewSampler(cfg *Config) *Sampler {
	if cfg == nil {
		cfg = NewConfig()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	shots := cfg.Shots
	if shots == 0 {
		shots = NewConfig().Shots
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Sampler{
		rng:     rand.New(rand.NewSource(seed)),
		shots:   shots,
		workers: workers,
	}
}

// Sample runs the configured default number of shots.
func (sp *Sampler) Sample(state *State) (Counts, error) {
	return sp.Run(state, sp.shots)
}

/*
Run performs shots independent measurement trials against state and
returns how often each outcome was observed.

Shots must be positive, and at least one qubit must have been scheduled
via Measure or MeasureAll; both are usage errors with no implicit
default. Each trial measures the scheduled qubits in ascending index
order, collapsing a private copy of the superposition after every
outcome, and contributes one result string: the full register when the
all-flag is set, otherwise one character per measured qubit. The state
passed in is never mutated.
*/
func (sp *Sampler) Run(state *State, shots int) (Counts, error) {
	if shots <= 0 {
		return nil, errors.New("qsim: shots must be a positive integer")
	}
	if state.plan.Empty() {
		return nil, errors.New("qsim: no measurements specified, use Measure or MeasureAll first")
	}

	targets := state.plan.Targets(state.nQubits)
	if state.plan.All() {
		errnie.Info("Running %d measurements on all qubits...", shots)
	} else {
		errnie.Info("Running %d measurements on qubits %v...", shots, targets)
	}

	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.workers == 1 {
		counts := make(Counts)
		for i := 0; i < shots; i++ {
			counts[sp.shot(state, targets, sp.rng)]++
		}
		return counts, nil
	}
	return sp.runParallel(state, targets, shots), nil
}

/*
shot runs one trial: clone the superposition, measure each target qubit
in ascending order, collapse after each outcome, and return the
observed bit-string.

Per qubit, the marginal probability of outcome 0 is the probability
mass of entries with that bit clear; a uniform draw u yields outcome 1
iff u >= P(0). Collapse discards every entry inconsistent with the
outcome and rescales the survivors by 1/√p. A numerically zero branch
probability leaves nothing to rescale, so the division is skipped
rather than performed.
*/
func (sp *Sampler) shot(state *State, targets []int, rng *rand.Rand) string {
	amps := state.amplitudes.Clone()

	outcome := make([]byte, state.nQubits)
	for i := range outcome {
		outcome[i] = '0'
	}

	for _, qubit := range targets {
		prob0 := amps.Fold(func(b BasisState, a complex128) float64 {
			if b.Bit(qubit) != 0 {
				return 0
			}
			mag := cmplx.Abs(a)
			return mag * mag
		})

		observed := 0
		if rng.Float64() >= prob0 {
			observed = 1
		}
		outcome[qubit] = byte('0' + observed)

		prob := prob0
		if observed == 1 {
			prob = 1.0 - prob0
		}

		amps.Filter(func(b BasisState, _ complex128) bool {
			return b.Bit(qubit) == observed
		})
		if prob > 0 {
			amps.Scale(complex(1/math.Sqrt(prob), 0))
		}
	}

	if state.plan.All() {
		return string(outcome)
	}
	var sb strings.Builder
	for _, qubit := range targets {
		sb.WriteByte(outcome[qubit])
	}
	return sb.String()
}

// runParallel splits the shot budget across the configured workers and
// merges their partial counts. Worker sources are seeded from the
// sampler's source before the goroutines start.
func (sp *Sampler) runParallel(state *State, targets []int, shots int) Counts {
	var wg sync.WaitGroup
	partials := make([]Counts, sp.workers)

	share := shots / sp.workers
	extra := shots % sp.workers

	for w := 0; w < sp.workers; w++ {
		n := share
		if w < extra {
			n++
		}
		if n == 0 {
			continue
		}
		rng := rand.New(rand.NewSource(sp.rng.Int63()))

		wg.Add(1)
		go func(w, n int, rng *rand.Rand) {
			defer wg.Done()
			counts := make(Counts)
			for i := 0; i < n; i++ {
				counts[sp.shot(state, targets, rng)]++
			}
			partials[w] = counts
		}(w, n, rng)
	}
	wg.Wait()

	merged := make(Counts)
	for _, partial := range partials {
		for k, n := range partial {
			merged[k] += n
		}
	}
	return merged
}

// Run samples a prepared state with a fresh, time-seeded sampler.
func Run(state *State, shots int) (Counts, error) {
	return NewSampler(nil).Run(state, shots)
}
