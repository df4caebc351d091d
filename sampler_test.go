package qsim

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

func seededSampler(seed int64) *Sampler {
	return NewSampler(&Config{Seed: seed, Workers: 1})
}

func TestRunInputValidation(t *testing.T) {
	Convey("Given a prepared state", t, func() {
		s := New(2, 0).X(0).MeasureAll()

		Convey("When running with zero shots", func() {
			counts, err := Run(s, 0)

			Convey("Then the run should fail before producing counts", func() {
				So(err, ShouldNotBeNil)
				So(counts, ShouldBeNil)
			})
		})

		Convey("When running with negative shots", func() {
			_, err := Run(s, -5)

			Convey("Then the run should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a state with no scheduled measurement", t, func() {
		s := New(2, 0).H(0)

		Convey("When running", func() {
			counts, err := Run(s, 100)

			Convey("Then the run should fail instead of taking a default", func() {
				So(err, ShouldNotBeNil)
				So(counts, ShouldBeNil)
			})
		})
	})
}

func TestDeterministicCircuit(t *testing.T) {
	Convey("Given two qubits with X applied three times to qubit 0", t, func() {
		s := New(2, 0).X(0).X(0).X(0).MeasureAll()

		Convey("When running a single shot", func() {
			counts, err := seededSampler(1).Run(s, 1)

			Convey("Then the only outcome should be 10", func() {
				So(err, ShouldBeNil)
				So(counts, ShouldResemble, Counts{"10": 1})
			})
		})
	})
}

func TestBellPairSampling(t *testing.T) {
	Convey("Given a Bell pair", t, func() {
		s := New(2, 0).H(0).CX(0, 1).MeasureAll()

		Convey("When running 1000 shots", func() {
			counts, err := seededSampler(42).Run(s, 1000)
			So(err, ShouldBeNil)
			t.Log(spew.Sdump(counts))

			Convey("Then only the entangled outcomes should ever appear", func() {
				for outcome := range counts {
					So(outcome, ShouldBeIn, []string{"00", "11"})
				}
			})

			Convey("Then both outcomes should appear near half the time", func() {
				// 3σ band of a fair binomial over 1000 trials
				So(counts["00"], ShouldBeBetween, 500-3*16, 500+3*16)
				So(counts["11"], ShouldBeBetween, 500-3*16, 500+3*16)
				So(counts.Total(), ShouldEqual, 1000)
			})
		})
	})
}

func TestSamplingConvergence(t *testing.T) {
	Convey("Given a single qubit in equal superposition", t, func() {
		s := New(1, 0).H(0).MeasureAll()

		Convey("When running 10000 shots", func() {
			counts, err := seededSampler(7).Run(s, 10000)
			So(err, ShouldBeNil)

			Convey("Then each outcome should land within 3σ of one half", func() {
				sigma := math.Sqrt(10000 * 0.25)
				So(float64(counts["0"]), ShouldBeBetween, 5000-3*sigma, 5000+3*sigma)
				So(float64(counts["1"]), ShouldBeBetween, 5000-3*sigma, 5000+3*sigma)
			})
		})
	})
}

func TestPartialMeasurement(t *testing.T) {
	Convey("Given a two-qubit state with only qubit 1 scheduled", t, func() {
		s := New(2, 0).X(1).H(0).Measure(1)

		Convey("When running", func() {
			counts, err := seededSampler(3).Run(s, 50)
			So(err, ShouldBeNil)

			Convey("Then results should hold one character per measured qubit", func() {
				So(counts, ShouldResemble, Counts{"1": 50})
			})
		})
	})

	Convey("Given measure-all on top of individual marks", t, func() {
		s := New(2, 0).X(0).Measure(0).MeasureAll()

		Convey("When running", func() {
			counts, err := seededSampler(3).Run(s, 10)
			So(err, ShouldBeNil)

			Convey("Then the all-flag should dominate and report the full register", func() {
				So(counts, ShouldResemble, Counts{"10": 10})
			})
		})
	})
}

func TestRunLeavesStateUntouched(t *testing.T) {
	Convey("Given a prepared superposition", t, func() {
		s := New(2, 1).H(0).CX(0, 1).MeasureAll()
		snapshot := s.Amplitudes().Clone()

		Convey("When sampling it heavily", func() {
			_, err := seededSampler(11).Run(s, 500)
			So(err, ShouldBeNil)

			Convey("Then the superposition should be exactly as prepared", func() {
				amplitudesShouldMatch(s.Amplitudes(), snapshot)
			})

			Convey("Then the plan and register should be unchanged", func() {
				So(s.Plan().All(), ShouldBeTrue)
				So(s.cbits.String(), ShouldEqual, "0")
			})
		})
	})
}

func TestSamplerDeterminism(t *testing.T) {
	Convey("Given two samplers with the same seed", t, func() {
		s := New(2, 0).H(0).CX(0, 1).MeasureAll()

		Convey("When both run the same shot budget", func() {
			first, err1 := seededSampler(99).Run(s, 200)
			second, err2 := seededSampler(99).Run(s, 200)

			Convey("Then the counts should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})
	})
}

func TestParallelSampling(t *testing.T) {
	Convey("Given a sampler with several workers", t, func() {
		s := New(2, 0).H(0).CX(0, 1).MeasureAll()
		sampler := NewSampler(&Config{Seed: 5, Workers: 4})

		Convey("When running 1000 shots", func() {
			counts, err := sampler.Run(s, 1000)
			So(err, ShouldBeNil)

			Convey("Then every shot should be accounted for", func() {
				So(counts.Total(), ShouldEqual, 1000)
			})

			Convey("Then the outcome set should match the entangled distribution", func() {
				for outcome := range counts {
					So(outcome, ShouldBeIn, []string{"00", "11"})
				}
			})
		})
	})
}

func TestSampleUsesConfiguredShots(t *testing.T) {
	Convey("Given a sampler configured for 64 shots", t, func() {
		s := New(1, 0).MeasureAll()
		sampler := NewSampler(&Config{Seed: 1, Shots: 64})

		Convey("When calling Sample", func() {
			counts, err := sampler.Sample(s)

			Convey("Then the default budget should be spent", func() {
				So(err, ShouldBeNil)
				So(counts, ShouldResemble, Counts{"0": 64})
			})
		})
	})
}

func TestCountsRendering(t *testing.T) {
	Convey("Given counts over unordered outcomes", t, func() {
		counts := Counts{"11": 480, "00": 520}

		Convey("Then keys should iterate in ascending order", func() {
			So(counts.Keys(), ShouldResemble, []string{"00", "11"})
		})

		Convey("Then the rendering should be sorted by bit-string", func() {
			So(counts.String(), ShouldEqual, "00: 520\n11: 480")
		})
	})
}
