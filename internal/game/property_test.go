package game

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestScoreHistory_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("history never exceeds the retention cap", prop.ForAll(
		func(samples []bool) bool {
			var s Score
			for _, up := range samples {
				s.record(up, 1)
			}
			return len(s.History) <= historyCap
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("score only advances, never regresses", prop.ForAll(
		func(samples []bool) bool {
			var s Score
			var prev uint32
			for _, up := range samples {
				s.record(up, 1)
				if s.Score < prev {
					return false
				}
				prev = s.Score
			}
			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("most recent sample is always at the front of history", prop.ForAll(
		func(samples []bool) bool {
			if len(samples) == 0 {
				return true
			}
			var s Score
			for _, up := range samples {
				s.record(up, 1)
			}
			return s.Up == samples[len(samples)-1] && s.History[0] == samples[len(samples)-1]
		},
		gen.SliceOf(gen.Bool()).SuchThat(func(s []bool) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t)
}

func TestClock_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("run time never decreases across repeated stop/start cycles", prop.ForAll(
		func(startCount int) bool {
			var c Clock
			var last int64
			for i := 0; i < startCount; i++ {
				c.Start()
				c.Stop()
				rt := int64(c.RunTime())
				if rt < last {
					return false
				}
				last = rt
			}
			return true
		},
		gen.IntRange(0, 20),
	))

	properties.Property("reset always returns a zeroed, inactive clock", prop.ForAll(
		func(_ bool) bool {
			var c Clock
			c.Start()
			c.Stop()
			c.reset()
			return c.RunTime() == 0 && !c.Active()
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestInjectPhase_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("phase is a function only of now relative to [start, start+duration)", prop.ForAll(
		func(start, duration, now uint32) bool {
			inj := Inject{Start: start, Duration: duration}
			phase := inj.PhaseAt(now)
			switch {
			case now < start:
				return phase == PhaseDormant
			case now < start+duration:
				return phase == PhaseActive
			default:
				return phase == PhaseEnded
			}
		},
		gen.UInt32Range(0, 1000),
		gen.UInt32Range(0, 1000),
		gen.UInt32Range(0, 2000),
	))

	properties.TestingRun(t)
}

func TestSmartCombine_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("merging a clone against itself is idempotent", prop.ForAll(
		func(rounds int) bool {
			cfg := buildPropertyFixtureConfig()
			for i := 0; i < rounds; i++ {
				cfg.ApplyProbeResult("alpha", "web", i%2 == 0)
			}
			before := cfg.Clone()
			clone := cfg.Clone()
			cfg.SmartCombine(clone, nil)
			return before.Teams["alpha"].Scores["web"].Score == cfg.Teams["alpha"].Scores["web"].Score
		},
		gen.IntRange(0, 10),
	))

	properties.Property("merge never regresses a team's accumulated score", prop.ForAll(
		func(baseRounds, extraRounds int) bool {
			cfg := buildPropertyFixtureConfig()
			for i := 0; i < baseRounds; i++ {
				cfg.ApplyProbeResult("alpha", "web", true)
			}
			before := cfg.Teams["alpha"].Scores["web"].Score

			clone := cfg.Clone()
			for i := 0; i < extraRounds; i++ {
				clone.ApplyProbeResult("alpha", "web", true)
			}
			cfg.SmartCombine(clone, nil)

			return cfg.Teams["alpha"].Scores["web"].Score >= before
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func buildPropertyFixtureConfig() *Config {
	cfg := NewConfig()
	_ = cfg.AddService(Service{Name: "web", Command: "exit 0", Multiplier: 1})
	_, _ = cfg.AddTeam("alpha")
	return cfg
}
