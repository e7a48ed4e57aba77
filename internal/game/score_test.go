package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyProbeResultAccumulatesScore(t *testing.T) {
	cfg := newFixtureConfig(t)

	cfg.ApplyProbeResult("alpha", "web", true)
	cfg.ApplyProbeResult("alpha", "db", false)

	score := cfg.Teams["alpha"].Scores["web"]
	assert.True(t, score.Up)
	assert.Equal(t, uint32(1), score.Score)
	assert.Equal(t, []bool{true}, score.History)

	downScore := cfg.Teams["alpha"].Scores["db"]
	assert.False(t, downScore.Up)
	assert.Equal(t, uint32(0), downScore.Score)
}

func TestApplyProbeResultHistoryBounded(t *testing.T) {
	cfg := newFixtureConfig(t)
	for i := 0; i < 25; i++ {
		cfg.ApplyProbeResult("alpha", "web", i%2 == 0)
	}
	assert.LessOrEqual(t, len(cfg.Teams["alpha"].Scores["web"].History), 10)
	// Newest sample (i=24, even => true) is at the front.
	assert.True(t, cfg.Teams["alpha"].Scores["web"].History[0])
}

func TestApplyProbeResultDroppedWhenTeamOrServiceMissing(t *testing.T) {
	cfg := newFixtureConfig(t)

	// Should not panic, should be a silent no-op.
	cfg.ApplyProbeResult("ghost-team", "web", true)
	cfg.ApplyProbeResult("alpha", "ghost-service", true)
}

func TestApplyProbeResultMultiplierScaling(t *testing.T) {
	cfg := NewConfig()
	_ = cfg.AddService(Service{Name: "web", Command: "exit 0", Multiplier: 5})
	_, _ = cfg.AddTeam("alpha")

	cfg.ApplyProbeResult("alpha", "web", true)
	assert.Equal(t, uint32(5), cfg.Teams["alpha"].Scores["web"].Score)
}
