package game

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartCombineAdvancesScoresOnly(t *testing.T) {
	cfg := newFixtureConfig(t)
	clone := cfg.Clone()

	clone.ApplyProbeResult("alpha", "web", true)
	clone.ApplyProbeResult("beta", "db", true)

	cfg.SmartCombine(clone, nil)

	assert.Equal(t, uint32(1), cfg.Teams["alpha"].Scores["web"].Score)
	assert.Equal(t, uint32(1), cfg.Teams["beta"].Scores["db"].Score)
}

func TestSmartCombineIgnoresServiceDeletedOnAuthoritativeSide(t *testing.T) {
	cfg := newFixtureConfig(t)
	clone := cfg.Clone()

	// Probe batch runs against the clone while admin removes "db" on cfg.
	clone.ApplyProbeResult("alpha", "db", true)
	require.NoError(t, cfg.RemoveService("db"))

	cfg.SmartCombine(clone, nil)

	_, stillTracked := cfg.Teams["alpha"].Scores["db"]
	assert.True(t, stillTracked, "stale key persists until a rebuild path runs")
	assert.Equal(t, uint32(0), cfg.Teams["alpha"].Scores["db"].Score, "delete wins: score must not advance")
}

func TestSmartCombineIgnoresTeamDeletedOnAuthoritativeSide(t *testing.T) {
	cfg := newFixtureConfig(t)
	clone := cfg.Clone()

	clone.ApplyProbeResult("beta", "web", true)
	require.NoError(t, cfg.RemoveTeam("beta"))

	cfg.SmartCombine(clone, nil)

	_, exists := cfg.Teams["beta"]
	assert.False(t, exists)
}

func TestSmartCombineIgnoresTeamAddedOnlyInOther(t *testing.T) {
	cfg := newFixtureConfig(t)
	clone := cfg.Clone()
	clone.Teams["gamma"] = NewTeam("gamma", clone.Services)

	cfg.SmartCombine(clone, nil)

	_, exists := cfg.Teams["gamma"]
	assert.False(t, exists, "a team only present in the stale clone must not resurrect")
}

func TestSmartCombinePropagatesInjectCompletion(t *testing.T) {
	cfg := newFixtureConfig(t)
	inj := &Inject{UUID: uuid.New(), Name: "Phase One", Start: 0, Duration: 1}
	cfg.Injects = append(cfg.Injects, inj)
	cfg.Start()
	cfg.Stop()
	cfg.Clock.elapsed = 2 * time.Minute

	clone := cfg.Clone()
	clone.Injects[0].Completed = true

	cfg.SmartCombine(clone, nil)

	assert.True(t, cfg.Injects[0].Completed)
}

func TestSmartCombineDoesNotCompleteInjectStillActiveOnAuthoritativeSide(t *testing.T) {
	cfg := newFixtureConfig(t)
	inj := &Inject{UUID: uuid.New(), Name: "Phase One", Start: 0, Duration: 100}
	cfg.Injects = append(cfg.Injects, inj)
	cfg.Start()

	clone := cfg.Clone()
	clone.Injects[0].Completed = true

	cfg.SmartCombine(clone, nil)

	assert.False(t, cfg.Injects[0].Completed, "authoritative run time still places the window inside its active phase")
}

func TestSmartCombineLogsAndDropsUnresolvedInject(t *testing.T) {
	cfg := newFixtureConfig(t)
	clone := cfg.Clone()
	clone.Injects = append(clone.Injects, &Inject{UUID: uuid.New(), Name: "Ghost", Completed: true})

	logger := zerolog.Nop()
	assert.NotPanics(t, func() {
		cfg.SmartCombine(clone, &logger)
	})
	assert.Empty(t, cfg.Injects)
}
