package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmin023/scoreboard/internal/game"
)

func writeFixtures(t *testing.T, dir string, teams, services, injects string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultTeamsFile), []byte(teams), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultServicesFile), []byte(services), 0o644))
	if injects != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultInjectsFile), []byte(injects), 0o644))
	}
}

const basicTeams = `
alpha:
  TEAM_PASSWORD: s3cret
beta: {}
`

const basicServices = `
web: exit 0
db:
  command: exit 1
  multiplier: 2
`

func TestLoadBasicTeamsAndServices(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, basicTeams, basicServices, "")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"web", "db"}, cfg.ServiceNames())
	svc, ok := cfg.ServiceByName("db")
	require.True(t, ok)
	assert.Equal(t, uint8(2), svc.Multiplier)
	svc, ok = cfg.ServiceByName("web")
	require.True(t, ok)
	assert.Equal(t, uint8(1), svc.Multiplier, "bare command shorthand defaults to multiplier 1")

	require.Contains(t, cfg.Teams, "alpha")
	pw, ok := cfg.Teams["alpha"].Password()
	require.True(t, ok)
	assert.Equal(t, "s3cret", pw)
	_, hasPassword := cfg.Teams["beta"].Password()
	assert.False(t, hasPassword)

	assert.Contains(t, cfg.Teams["alpha"].Scores, "web")
	assert.Contains(t, cfg.Teams["alpha"].Scores, "db")
}

const injectsYAML = `
patch_db:
  markdown: "Patch the database, {{TEAM_NAME}}"
  start: 5
  duration: 10
  side_effects:
    - type: delete_service
      name: db

ongoing_brief:
  markdown: "Keep reading"
  start: 0
  duration: null

writeup:
  markdown: "Submit your writeup"
  start: 0
  duration: 60
  no_submit: false

silent_log:
  markdown: "No submission expected"
  start: 0
  duration: 60
  no_submit: true
`

func TestLoadInjectsParsesDurationAndSideEffects(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, basicTeams, basicServices, injectsYAML)

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	require.Len(t, cfg.Injects, 4)

	byName := map[string]int{}
	for i, inj := range cfg.Injects {
		byName[inj.Name] = i
	}

	patch := cfg.Injects[byName["patch_db"]]
	assert.Equal(t, uint32(5), patch.Start)
	assert.Equal(t, uint32(10), patch.Duration)
	assert.False(t, patch.Sticky)
	require.Len(t, patch.SideEffects, 1)
	assert.Equal(t, game.DeleteService{Name: "db"}, patch.SideEffects[0])

	ongoing := cfg.Injects[byName["ongoing_brief"]]
	assert.True(t, ongoing.Sticky)

	silent := cfg.Injects[byName["silent_log"]]
	types, ok := silent.FileType.Get()
	require.True(t, ok)
	assert.Empty(t, types)
}

func TestLoadWithMissingInjectsFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, basicTeams, basicServices, "")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Injects)
}

func TestLoadRejectsMalformedServicesFile(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, basicTeams, "not: [valid, yaml, :::", "")

	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}
