package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bmin023/scoreboard/internal/fixtures"
)

func writeFixtureFiles(t *testing.T, dir, teams, services string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixtures.DefaultTeamsFile), []byte(teams), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixtures.DefaultServicesFile), []byte(services), 0o644))
}

func TestRunFixturesValidateSucceedsOnWellFormedFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFixtureFiles(t, dir, "alpha: {}\n", "web: exit 0\n")
	t.Setenv("SB_RESOURCE_DIR", dir)

	require.NoError(t, runFixturesValidate(nil, nil))
}

func TestRunFixturesValidateFailsOnMalformedServices(t *testing.T) {
	dir := t.TempDir()
	writeFixtureFiles(t, dir, "alpha: {}\n", "web: [this, is, not, a, service]\n")
	t.Setenv("SB_RESOURCE_DIR", dir)

	require.Error(t, runFixturesValidate(nil, nil))
}
