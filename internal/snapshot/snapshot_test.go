package snapshot

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmin023/scoreboard/internal/game"
	"github.com/bmin023/scoreboard/internal/password"
)

func newFixtureConfig(t *testing.T) *game.Config {
	t.Helper()
	cfg := game.NewConfig()
	require.NoError(t, cfg.AddService(game.Service{Name: "web", Command: "exit 0", Multiplier: 1}))
	_, err := cfg.AddTeam("alpha")
	require.NoError(t, err)
	return cfg
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(dir, nil)
	cfg := newFixtureConfig(t)
	cfg.ApplyProbeResult("alpha", "web", true)

	require.NoError(t, mgr.Save(cfg, "manual"))

	loaded, err := mgr.Load("manual")
	require.NoError(t, err)
	assert.Equal(t, cfg.Teams["alpha"].Scores["web"].Score, loaded.Config.Teams["alpha"].Scores["web"].Score)
	assert.NotZero(t, loaded.SavedAt)
}

func TestAutosaveWritesToRotatingSlot(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(dir, nil)
	cfg := newFixtureConfig(t)

	require.NoError(t, mgr.Autosave(cfg, 3))

	names, err := mgr.ListAutosaves()
	require.NoError(t, err)
	assert.Contains(t, names, "autosave-3")
}

func TestListSavesExcludesAutosaveDirectory(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(dir, nil)
	cfg := newFixtureConfig(t)

	require.NoError(t, mgr.Save(cfg, "manual-1"))
	require.NoError(t, mgr.Autosave(cfg, 0))

	names, err := mgr.ListSaves()
	require.NoError(t, err)
	assert.Equal(t, []string{"manual-1"}, names)
}

func TestSaveIncludesPasswordGroups(t *testing.T) {
	dir := t.TempDir()
	pwStore := password.NewStore(dir)
	require.NoError(t, pwStore.Write("alpha", "ssh", []password.Credential{{Username: "root", Password: "hunter2"}}))

	mgr := NewManager(dir, pwStore)
	cfg := newFixtureConfig(t)

	require.NoError(t, mgr.Save(cfg, "with-passwords"))

	loaded, err := mgr.Load("with-passwords")
	require.NoError(t, err)
	require.Contains(t, loaded.Passwords, "alpha")
	assert.Equal(t, "ssh", loaded.Passwords["alpha"][0].Group)
}

func TestRestoreAppliesPasswordGroups(t *testing.T) {
	dir := t.TempDir()
	pwStore := password.NewStore(dir)
	require.NoError(t, pwStore.Write("alpha", "ssh", []password.Credential{{Username: "root", Password: "hunter2"}}))

	mgr := NewManager(dir, pwStore)
	cfg := newFixtureConfig(t)
	require.NoError(t, mgr.Save(cfg, "snap"))

	restoreDir := t.TempDir()
	restorePw := password.NewStore(restoreDir)
	restoreMgr := NewManager(dir, restorePw)

	restored, err := restoreMgr.Restore("snap")
	require.NoError(t, err)
	assert.Contains(t, restored.Teams, "alpha")

	creds, err := restorePw.Read("alpha", "ssh")
	require.NoError(t, err)
	assert.Equal(t, []password.Credential{{Username: "root", Password: "hunter2"}}, creds)
}

func TestListSavesOnMissingDirectoryReturnsEmpty(t *testing.T) {
	mgr := NewManager(t.TempDir(), nil)
	names, err := mgr.ListSaves()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSaveAndLoadRoundTripsClockAndInjectFileType(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(dir, nil)
	cfg := newFixtureConfig(t)
	cfg.Injects = []*game.Inject{
		{Name: "no_submit_inject", FileType: mo.Some([]string{})},
		{Name: "whitelisted_inject", FileType: mo.Some([]string{"pdf"})},
		{Name: "freeform_inject", FileType: mo.None[[]string]()},
	}

	cfg.Start()
	time.Sleep(5 * time.Millisecond)
	cfg.Stop()
	before := cfg.RunTime()
	require.NotZero(t, before)

	require.NoError(t, mgr.Save(cfg, "clock-and-filetype"))

	loaded, err := mgr.Load("clock-and-filetype")
	require.NoError(t, err)

	assert.False(t, loaded.Config.Active(), "a restored clock must always come back paused")
	assert.Equal(t, before.Milliseconds(), loaded.Config.RunTime().Milliseconds())

	byName := make(map[string]*game.Inject, len(loaded.Config.Injects))
	for _, inj := range loaded.Config.Injects {
		byName[inj.Name] = inj
	}
	assert.Equal(t, mo.Some([]string{}), byName["no_submit_inject"].FileType)
	assert.Equal(t, mo.Some([]string{"pdf"}), byName["whitelisted_inject"].FileType)
	assert.Equal(t, mo.None[[]string](), byName["freeform_inject"].FileType)
}
