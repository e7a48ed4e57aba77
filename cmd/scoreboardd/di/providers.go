package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/bmin023/scoreboard/internal/cache"
	"github.com/bmin023/scoreboard/internal/fixtures"
	"github.com/bmin023/scoreboard/internal/game"
	"github.com/bmin023/scoreboard/internal/httpapi"
	"github.com/bmin023/scoreboard/internal/password"
	"github.com/bmin023/scoreboard/internal/scheduler"
	"github.com/bmin023/scoreboard/internal/settings"
	"github.com/bmin023/scoreboard/internal/snapshot"
)

// SettingsService wraps the process settings loaded from the environment.
type SettingsService struct {
	Settings settings.Settings
}

// LoggerService wraps the zerolog logger built from settings.
type LoggerService struct {
	Logger zerolog.Logger
}

// CacheService wraps the markdown render cache backend.
type CacheService struct {
	Backend cache.Cache
}

// Shutdown implements do.Shutdowner.
func (c *CacheService) Shutdown() error {
	return c.Backend.Close()
}

// StoreService wraps the authoritative game store, seeded from fixtures.
type StoreService struct {
	Store    *game.Store
	Markdown *game.MarkdownCache
}

// PasswordService wraps the on-disk credential store.
type PasswordService struct {
	Store *password.Store
}

// SnapshotService wraps the save/autosave manager.
type SnapshotService struct {
	Manager *snapshot.Manager
}

// SchedulerService wraps the background score and autosave loops.
type SchedulerService struct {
	Scheduler *scheduler.Scheduler
}

// Shutdown implements do.Shutdowner.
func (s *SchedulerService) Shutdown() error {
	s.Scheduler.Stop()
	return nil
}

// ServerService wraps the HTTP handler.
type ServerService struct {
	Handler *httpapi.Server
}

// FixturesWatcherService wraps the injects-file watcher. Nil when the
// watcher could not be created (e.g. the resource directory is
// unwatchable); the daemon still runs, just without live inject reload.
type FixturesWatcherService struct {
	Watcher *fixtures.Watcher
}

// Shutdown implements do.Shutdowner.
func (f *FixturesWatcherService) Shutdown() error {
	if f.Watcher == nil {
		return nil
	}
	return f.Watcher.Close()
}

// RegisterSingletons registers every scoreboard service provider with the
// injector. Nothing runs until a caller resolves it.
func RegisterSingletons(i do.Injector) {
	do.Provide(i, NewSettings)
	do.Provide(i, NewLogger)
	do.Provide(i, NewCache)
	do.Provide(i, NewStore)
	do.Provide(i, NewPasswords)
	do.Provide(i, NewSnapshots)
	do.Provide(i, NewScheduler)
	do.Provide(i, NewServer)
	do.Provide(i, NewFixturesWatcher)
}

// NewSettings loads process settings from the environment.
func NewSettings(_ do.Injector) (*SettingsService, error) {
	return &SettingsService{Settings: settings.Load()}, nil
}

// NewLogger builds the zerolog logger from settings.
func NewLogger(i do.Injector) (*LoggerService, error) {
	s := do.MustInvoke[*SettingsService](i)
	return &LoggerService{Logger: settings.NewLogger(s.Settings.Logging)}, nil
}

// NewCache builds the markdown render cache. The scoreboard runs as a
// single process, so ModeSingle (Ristretto) is always used.
func NewCache(_ do.Injector) (*CacheService, error) {
	cfg := &cache.Config{Mode: cache.ModeSingle, Ristretto: cache.DefaultRistrettoConfig()}
	backend, err := cache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("di: cache: %w", err)
	}
	return &CacheService{Backend: backend}, nil
}

// NewStore loads the fixture files into a fresh game.Config and wraps it in
// a Store.
func NewStore(i do.Injector) (*StoreService, error) {
	s := do.MustInvoke[*SettingsService](i)
	c := do.MustInvoke[*CacheService](i)

	loader := &fixtures.Loader{
		ResourceDir:  s.Settings.ResourceDir,
		TeamsFile:    s.Settings.TeamsFile,
		ServicesFile: s.Settings.ServicesFile,
		InjectsFile:  s.Settings.InjectsFile,
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("di: fixtures: %w", err)
	}

	return &StoreService{
		Store:    game.NewStore(cfg),
		Markdown: game.NewMarkdownCache(c.Backend),
	}, nil
}

// NewPasswords builds the on-disk credential store rooted at the resource
// directory.
func NewPasswords(i do.Injector) (*PasswordService, error) {
	s := do.MustInvoke[*SettingsService](i)
	store := password.NewStore(s.Settings.ResourceDir)
	storeSvc := do.MustInvoke[*StoreService](i)

	var names []string
	storeSvc.Store.View(func(cfg *game.Config) {
		names = cfg.TeamNames()
	})
	if err := store.ValidateFilesystem(names); err != nil {
		return nil, fmt.Errorf("di: passwords: %w", err)
	}
	return &PasswordService{Store: store}, nil
}

// NewSnapshots builds the save/autosave manager.
func NewSnapshots(i do.Injector) (*SnapshotService, error) {
	s := do.MustInvoke[*SettingsService](i)
	p := do.MustInvoke[*PasswordService](i)
	return &SnapshotService{Manager: snapshot.NewManager(s.Settings.ResourceDir, p.Store)}, nil
}

// NewScheduler builds the background score and autosave scheduler. It is
// not started here; the caller starts it once the whole container is
// initialized.
func NewScheduler(i do.Injector) (*SchedulerService, error) {
	s := do.MustInvoke[*SettingsService](i)
	store := do.MustInvoke[*StoreService](i)
	snap := do.MustInvoke[*SnapshotService](i)
	logger := do.MustInvoke[*LoggerService](i)

	sched := scheduler.New(store.Store, snap.Manager, &logger.Logger, s.Settings.ResourceDir)
	return &SchedulerService{Scheduler: sched}, nil
}

// NewServer builds the HTTP handler that exposes the public, team, and
// admin API surfaces.
func NewServer(i do.Injector) (*ServerService, error) {
	s := do.MustInvoke[*SettingsService](i)
	store := do.MustInvoke[*StoreService](i)
	passwords := do.MustInvoke[*PasswordService](i)
	snap := do.MustInvoke[*SnapshotService](i)
	sched := do.MustInvoke[*SchedulerService](i)
	logger := do.MustInvoke[*LoggerService](i)

	srv := httpapi.NewServer(
		store.Store, store.Markdown, passwords.Store, snap.Manager,
		sched.Scheduler, s.Settings, logger.Logger,
	)
	return &ServerService{Handler: srv}, nil
}

// NewFixturesWatcher builds the injects-file watcher and wires its reload
// callback to merge newly added injects into the live store. The watch
// loop itself is started by the caller with Watcher.Watch once the
// container is fully initialized.
func NewFixturesWatcher(i do.Injector) (*FixturesWatcherService, error) {
	s := do.MustInvoke[*SettingsService](i)
	store := do.MustInvoke[*StoreService](i)
	logger := do.MustInvoke[*LoggerService](i)

	loader := &fixtures.Loader{
		ResourceDir:  s.Settings.ResourceDir,
		TeamsFile:    s.Settings.TeamsFile,
		ServicesFile: s.Settings.ServicesFile,
		InjectsFile:  s.Settings.InjectsFile,
	}

	watcher, err := fixtures.NewWatcher(loader, &logger.Logger)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("fixtures watcher disabled")
		return &FixturesWatcherService{}, nil
	}

	watcher.OnReload(func(fresh []*game.Inject) {
		var added int
		store.Store.Commit(func(cfg *game.Config) {
			added = cfg.MergeNewInjects(fresh)
		})
		if added > 0 {
			logger.Logger.Info().Int("added", added).Msg("picked up new injects from fixture reload")
		}
	})

	return &FixturesWatcherService{Watcher: watcher}, nil
}
