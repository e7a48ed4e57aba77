// Package scheduler drives the two periodic loops that keep the
// authoritative game state moving forward: a fast score tick that probes
// every team/service pair and a slow autosave tick that persists a
// rotating snapshot.
package scheduler

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bmin023/scoreboard/internal/game"
	"github.com/bmin023/scoreboard/internal/probe"
)

// ScoreInterval is how often the tick scheduler probes every service.
const ScoreInterval = 10 * time.Second

// AutosaveInterval is how often the tick scheduler writes a rotating
// snapshot to disk.
const AutosaveInterval = 10 * time.Minute

// autosaveSlots is the size of the rotating autosave ring. Slots are
// picked by wall-clock minute (see AutosaveSlot), so with AutosaveInterval
// spacing successive autosaves fall on every second slot and the ring
// holds about the last hour of them.
const autosaveSlots = 12

// Persister is the subset of the snapshot manager the scheduler needs to
// drive autosaves. Kept as an interface so the scheduler package does not
// import the snapshot package's on-disk format directly.
type Persister interface {
	Autosave(cfg *game.Config, slot int) error
}

// Scheduler owns the two background goroutines. It holds no game state of
// its own; everything it touches flows through the Store.
type Scheduler struct {
	store       *game.Store
	persister   Persister
	logger      *zerolog.Logger
	resourceDir string
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// New builds a Scheduler. persister may be nil, in which case autosaving
// is skipped entirely (useful for tests that only care about score ticks).
// resourceDir is the CWD every probe subprocess runs from.
func New(store *game.Store, persister Persister, logger *zerolog.Logger, resourceDir string) *Scheduler {
	return &Scheduler{store: store, persister: persister, logger: logger, resourceDir: resourceDir}
}

// Start launches the score and autosave loops. Stop must be called to
// release the goroutines.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runScoreLoop(ctx)

	if s.persister != nil {
		s.wg.Add(1)
		go s.runAutosaveLoop(ctx)
	}
}

// Stop cancels both loops and waits for them to exit.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runScoreLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(ScoreInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunScoreTick(ctx)
		}
	}
}

// RunScoreTick runs one full probe batch: snapshot the authoritative
// state, advance the inject lifecycle and probe every team/service pair
// against the snapshot without holding any lock, then merge the result
// back with SmartCombine under a single write hold.
func (s *Scheduler) RunScoreTick(ctx context.Context) {
	snapshot := s.store.Snapshot()
	snapshot.InjectTick(s.logger)

	var wg sync.WaitGroup
	for _, teamName := range snapshot.TeamNames() {
		team := snapshot.Teams[teamName]
		env := teamEnv(team)
		for _, svc := range snapshot.Services {
			wg.Add(1)
			go func(teamName string, svc game.Service) {
				defer wg.Done()
				result := probe.RunIn(ctx, s.resourceDir, svc.Command, env)
				probe.LogResult(s.logger, teamName, svc.Name, result)
				snapshot.ApplyProbeResult(teamName, svc.Name, result.Up)
			}(teamName, svc)
		}
	}
	wg.Wait()

	s.store.Commit(func(cfg *game.Config) {
		cfg.InjectTick(s.logger)
		cfg.SmartCombine(snapshot, s.logger)
	})
}

func (s *Scheduler) runAutosaveLoop(ctx context.Context) {
	defer s.wg.Done()
	// Jitter only the wait before the first tick, so a daemon restarted at
	// the same moment every time doesn't autosave in lockstep with every
	// other instance sharing the same resource directory.
	timer := time.NewTimer(jitter(30 * time.Second))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.RunAutosaveTick()
			timer.Reset(AutosaveInterval)
		}
	}
}

// RunAutosaveTick snapshots the authoritative state and writes it to the
// autosave slot for the current wall-clock minute.
func (s *Scheduler) RunAutosaveTick() {
	if s.persister == nil {
		return
	}
	slot := AutosaveSlot(time.Now())
	snapshot := s.store.Snapshot()
	if err := s.persister.Autosave(snapshot, slot); err != nil && s.logger != nil {
		s.logger.Error().Err(err).Int("slot", slot).Msg("autosave failed")
	}
}

// AutosaveSlot maps a point in time to its position in the rotating
// autosave ring.
func AutosaveSlot(t time.Time) int {
	return int((t.Unix() / 60) % autosaveSlots)
}

func teamEnv(team *game.Team) map[string]string {
	env := make(map[string]string, len(team.Env))
	for _, pair := range team.Env {
		env[pair.Key] = pair.Value
	}
	return env
}

func jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	n := binary.LittleEndian.Uint64(b[:])
	return time.Duration(n % uint64(max))
}
