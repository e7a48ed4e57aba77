package fixtures

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/bmin023/scoreboard/internal/game"
)

// ReloadCallback is invoked with the freshly parsed inject list whenever
// the injects file changes on disk.
type ReloadCallback func([]*game.Inject)

// ErrWatcherClosed is returned when an operation is attempted on a closed
// Watcher.
var ErrWatcherClosed = errors.New("fixtures: watcher already closed")

// Watcher monitors the injects fixture file for changes and triggers
// reload callbacks. Teams and services are not watched: reloading them
// live would re-seed team scores mid-exercise, which the admin HTTP
// surface handles safely instead. New injects dropped into the file
// while the exercise runs are the one fixture edit that's safe to pick
// up without operator intervention.
type Watcher struct {
	ctx           context.Context
	cancel        context.CancelFunc
	fsWatcher     *fsnotify.Watcher
	loader        *Loader
	path          string
	callbacks     []ReloadCallback
	debounceDelay time.Duration
	logger        *zerolog.Logger
	mu            sync.RWMutex
	closed        bool
}

// NewWatcher builds a Watcher for the injects file named by loader.
func NewWatcher(loader *Loader, logger *zerolog.Logger) (*Watcher, error) {
	path, err := filepath.Abs(filepath.Join(loader.ResourceDir, loader.InjectsFile))
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		ctx:           ctx,
		cancel:        cancel,
		fsWatcher:     fsWatcher,
		loader:        loader,
		path:          path,
		debounceDelay: 100 * time.Millisecond,
		logger:        logger,
	}, nil
}

// OnReload registers a callback invoked after a successful reload.
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Watch blocks processing fsnotify events for the injects file until ctx
// is canceled. Events are debounced so an editor's temp-file-then-rename
// save pattern triggers one reload, not several.
func (w *Watcher) Watch(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerMu sync.Mutex
	)
	targetFile := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != targetFile {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.debounce(&timerMu, &timer)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Error().Err(err).Msg("fixtures watcher error")
			}
		}
	}
}

func (w *Watcher) debounce(timerMu *sync.Mutex, timer **time.Timer) {
	timerMu.Lock()
	defer timerMu.Unlock()
	if *timer != nil {
		(*timer).Stop()
	}
	*timer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		w.triggerReload()
	})
}

func (w *Watcher) triggerReload() {
	injects, err := w.loader.LoadInjects()
	if err != nil {
		if w.logger != nil {
			w.logger.Error().Err(err).Str("path", w.path).Msg("failed to reload injects")
		}
		return
	}

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(injects)
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	w.closed = true
	w.cancel()
	return w.fsWatcher.Close()
}
