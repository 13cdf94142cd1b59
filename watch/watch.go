// Package watch re-runs a reload function when any of a set of files changes.
//
// Directories are watched rather than files so that editors which replace a
// file on save, and files created after the watch starts, are both noticed.
// Events are filtered down to the requested paths, and a burst of events is
// coalesced into a single reload by a resettable timer. Reloads never overlap.
package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the debounce window used when Config.Delay is zero.
const DefaultDelay = 50 * time.Millisecond

// ErrNilReload is returned when Config.Reload is nil.
var ErrNilReload = errors.New("reload function must not be nil")

// ErrNoDirectories is returned when there is nothing to watch.
var ErrNoDirectories = errors.New("no directories to watch")

// Config describes what to watch and what to run.
type Config struct {
	// Paths are the files whose changes trigger a reload.
	Paths []string
	// Dirs are the directories registered with fsnotify.
	Dirs []string
	// Delay is the debounce window.
	Delay time.Duration
	// Reload runs after each debounced burst of changes.
	Reload func()
	Logger *slog.Logger
}

// Watcher owns an fsnotify watcher and its debounce timer.
type Watcher struct {
	fsw    *fsnotify.Watcher
	paths  map[string]struct{}
	delay  time.Duration
	reload func()
	logger *slog.Logger

	mu     sync.Mutex // guards timer and closed
	timer  *time.Timer
	closed bool

	reloadMu sync.Mutex // serializes reloads
	done     chan struct{}
}

// New starts watching. Close must be called to release the watcher.
func New(cfg Config) (*Watcher, error) {
	if cfg.Reload == nil {
		return nil, ErrNilReload
	}

	if len(cfg.Dirs) == 0 {
		return nil, ErrNoDirectories
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range cfg.Dirs {
		err := fsw.Add(dir)
		if err != nil {
			_ = fsw.Close()

			return nil, fmt.Errorf("watching %q: %w", dir, err)
		}
	}

	paths := make(map[string]struct{}, len(cfg.Paths))
	for _, path := range cfg.Paths {
		paths[filepath.Clean(path)] = struct{}{}
	}

	w := &Watcher{
		fsw:    fsw,
		paths:  paths,
		delay:  delay,
		reload: cfg.Reload,
		logger: logger,
		done:   make(chan struct{}),
	}

	go w.processEvents()

	logger.Debug("watching env files", slog.Int("files", len(paths)), slog.Int("dirs", len(cfg.Dirs)))

	return w, nil
}

// Close stops watching and cancels a pending reload. A reload that is
// already running is not interrupted, so Close may be called from Reload.
func (w *Watcher) Close() error {
	w.mu.Lock()

	if w.closed {
		w.mu.Unlock()

		return nil
	}

	w.closed = true

	if w.timer != nil {
		w.timer.Stop()
	}

	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done

	if err != nil {
		return fmt.Errorf("closing watcher: %w", err)
	}

	return nil
}

func (w *Watcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			w.logger.Error("watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	_, watched := w.paths[filepath.Clean(event.Name)]
	if !watched {
		return
	}

	w.logger.Debug("env file changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()

	if closed {
		return
	}

	w.reload()
}
