// Package watcher reloads the catalog when its source file changes on disk.
//
// The parent directory is watched rather than the file itself so editors and
// tools that replace the file by rename are still observed. Bursts of events
// are coalesced: the callback runs once the file has been quiet for the
// settle delay.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"titlecatalog/internal/logger"
)

// DefaultSettleDelay is used when Options.SettleDelay is not positive.
const DefaultSettleDelay = 250 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	SettleDelay time.Duration
}

func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
}

// ChangeFunc is called after the watched file settles.
type ChangeFunc func(ctx context.Context) error

// Watcher observes a single file.
type Watcher struct {
	log     *logger.Logger
	fs      *fsnotify.Watcher
	settled chan struct{}
	path    string
	opts    Options
}

// New starts watching the directory that holds path.
func New(path string, opts Options, log *logger.Logger) (*Watcher, error) {
	opts.setDefaults()

	if log == nil {
		log = logger.Discard()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := filepath.Dir(abs)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("failed to add watch on %s: %w", dir, err)
	}

	return &Watcher{
		log:     log.With("component", "watcher", "path", abs),
		fs:      fs,
		settled: make(chan struct{}, 1),
		path:    abs,
		opts:    opts,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is cancelled, calling onChange each time the file
// settles after a change. Errors from onChange are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	var timer *time.Timer

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.log.Info("watching for changes", "settle_delay", w.opts.SettleDelay)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.log.Warn("source file removed or renamed", "op", event.Op.String())
				continue
			}

			w.log.Debug("change observed", "op", event.Op.String())

			// Restart the settle window on every change.
			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(w.opts.SettleDelay, w.signal)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			w.log.Warn("watch error", "error", err)
		case <-w.settled:
			if err := onChange(ctx); err != nil {
				w.log.Error("change handler failed", "error", err)
			}
		}
	}
}

// Close releases the underlying watch.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	return filepath.Clean(event.Name) == w.path
}

func (w *Watcher) signal() {
	select {
	case w.settled <- struct{}{}:
	default:
	}
}
