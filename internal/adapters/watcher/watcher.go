// Package watcher implements recursive file system watching with fsnotify.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultIgnore are the patterns that are never watched.
var DefaultIgnore = []string{".git", ".jj", "node_modules"}

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	ignore    []glob.Glob
	events    chan ports.WatchEvent

	mu  sync.Mutex
	err error
}

// NewWatcher creates a new file system watcher. Resources are acquired by Start.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Start begins watching root recursively. ignore patterns are matched with
// '/' as separator against paths relative to root and against base names.
func (w *Watcher) Start(ctx context.Context, root string, ignore ...string) error {
	patterns := append(append([]string(nil), DefaultIgnore...), ignore...)
	w.ignore = make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return zerr.With(zerr.Wrap(err, "invalid ignore pattern"), "pattern", p)
		}
		w.ignore = append(w.ignore, g)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	w.fsWatcher = fsWatcher
	w.root = root
	w.events = make(chan ports.WatchEvent, eventChannelBuffer)

	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			_ = w.fsWatcher.Close()
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// Err returns the error that ended the event stream.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Watcher) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

// watchRecursively walks the directory tree and yields all directories that are not ignored.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != w.root && w.shouldSkip(path) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip reports whether path matches an ignore pattern.
func (w *Watcher) shouldSkip(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, g := range w.ignore {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// processEvents converts raw fsnotify events to ports.WatchEvent until ctx is
// done or fsnotify fails.
//
//nolint:cyclop // one branch per fsnotify channel and event kind
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldSkip(event.Name) {
				continue
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for dir := range w.watchRecursively(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were lost; report the root so a rebuild still happens.
				select {
				case w.events <- ports.WatchEvent{Path: w.root, Operation: ports.OpWrite}:
				case <-ctx.Done():
					return
				}
				continue
			}
			w.fail(err)
			return
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return nil
	}
	return &ports.WatchEvent{Path: event.Name, Operation: op}
}
