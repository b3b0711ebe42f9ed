package watcher

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to files under the web-root
type Watcher struct {
	root      string
	out       io.Writer
	fsWatcher *fsnotify.Watcher

	// Debouncing
	debounceTimer map[string]*time.Timer // path -> timer
	debounceMu    sync.Mutex
	debounceDelay time.Duration

	// Callbacks
	changeCallback func(path string)
}

// NewWatcher creates a watcher for the directory tree at root
func NewWatcher(root string, out io.Writer) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	return &Watcher{
		root:          root,
		out:           out,
		fsWatcher:     fsWatcher,
		debounceTimer: make(map[string]*time.Timer),
		debounceDelay: 100 * time.Millisecond,
	}, nil
}

// SetChangeCallback sets a function called with the web-root relative
// path of every reported change.
func (w *Watcher) SetChangeCallback(callback func(path string)) {
	w.changeCallback = callback
}

// Start adds watches for every directory under the root and then handles
// events in the background until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.root); err != nil {
		w.fsWatcher.Close()
		return fmt.Errorf("failed to setup watchers: %w", err)
	}

	fmt.Fprintf(w.out, "[watcher] Watching %s\n", w.root)

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(w.out, "[watcher] Stopping watcher\n")
			w.fsWatcher.Close()
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(w.out, "[watcher] Error: %v\n", err)
		}
	}
}

// addTree watches dir and every non-hidden directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if isHidden(event.Name) ||
		strings.HasSuffix(event.Name, "~") ||
		strings.Contains(event.Name, ".tmp") {
		return
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	// New directories need their own watch
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				fmt.Fprintf(w.out, "[watcher] Failed to watch %s: %v\n", event.Name, err)
			}
		}
	}

	w.debounce(event.Name)
}

// debounce collapses bursts of events on one path into a single report
func (w *Watcher) debounce(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimer[path]; exists {
		timer.Stop()
	}

	w.debounceTimer[path] = time.AfterFunc(w.debounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimer, path)
		w.debounceMu.Unlock()

		w.report(path)
	})
}

func (w *Watcher) report(path string) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	fmt.Fprintf(w.out, "[watcher] File changed: %s\n", rel)

	if w.changeCallback != nil {
		w.changeCallback(rel)
	}
}

func (w *Watcher) stopTimers() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	for path, timer := range w.debounceTimer {
		timer.Stop()
		delete(w.debounceTimer, path)
	}
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
