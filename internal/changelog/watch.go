package changelog

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval is the backup poll period for missed filesystem events.
const pollInterval = 250 * time.Millisecond

// Watcher reports new latest entries as a changelog file is edited.
// It uses fsnotify on the parent directory so rename-on-save editors are seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	closed  bool
	last    string
}

// NewWatcher creates a Watcher for the changelog at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving changelog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:    abs,
		watcher: watcher,
	}, nil
}

// Run blocks until ctx is cancelled or fn returns an error.
// The latest header present when Run starts is recorded, not reported;
// fn is called each time the latest header changes after that.
func (w *Watcher) Run(ctx context.Context, fn func(*Entry) error) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching changelog directory: %w", err)
	}

	if entry := w.readLatest(); entry != nil {
		w.last = entry.Header.Line
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.check(fn); err != nil {
				return err
			}
		case <-ticker.C:
			if err := w.check(fn); err != nil {
				return err
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			// Polling covers whatever the event stream dropped.
			log.Printf("[changelog] debug: watcher error: %v", err)
		}
	}
}

// check re-reads the file and calls fn if the latest header moved.
func (w *Watcher) check(fn func(*Entry) error) error {
	entry := w.readLatest()
	if entry == nil || entry.Header.Line == w.last {
		return nil
	}

	log.Printf("[changelog] debug: latest header changed: %q -> %q", w.last, entry.Header.Line)
	w.last = entry.Header.Line
	return fn(entry)
}

// readLatest returns the current latest entry, or nil if the file is
// missing, mid-write, or has no header yet.
func (w *Watcher) readLatest() *Entry {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return nil
	}

	entry, err := ExtractLatest(string(data))
	if err != nil {
		log.Printf("[changelog] debug: %s: %v", w.path, err)
		return nil
	}
	return entry
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}
