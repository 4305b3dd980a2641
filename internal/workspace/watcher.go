package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval bounds how long multiple events for the same path are
// collapsed into a single re-index (§4.5 "Ordering").
const debounceInterval = 75 * time.Millisecond

// Watch installs a recursive FS watcher rooted at the scanner's root. For
// every reported path: if the file exists and has extension .php, it is
// re-indexed; if it no longer exists, its GlobalIndex entry is removed.
// Multiple events for the same path within debounceInterval collapse to a
// single re-index using the last-known content (§4.5).
//
// Watch blocks until ctx is cancelled or the watcher fails unrecoverably.
func (s *Scanner) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addRecursive(w, s.root); err != nil {
		logger.Warningf("could not install watches under %s: %v", s.root, err)
	}

	c := newCoalescer(debounceInterval, s.handleEvent)
	defer c.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, event.Name); err != nil {
						logger.Warningf("could not watch new directory %s: %v", event.Name, err)
					}
				}
			}
			c.notify(event.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watcher error: %v", err)
		}
	}
}

// handleEvent is the coalesced, per-path action: reindex if the file still
// exists and is PHP, otherwise evict it.
func (s *Scanner) handleEvent(path string) {
	if !strings.EqualFold(filepath.Ext(path), ".php") {
		return
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		s.indexFile(path)
		return
	}
	s.removeFile(path)
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := w.Add(path); addErr != nil {
				logger.Warningf("could not watch %s: %v", path, addErr)
			}
		}
		return nil
	})
}

// coalescer merges repeated events for the same key within interval into a
// single call to fn, keeping only the last occurrence (§4.5, §9
// "Coalescing").
type coalescer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func(string)
	timers   map[string]*time.Timer
}

func newCoalescer(interval time.Duration, fn func(string)) *coalescer {
	return &coalescer{interval: interval, fn: fn, timers: make(map[string]*time.Timer)}
}

func (c *coalescer) notify(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[key]; ok {
		t.Reset(c.interval)
		return
	}
	c.timers[key] = time.AfterFunc(c.interval, func() {
		c.mu.Lock()
		delete(c.timers, key)
		c.mu.Unlock()
		c.fn(key)
	})
}

func (c *coalescer) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers {
		t.Stop()
	}
}
