package resultcache

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches bursts of file events into one invalidation.
const watchDebounce = 200 * time.Millisecond

// Watcher invalidates a cache when the repository cache file changes.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch observes the repository cache file at path and calls invalidate
// (debounced) whenever it is rewritten. The parent directory is watched
// rather than the file itself so atomic rename-over-write is seen.
// Callers must Close the returned Watcher.
func Watch(path string, invalidate func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	go w.run(filepath.Base(path), invalidate)
	return w, nil
}

func (w *Watcher) run(base string, invalidate func()) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-fire:
			invalidate()
			timer = nil
			fire = nil

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
