// Package watch notifies when any of a set of env files changes on disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit per save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes to a fixed set of files. It watches the parent
// directories, so it also catches files that are deleted and recreated,
// which is how most editors save.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	changed  chan string

	mu    sync.Mutex
	files map[string]bool // absolute paths
	dirs  map[string]bool
	timer *time.Timer
	done  chan struct{}
}

// New returns a Watcher with the default debounce interval.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		changed:  make(chan string, 1),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		done:     make(chan struct{}),
	}, nil
}

// Add registers path for change notification.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[abs] {
		return nil
	}
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	return nil
}

// Start begins watching. Each value received on the returned channel is the
// path of a file that changed; bursts are debounced down to one value.
func (w *Watcher) Start() <-chan string {
	go w.run()
	return w.changed
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			watched := w.files[event.Name]
			w.mu.Unlock()
			if watched {
				w.trigger(event.Name)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) trigger(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.changed <- path:
		default:
		}
	})
}

// Close stops the watcher. The change channel is not closed; receivers
// should select on their own done signal.
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
