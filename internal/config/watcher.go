package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval collapses bursts of filesystem events (editors often
// write a file several times in quick succession) into a single reload.
const debounceInterval = 500 * time.Millisecond

// ReloadFunc is called with the freshly loaded configuration after the
// watched file changes and parses successfully.
type ReloadFunc func(*Config)

// ErrorFunc is called when a reload attempt fails.
type ErrorFunc func(error)

// Watcher watches a configuration file for changes and reloads it.
type Watcher struct {
	path     string
	onReload ReloadFunc
	onError  ErrorFunc

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the given configuration file.
func NewWatcher(path string, onReload ReloadFunc, onError ErrorFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file itself: atomic writes
	// (rename-over) replace the inode and would otherwise drop the watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		onReload: onReload,
		onError:  onError,
		watcher:  fsw,
		stopCh:   make(chan struct{}),
	}

	go w.loop()

	return w, nil
}

// loop processes filesystem events until Stop is called.
func (w *Watcher) loop() {
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				timerCh = timer.C
			} else {
				timer.Reset(debounceInterval)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}

		case <-w.stopCh:
			return
		}
	}
}

// reload loads the file and dispatches the callbacks.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}
