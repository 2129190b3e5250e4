// Package watch reports changes made to the open document by other programs.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows one file by watching its parent directory, so editors that
// save by rename are still seen.
type Watcher struct {
	fw      *fsnotify.Watcher
	changed func(path string)
	failed  func(error)

	mu   sync.Mutex
	file string
	dir  string

	done chan struct{}
	once sync.Once
}

// New starts a watcher. changed is called from the watcher goroutine with the
// watched path; failed, when non-nil, receives watcher errors.
func New(changed func(path string), failed func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{fw: fw, changed: changed, failed: failed, done: make(chan struct{})}
	go w.run()
	return w, nil
}

// Watch retargets the watcher at path. An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	var abs, dir string
	if path != "" {
		var err error
		abs, err = filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		dir = filepath.Dir(abs)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if dir != w.dir {
		if w.dir != "" {
			_ = w.fw.Remove(w.dir)
		}
		w.dir = ""
		if dir != "" {
			if err := w.fw.Add(dir); err != nil {
				w.file = ""
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}
		w.dir = dir
	}
	w.file = abs
	return nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			file := w.Path()
			if file != "" && filepath.Clean(ev.Name) == file {
				w.changed(file)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.failed != nil {
				w.failed(err)
			}
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fw.Close()
		<-w.done
	})
	return err
}
