// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resources

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrNoDir is returned when watching resources that are not
// rooted at a directory on disk.
var ErrNoDir = errors.New("resources are not rooted at a directory")

// Watcher reports changes to resources on disk. It never calls
// into the driver; consumers receive names from [Watcher.Events]
// and act on them from the rendering thread.
type Watcher struct {

	// Events receives the name of each changed resource.
	Events chan string

	res     *Resources
	watcher *fsnotify.Watcher
	names   map[string]bool
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// Watch returns a new [Watcher] for the named resources.
// Editors often replace files instead of writing them, so the
// containing directories are watched.
func (r *Resources) Watch(names ...string) (*Watcher, error) {
	if r.Dir == "" {
		return nil, ErrNoDir
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{Events: make(chan string, 16), res: r, watcher: fw, names: map[string]bool{}, done: make(chan struct{})}
	dirs := map[string]bool{}
	for _, name := range names {
		w.names[name] = true
		dir := filepath.Dir(r.Path(name))
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, &Error{Name: name, Err: err}
		}
	}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := w.nameOf(event.Name)
			if name == "" {
				continue
			}
			select {
			case w.Events <- name:
			case <-w.done:
				return
			default:
				// dropped while the buffer is full
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("resource watcher error", "err", err)
		}
	}
}

// nameOf returns the watched resource name of the given path, or "".
func (w *Watcher) nameOf(path string) string {
	rel, err := filepath.Rel(w.res.Dir, path)
	if err != nil {
		return ""
	}
	name := filepath.ToSlash(rel)
	if !w.names[name] {
		return ""
	}
	return name
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.watcher.Close()
		w.wg.Wait()
	})
	return w.closeErr
}
