package asset

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-loads stylesheets of a store when their files change on disk.
type Watcher struct {
	store *Store
	fsw   *fsnotify.Watcher
	done  chan struct{}
}

// Watch starts watching the root directory of the store. Only files which
// have been loaded before are re-loaded. The watcher stops when ctx is
// cancelled or Close is called.
func (s *Store) Watch(ctx context.Context) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = fsw.Add(s.root); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{store: s, fsw: fsw, done: make(chan struct{})}
	go w.processEvents(ctx)
	tracer().Infof("watching %s for stylesheet changes", s.root)
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.fsw.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload(event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			tracer().Errorf("watcher: %v", err)
		}
	}
}

func (w *Watcher) reload(name string) {
	rel, err := filepath.Rel(w.store.root, name)
	if err != nil {
		return
	}
	h, ok := w.store.Lookup(filepath.ToSlash(rel))
	if !ok {
		return
	}
	if err := w.store.Reload(h); err != nil {
		tracer().Errorf("cannot reload %s: %v", name, err)
	}
}
