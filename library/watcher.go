package library

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// Watcher notices externally-dropped .sim files appearing in a
// Library's directory — the Go analogue of one process calling
// Library.save and another later calling Library.load, grounded on
// operator-lifecycle-manager's pkg/lib/filemonitor watcher: an
// fsnotify.Watcher on the library directory, fed through a logr.Logger
// and a caller-supplied callback rather than a bespoke polling loop.
type Watcher struct {
	notify *fsnotify.Watcher
	log    logr.Logger
	onSave func(name string, event fsnotify.Event)
}

// NewWatcher starts watching lib's directory (non-recursive, matching
// fsnotify's own semantics) and returns a Watcher ready for Run.
// onSave is called once per filesystem event naming a .sim file.
func NewWatcher(lib *Library, log logr.Logger, onSave func(name string, event fsnotify.Event)) (*Watcher, error) {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := notify.Add(lib.Dir()); err != nil {
		notify.Close()
		return nil, err
	}
	log.V(1).Info("watching library directory", "dir", lib.Dir())
	return &Watcher{notify: notify, log: log, onSave: onSave}, nil
}

// Run drains watch events on a background goroutine until ctx is
// done, at which point the underlying fsnotify.Watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.notify.Close()
				w.log.V(1).Info("stopping library watcher")
				return
			case event, ok := <-w.notify.Events:
				if !ok {
					return
				}
				w.log.V(2).Info("library watcher event", "event", event)
				if w.onSave != nil && strings.HasSuffix(event.Name, ".sim") {
					w.onSave(event.Name, event)
				}
			case err, ok := <-w.notify.Errors:
				if !ok {
					return
				}
				w.log.Error(err, "library watcher error")
			}
		}
	}()
}
