package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch follows the session file so that a logout performed by another
// process clears the viewer here too. It returns once the watcher is set up
// and stops when ctx is done.
func (s *Session) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.store.Path())
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("unable to watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.store.Path() {
					continue
				}
				s.reconcile()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.WithError(err).Warn("session watcher error")
			}
		}
	}()
	return nil
}

func (s *Session) reconcile() {
	if err := s.store.load(); err != nil {
		s.log.WithError(err).Warn("unable to reload session token")
		return
	}
	if _, ok := s.store.Get(); !ok && s.Viewer().LoggedIn() {
		s.log.Info("session token removed externally, logging out")
		s.Forget()
	}
}
