package shaderwatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle is how long a file must stay quiet before it is re-read.
const settle = 50 * time.Millisecond

// Watch reloads shaders in dir into s whenever they change on disk, until
// ctx is cancelled. It returns once the watcher is running; changed is
// called with the file name after every successful reload and may be nil.
// Errors after startup are logged, not returned.
func Watch(ctx context.Context, s *Store, dir string, log *zap.Logger, changed func(name string)) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating shader watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	log.Info("watching shaders", zap.String("dir", dir))

	go func() {
		defer w.Close()

		pending := make(map[string]struct{})
		timer := time.NewTimer(settle)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !IsShader(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				pending[filepath.Base(ev.Name)] = struct{}{}
				timer.Reset(settle)

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("shader watcher error", zap.Error(err))

			case <-timer.C:
				for name := range pending {
					delete(pending, name)
					reload(s, dir, name, log, changed)
				}
			}
		}
	}()
	return nil
}

func reload(s *Store, dir, name string, log *zap.Logger, changed func(string)) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		log.Warn("reloading shader", zap.String("name", name), zap.Error(err))
		return
	}
	if !s.Set(name, string(data)) {
		return
	}
	log.Info("shader reloaded", zap.String("name", name), zap.Uint64("version", s.Version()))
	if changed != nil {
		changed(name)
	}
}
