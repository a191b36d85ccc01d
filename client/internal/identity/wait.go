package identity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const dirPollInterval = 300 * time.Millisecond

// Wait reads the identity file, giving the installed service up to timeout to
// create it. A zero timeout reads once.
func (r *Reader) Wait(ctx context.Context, timeout time.Duration) (Identity, error) {
	if timeout <= 0 {
		return r.Read()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if id, err := r.Read(); !errors.Is(err, ErrNotFound) {
		return id, err
	}

	log.Infof("waiting up to %s for identity file %s", timeout, r.path)

	dir := filepath.Dir(r.path)
	if err := waitForDir(ctx, dir); err != nil {
		return r.Read()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warnf("failed to create identity file watcher: %v", err)
		return r.Read()
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Warnf("failed to close watcher: %v", err)
		}
	}()

	// watch the directory, the file may not exist yet
	if err := watcher.Add(dir); err != nil {
		log.Warnf("failed to watch %s: %v", dir, err)
		return r.Read()
	}

	// the file may have appeared between the first read and the watch setup
	if id, err := r.Read(); !errors.Is(err, ErrNotFound) {
		return id, err
	}

	for {
		select {
		case <-ctx.Done():
			return r.Read()
		case event, ok := <-watcher.Events:
			if !ok {
				return r.Read()
			}
			if filepath.Clean(event.Name) != filepath.Clean(r.path) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			id, err := r.Read()
			if errors.Is(err, ErrNotFound) {
				// created but not written yet
				continue
			}
			return id, err
		case err, ok := <-watcher.Errors:
			if !ok {
				return r.Read()
			}
			log.Warnf("identity file watcher error: %v", err)
		}
	}
}

func waitForDir(ctx context.Context, dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}

	ticker := time.NewTicker(dirPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return nil
			}
		}
	}
}
