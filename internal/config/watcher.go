package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Watch reloads path whenever it changes and hands every valid result to
// onReload. Invalid files are logged and skipped, and so is a file that
// was moved away or deleted, so the running pen is kept. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, onReload func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Watch the directory so atomic renames by editors are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	base := filepath.Base(path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				log.Printf("[CONFIG] %s is gone, keeping the current settings", path)
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				log.Printf("[CONFIG] Reload of %s failed: %v", path, err)
				continue
			}
			log.Printf("[CONFIG] Reloaded %s", path)
			onReload(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[CONFIG] Watch error: %v", err)
		}
	}
}
