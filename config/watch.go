package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// debounce waits for editors that write in several steps.
const debounce = 100 * time.Millisecond

// Watch reloads path whenever it is written and passes the result to fn.
// It watches the parent directory so that editors replacing the file
// atomically are seen too. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			select {
			case <-time.After(debounce):
			case <-ctx.Done():
				return nil
			}
			drain(watcher.Events)

			cfg, err := Load(abs)
			log.Info().Str("path", abs).Err(err).Msg("Config reloaded")
			fn(cfg, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", abs).Msg("Config watcher error")
		}
	}
}

// drain drops events queued during the debounce window.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}
