package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes on disk and delivers the
// parsed result on the returned channel. The parent directory is watched so
// editors that replace the file by rename are handled. Parse errors are sent
// on the error channel and the previous config stays in effect.
//
// Both channels are closed when ctx is cancelled.
func Watch(ctx context.Context, path string) (<-chan *Config, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	updates := make(chan *Config, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(updates)
		defer close(errs)
		defer watcher.Close()

		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					debounce = time.After(ConfigReloadDebounce)
				}
			case <-debounce:
				debounce = nil
				cfg, err := Load(path)
				if err != nil {
					send(ctx, errs, err)
					continue
				}
				send(ctx, updates, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				send(ctx, errs, err)
			}
		}
	}()

	return updates, errs, nil
}

// send replaces any value the consumer has not picked up yet so only the latest survives.
func send[T any](ctx context.Context, ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
