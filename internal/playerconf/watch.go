package playerconf

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reads the file at path whenever it is written or replaced and
// sends the result on configs, or the failure on errs. It watches the
// containing directory so that editors which save by rename are seen.
// The watcher runs until ctx is done.
func Watch(ctx context.Context, path string, configs chan<- *Config, errs chan<- error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("playerconf: can't create watcher: %w", err)
	}

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("playerconf: can't watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				c, err := Read(target)
				if err != nil {
					send(ctx, errs, err)
					continue
				}

				send(ctx, configs, c)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				send(ctx, errs, err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func send[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}
