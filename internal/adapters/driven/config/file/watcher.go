package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pulsefeed-labs/pulse-cli/internal/logger"
)

// Watch reloads the configuration whenever its file changes and sends
// the updated copy on the returned channel. Watching stops when ctx is
// cancelled. Intended for long-running commands (pulse serve) that
// should pick up token changes without a restart.
func (s *Store) Watch(ctx context.Context) (<-chan Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors and atomic writes replace the file,
	// which would drop a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	updates := make(chan Config, 1)

	go func() {
		defer watcher.Close()
		defer close(updates)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.filePath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					logger.Warn("config: reload failed: %v", err)
					continue
				}
				logger.Info("config: reloaded from %s", s.filePath)

				// Keep only the freshest update if nobody is reading.
				select {
				case updates <- s.Config():
				default:
					select {
					case <-updates:
					default:
					}
					updates <- s.Config()
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config: watch error: %v", err)
			}
		}
	}()

	return updates, nil
}
