package stager

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch stages once, then re-stages whenever a tracked file in SourceDir is
// written, created or renamed. It returns when ctx is done.
func (s *Stager) Watch(ctx context.Context) error {
	if s.sourceDir == "" {
		return ErrNoSourceDir
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.sourceDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.sourceDir, err)
	}

	if _, err := s.Ensure(); err != nil {
		return err
	}
	s.logger.Info("Watching assets", "dir", s.sourceDir)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.tracks(filepath.Base(event.Name)) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				s.logger.Debug("Asset changed", "file", event.Name, "op", event.Op.String())
				debounce.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", "err", err)

		case <-debounce.C:
			report, err := s.Ensure()
			if err != nil {
				s.logger.Error("Restage failed", "err", err)
				continue
			}
			s.logger.Debug("Restaged", "copied", len(report.Copied), "up_to_date", len(report.UpToDate))
		}
	}
}

func (s *Stager) tracks(name string) bool {
	for _, f := range s.files {
		if f == name {
			return true
		}
	}
	return false
}
