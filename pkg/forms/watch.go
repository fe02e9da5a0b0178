package forms

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce groups bursts of file events into one reload.
const DefaultDebounce = 300 * time.Millisecond

// Watch calls reload after files below dir change, until ctx is done. New
// sub-directories are watched as they appear.
func Watch(ctx context.Context, dir string, debounce time.Duration, reload func() error, logger logrus.FieldLogger) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("forms: watch: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, dir); err != nil {
		return fmt.Errorf("forms: watch %s: %w", dir, err)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if isDir(event.Name) {
					if err := addTree(watcher, event.Name); err != nil && logger != nil {
						logger.WithError(err).WithField("dir", event.Name).Warn("watch directory")
					}
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.WithError(err).Warn("form watcher error")
			}
		case <-timer.C:
			if err := reload(); err != nil && logger != nil {
				logger.WithError(err).Error("form reload failed")
			}
		}
	}
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
