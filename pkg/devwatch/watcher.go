package devwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gatefig/gatefig/internal"
	"github.com/gatefig/gatefig/pkg/models"
)

var log = internal.GetLogger()

const debounceInterval = 100 * time.Millisecond

// Watch broadcasts on the notifier whenever a template or static asset
// under dir changes. It blocks until ctx is done.
func Watch(ctx context.Context, dir string, notifier models.ReloadNotifier) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDir(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log.Infof("watching %s for template and asset changes", dir)

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			switch filepath.Ext(event.Name) {
			case ".html", ".css", ".js":
			default:
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			name := filepath.Base(event.Name)
			debounce = time.AfterFunc(debounceInterval, func() {
				log.Infof("change detected: %s, reloading browsers", name)
				notifier.Broadcast()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher error: %v", err)
		}
	}
}

// watchDir recursively adds a directory to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if len(info.Name()) > 0 && info.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
