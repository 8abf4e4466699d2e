package generator

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 500 * time.Millisecond

// Watch calls regenerate whenever a TOML file in one of dirs changes, at most
// once per quiet period of debounce. It blocks until ctx is done. Failures of
// regenerate are logged and watching continues.
func Watch(ctx context.Context, dirs []string, debounce time.Duration, regenerate func(context.Context) error) error {
	log := logger.ComponentLogger("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	log.Infow("Watching override tables", "dirs", dirs)

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			log.Debugw("Change detected", logger.FieldPath, event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", logger.FieldError, err)

		case <-timer.C:
			if err := regenerate(ctx); err != nil {
				log.Errorw("Regeneration failed", logger.FieldError, err)
			}
		}
	}
}

// relevant keeps content changes to table files and ignores config backups
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".toml")
}
