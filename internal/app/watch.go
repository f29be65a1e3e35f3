package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/lambdagen/internal/ctxlog"
	"github.com/specialistvlad/lambdagen/internal/fsutil"
	"github.com/specialistvlad/lambdagen/internal/hclunit"
	"go.uber.org/zap"
)

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watch runs the pass once, then again each time a unit source under the
// configured paths changes, until ctx is cancelled. Failed runs are logged
// and do not stop the watch; onRun, when set, receives each run's result.
func (a *App) Watch(ctx context.Context, onRun func(error)) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs, err := fsutil.Dirs(a.config.Paths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	a.logger.Info("Watching for changes.", zap.Strings("dirs", dirs))

	run := func() {
		err := a.Run(ctx)
		switch {
		case err == nil, errors.Is(err, ErrFailed):
		case errors.Is(err, context.Canceled):
			return
		default:
			a.logger.Error("Run failed.", zap.Error(err))
		}
		if onRun != nil {
			onRun(err)
		}
	}
	run()

	timer := time.NewTimer(a.config.WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch stopped.")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := watcher.Add(ev.Name); err != nil {
						a.logger.Warn("Failed to watch new directory.", zap.String("dir", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if !isSourceEvent(ev) {
				continue
			}
			a.logger.Debug("Source changed.", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(a.config.WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("Watcher error.", zap.Error(err))

		case <-timer.C:
			run()
		}
	}
}

func isSourceEvent(ev fsnotify.Event) bool {
	if ev.Op&watchedOps == 0 {
		return false
	}
	return strings.HasSuffix(ev.Name, hclunit.SourceExtension) &&
		!strings.HasSuffix(ev.Name, hclunit.GeneratedSuffix)
}
