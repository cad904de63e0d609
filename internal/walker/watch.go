package walker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch streams an incremental Diff every time the project's files settle
// after a burst of changes, reusing Scan's diff semantics (SPEC_FULL §13
// "Watch-mode rescans"). Debounce is config.Walker.WatchDebounceMs (default
// 500ms if unset). The channel closes when ctx is cancelled or the watcher
// cannot be established.
func (w *Walker) Watch(ctx context.Context, root string) <-chan Diff {
	out := make(chan Diff)

	debounce := time.Duration(w.svc.Config.Walker.WatchDebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.svc.Logger.Error("watch: failed to start fsnotify", zap.Error(err))
		close(out)
		return out
	}

	if err := addRecursive(watcher, root, w); err != nil {
		w.svc.Logger.Error("watch: failed to register directories", zap.Error(err))
		watcher.Close()
		close(out)
		return out
	}

	go func() {
		defer watcher.Close()
		defer close(out)

		var timer *time.Timer
		var timerC <-chan time.Time
		prev := w.snapshotNow(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
					timerC = timer.C
				} else {
					timer.Reset(debounce)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-timerC:
				result, err := w.Scan(ctx, prev)
				if err != nil {
					w.svc.Logger.Warn("watch: rescan failed", zap.Error(err))
					continue
				}
				prev = make(Snapshot, len(result.Files))
				for _, f := range result.Files {
					prev[f.RelativePath] = f.Hash
				}
				select {
				case out <- result.Diff:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func (w *Walker) snapshotNow(ctx context.Context) Snapshot {
	result, err := w.Scan(ctx, nil)
	if err != nil {
		return Snapshot{}
	}
	snap := make(Snapshot, len(result.Files))
	for _, f := range result.Files {
		snap[f.RelativePath] = f.Hash
	}
	return snap
}

// addRecursive registers root and every non-ignored subdirectory with the
// watcher so renames/creates inside them are observed.
func addRecursive(watcher *fsnotify.Watcher, root string, w *Walker) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr == nil && rel != "." && w.isIgnoredDir(rel) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
