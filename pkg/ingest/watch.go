package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/coolbeans/teicrm/pkg/store"
	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is how long Watch waits for further changes before
// rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc receives the result of every build started by Watch.
type BuildFunc func(graph *store.Graph, stats *BuildStats, err error)

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce collapses bursts of file events. Default: DefaultDebounce.
	Debounce time.Duration
}

// Watch builds the sources once and then again after each change to a
// watched directory, until ctx is done. Build failures are passed to onBuild
// and do not stop watching.
//
// The watched directories are those holding a matched file plus the static
// base of every pattern. Patterns are re-expanded on every build, and
// directories created below a watched one are added as they appear, so
// files matching "**" in new directories are picked up.
func (b *Builder) Watch(ctx context.Context, patterns []string, opts WatchOptions, onBuild BuildFunc) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	paths, err := ExpandSources(patterns)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := &watchedDirs{watcher: watcher, seen: make(map[string]bool)}
	for _, pattern := range patterns {
		if base := patternBase(pattern); base != "" {
			if err := dirs.add(base); err != nil {
				return err
			}
		}
	}
	if err := dirs.addParents(paths); err != nil {
		return err
	}

	rebuild := func() {
		paths, err := ExpandSources(patterns)
		if err != nil {
			onBuild(nil, nil, err)
			return
		}
		if err := dirs.addParents(paths); err != nil {
			b.logger().Warnw("watch error", "error", err)
		}
		graph, stats, err := b.BuildFiles(paths)
		onBuild(graph, stats, err)
	}
	rebuild()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			b.logger().Debugw("source changed", "path", event.Name, "op", event.Op.String())
			if event.Op&fsnotify.Create != 0 {
				if err := dirs.addTree(event.Name); err != nil {
					b.logger().Warnw("watch error", "error", err)
				}
			}
			debounce = time.After(opts.Debounce)

		case <-debounce:
			debounce = nil
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger().Warnw("watch error", "error", err)
		}
	}
}

// watchedDirs adds each directory to the watcher at most once.
type watchedDirs struct {
	watcher *fsnotify.Watcher
	seen    map[string]bool
}

func (w *watchedDirs) add(dir string) error {
	dir = filepath.Clean(dir)
	if w.seen[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.seen[dir] = true
	return nil
}

func (w *watchedDirs) addParents(paths []string) error {
	for _, path := range paths {
		if err := w.add(filepath.Dir(path)); err != nil {
			return err
		}
	}
	return nil
}

// addTree watches path and every directory below it. Paths that are not
// directories are ignored.
func (w *watchedDirs) addTree(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}
	return filepath.WalkDir(path, func(current string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		return w.add(current)
	})
}

// patternBase returns the directory part of pattern that holds no glob
// metacharacters, or "" when it does not exist.
func patternBase(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	dir := filepath.FromSlash(base)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	return dir
}
