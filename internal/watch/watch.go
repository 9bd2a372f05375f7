// Package watch reports batches of changed .txml files.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/grindlemire/go-txml/internal/build"
	"github.com/grindlemire/go-txml/internal/log"
)

// DefaultDebounce is the quiet period after the last event of a burst.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches directory trees for .txml changes. Directories created
// while watching are added automatically.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
}

// New watches every directory below roots, skipping hidden directories and
// node_modules. A debounce <= 0 uses DefaultDebounce.
func New(roots []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fs: fw, debounce: debounce}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string {
	dirs := w.fs.WatchList()
	slices.Sort(dirs)
	return dirs
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers changed .txml paths to onChange until ctx is done. Events are
// collected until no new one arrives for the debounce period, then handed
// over as one sorted batch. onChange runs on the watching goroutine, so
// batches never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer
	defer debounce.Stop()

	pending := map[string]bool{}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Watch("adding %s: %v", event.Name, err)
					}
					continue
				}
			}
			if !strings.HasSuffix(event.Name, build.Ext) || event.Op == fsnotify.Chmod {
				continue
			}
			log.Watch("%s %s", event.Op, event.Name)
			pending[event.Name] = true
			debounce.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Watch("watcher error: %v", err)

		case <-debounce.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(paths)
		}
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && build.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		log.Watch("watching %s", path)
		return w.fs.Add(path)
	})
}
