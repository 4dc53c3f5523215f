// Package watcher reports debounced changes to a set of files and globs.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/olimci/depcat/pkg/utils/set"
)

// Targets computes what to watch: absolute file paths, and doublestar
// globs relative to the watcher's root.
type Targets func() (paths []string, globs []string, err error)

// Event is a batch of changes that arrived within one debounce window.
type Event struct {
	Reason string
	Paths  []string
}

func New(root string, targets Targets, debounce time.Duration) (*Watcher, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:  w,
		debounce: debounce,
		root:     root,
		targets:  targets,
		Events:   make(chan Event, 64),
		Errors:   make(chan error, 64),
	}, nil
}

type Watcher struct {
	Events chan Event
	Errors chan error

	watcher  *fsnotify.Watcher
	debounce time.Duration

	root    string
	targets Targets

	watched *set.Set[string] // directories registered with fsnotify

	mu    sync.Mutex // guards files and globs, read by Files from any goroutine
	files *set.Set[string]
	globs []string
}

// Start registers the initial watch set and processes events until ctx is
// done.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.rebuild(); err != nil {
		return err
	}

	go w.loop(ctx)

	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = set.New[string]()
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			changed := []string{ev.Name}
			if ev.Has(fsnotify.Create) {
				// files written before the new directory was watched
				changed = append(changed, w.addDirectoryIfNeeded(ev.Name)...)
			}

			queued, rebuild := false, false
			for _, path := range changed {
				if !w.relevant(path) {
					continue
				}
				rebuild = rebuild || isConfigFile(path)
				pending.Add(filepath.Clean(path))
				queued = true
			}
			if rebuild {
				if err := w.rebuild(); err != nil {
					lazySend(w.Errors, fmt.Errorf("failed to rebuild watch set: %w", err))
				}
			}
			if queued {
				resetTimer()
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if pending.Len() == 0 {
				continue
			}
			paths := pending.Values()
			pending.Clear()

			lazySend(w.Events, Event{
				Reason: fmt.Sprintf("%d file(s) changed (%s quiet)", len(paths), w.debounce),
				Paths:  paths,
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			lazySend(w.Errors, fmt.Errorf("watch error: %w", err))
		}
	}
}

func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// Files returns a snapshot of the files currently watched.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files == nil {
		return nil
	}
	return w.files.Values()
}

// rebuild recomputes the targets and replaces the watch set.
func (w *Watcher) rebuild() error {
	paths, globs, err := w.targets()
	if err != nil {
		return err
	}

	w.removeAllWatches()
	w.mu.Lock()
	w.files = set.New[string]()
	w.globs = globs
	w.mu.Unlock()

	for _, p := range paths {
		w.addFile(p)
	}
	for _, glob := range globs {
		if err := w.addGlob(glob); err != nil {
			lazySend(w.Errors, fmt.Errorf("failed to add glob %q: %w", glob, err))
		}
	}
	return nil
}

// addFile watches the file's directory, so atomic replacements are seen.
func (w *Watcher) addFile(path string) {
	path = filepath.Clean(path)
	w.mu.Lock()
	w.files.Add(path)
	w.mu.Unlock()
	if err := w.addWatch(filepath.Dir(path)); err != nil {
		lazySend(w.Errors, fmt.Errorf("failed to watch %s: %w", path, err))
	}
}

func (w *Watcher) addGlob(pattern string) error {
	base, _ := doublestar.SplitPattern(pattern)
	if err := w.addWatch(filepath.Join(w.root, filepath.FromSlash(base))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	matches, err := doublestar.Glob(os.DirFS(w.root), pattern)
	if err != nil {
		return err
	}
	for _, match := range matches {
		w.addFile(filepath.Join(w.root, filepath.FromSlash(match)))
	}
	return nil
}

func (w *Watcher) addWatch(dir string) error {
	if w.watched == nil {
		w.watched = set.New[string]()
	}
	dir = filepath.Clean(dir)
	if w.watched.Has(dir) {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.watched.Add(dir)
	return nil
}

func (w *Watcher) removeAllWatches() {
	if w.watched == nil {
		return
	}
	for _, dir := range w.watched.Values() {
		if err := w.watcher.Remove(dir); err != nil {
			lazySend(w.Errors, fmt.Errorf("failed to remove watch: %w", err))
		}
	}
	w.watched.Clear()
}

func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	path = filepath.Clean(path)
	if w.files != nil && w.files.Has(path) {
		return true
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, glob := range w.globs {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}
	return false
}

// addDirectoryIfNeeded watches a newly created directory tree and returns
// the files already inside it.
func (w *Watcher) addDirectoryIfNeeded(path string) []string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []string
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			files = append(files, p)
			return nil
		}
		if err := w.addWatch(p); err != nil {
			lazySend(w.Errors, fmt.Errorf("failed to watch new directory: %w", err))
			return fs.SkipDir
		}
		return nil
	})
	return files
}
