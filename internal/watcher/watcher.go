// Package watcher reports when the file behind a buffer changes on disk.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/bethropolis/focusnav/internal/logger"
)

// DefaultDebounce groups the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// HashText hashes buffer text the same way file content is hashed.
func HashText(text string) uint64 {
	return xxhash.Sum64String(text)
}

// Watcher watches one file. Editors often save by renaming a temporary
// file over the original, so the parent directory is watched and events are
// filtered by name.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher

	// current returns the hash of the text the editor holds; a file whose
	// content hashes the same is not reported.
	current  func() uint64
	onChange func(path string)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher for path. onChange runs on the watcher goroutine.
func New(path string, debounce time.Duration, current func() uint64, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     abs,
		debounce: debounce,
		fs:       fsw,
		current:  current,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Start begins watching.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.DebugTagf("watcher", "Watching %s", w.path)

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop ends watching and waits for the event goroutine to exit.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fs.Close()
	w.wg.Wait()
	if err != nil {
		return fmt.Errorf("close file watcher: %w", err)
	}
	logger.DebugTagf("watcher", "Stopped watching %s", w.path)
	return nil
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			logger.DebugTagf("watcher", "%v on %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.check()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.WarnTagf("watcher", "File watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// check reads the file and reports it when its content differs from the
// editor's text.
func (w *Watcher) check() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		logger.DebugTagf("watcher", "Skipping %s: %v", w.path, err)
		return
	}
	if w.current != nil && xxhash.Sum64(data) == w.current() {
		logger.DebugTagf("watcher", "%s unchanged", w.path)
		return
	}
	w.onChange(w.path)
}
