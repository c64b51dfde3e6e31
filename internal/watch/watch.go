// Package watch observes model files on disk and reports changes so the
// point cloud can be rebuilt without restarting the viewer.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lumenforge/pointmorph/internal/logger"
)

// Debounce is how long the watcher waits after the last write before firing.
// Editors and exporters tend to emit bursts of events for a single save.
const Debounce = 300 * time.Millisecond

// Watcher notifies a callback when any of a set of files changes on disk.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	onChange func()

	mu    sync.Mutex
	files map[string]struct{}
	timer *time.Timer

	done     chan struct{}
	isClosed bool
}

// New starts watching the given files. The callback runs on the watcher's
// goroutine once per debounced burst of change events.
func New(paths []string, onChange func()) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		onChange: onChange,
		files:    make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	// Watch the parent directories rather than the files themselves: most
	// editors replace files on save, which drops an inode-level watch.
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatch.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsWatch.Add(dir); err != nil {
			fsWatch.Close()
			return nil, err
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			if _, watched := w.files[abs]; !watched {
				continue
			}
			logger.Debug("model file changed", zap.String("path", abs))
			w.bump()

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			logger.Error("file watch error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

// bump (re)arms the debounce timer.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isClosed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(Debounce, w.onChange)
}

// Close stops the watcher. A pending debounced callback is cancelled.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.isClosed {
		w.mu.Unlock()
		return nil
	}
	w.isClosed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.fsnotify.Close()
}
