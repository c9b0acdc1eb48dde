package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/labelwatch/internal/ports"
)

// DirWatcher implements ports.EventSource for a single directory using fsnotify.
// Only Create events for regular files are forwarded.
type DirWatcher struct {
	dir     string
	watcher *fsnotify.Watcher
	logger  ports.Logger

	created chan string
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// NewDirWatcher starts watching dir (non-recursively).
func NewDirWatcher(dir string, logger ports.Logger) (*DirWatcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(abs); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}

	w := &DirWatcher{
		dir:     abs,
		watcher: watcher,
		logger:  logger,
		created: make(chan string, 64),
		errs:    make(chan error, 8),
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Created streams absolute paths of new files.
func (w *DirWatcher) Created() <-chan string { return w.created }

// Errors streams fsnotify errors.
func (w *DirWatcher) Errors() <-chan error { return w.errs }

// Dir returns the absolute watched directory.
func (w *DirWatcher) Dir() string { return w.dir }

// Close stops watching and closes both channels.
func (w *DirWatcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.watcher.Close()
		w.wg.Wait()
		close(w.created)
		close(w.errs)
	})
	return w.closeErr
}

func (w *DirWatcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				// renamed or removed before we got to it
				w.logger.Debug("created file vanished",
					ports.String("path", event.Name),
					ports.Err(err),
				)
				continue
			}
			if info.IsDir() {
				continue
			}
			path := event.Name
			if !filepath.IsAbs(path) {
				path = filepath.Join(w.dir, path)
			}
			select {
			case w.created <- path:
			case <-w.done:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
				w.logger.Warn("dropping watcher error", ports.Err(err))
			}
		}
	}
}
