// Package watch notices when the task file is rewritten by another process.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

// FileWatcher calls onChange after the watched file is created, written,
// renamed over or removed. Bursts within the debounce window collapse into
// one call.
type FileWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	debounce time.Duration
	log      *log.Logger
	cancel   context.CancelFunc
	doneCh   chan struct{}
	running  bool
}

// New watches path. The parent directory is watched rather than the file so
// atomic rename-over writes are seen.
func New(path string, onChange func(), logger *log.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	return &FileWatcher{
		watcher:  w,
		path:     abs,
		onChange: onChange,
		debounce: DefaultDebounce,
		log:      logger,
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period; call before Start.
func (fw *FileWatcher) SetDebounce(d time.Duration) { fw.debounce = d }

// Start begins watching. It is non-blocking.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.running {
		return nil
	}
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(fw.path), err)
	}
	ctx, fw.cancel = context.WithCancel(ctx)
	fw.running = true
	go fw.run(ctx)
	fw.log.Debug("watching task file", "path", fw.path)
	return nil
}

// Stop ends the watch loop, waits for it and releases the watcher.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		fw.watcher.Close()
		return
	}
	fw.running = false
	fw.cancel()
	fw.mu.Unlock()

	<-fw.doneCh
	if err := fw.watcher.Close(); err != nil {
		fw.log.Warn("closing watcher", "err", err)
	}
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			fw.onChange()
		}
	}
}
