package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Option configures a FileWatcher.
type Option func(*config)

type config struct {
	delay      time.Duration
	bufferSize int
	logger     *zap.Logger
}

// WithDebounceDelay sets the quiet period after which an event is delivered.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithBufferSize sets the size of the event and error channels.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// FileWatcher delivers an Event whenever one file changes on disk.
type FileWatcher struct {
	path string

	fsw    *fsnotify.Watcher
	deb    *debouncer
	logger *zap.Logger

	events chan Event
	errors chan error

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewFileWatcher starts watching the file at path, which must exist.
func NewFileWatcher(path string, opts ...Option) (*FileWatcher, error) {
	cfg := config{
		delay:      DefaultDebounceDelay,
		bufferSize: 16,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotExist, abs)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &FileWatcher{
		path:    abs,
		fsw:     fsw,
		logger:  cfg.logger.With(zap.String("file", abs)),
		events:  make(chan Event, max(cfg.bufferSize, 1)),
		errors:  make(chan error, max(cfg.bufferSize, 1)),
		closeCh: make(chan struct{}),
	}
	w.deb = newDebouncer(cfg.delay, w.send)

	w.wg.Add(1)
	go w.processLoop()

	w.logger.Debug("watching", zap.Duration("debounce", cfg.delay))
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Events returns the channel of coalesced changes. It is closed by Close.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Flush delivers a pending event without waiting for the quiet period.
func (w *FileWatcher) Flush() {
	w.deb.flush()
}

// Close stops the watcher and closes the channels. It is safe to call more
// than once.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.deb.stop()
	w.wg.Wait()

	close(w.events)
	close(w.errors)
	return w.fsw.Close()
}

func (w *FileWatcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
			w.sendError(err)
		}
	}
}

// handle passes events for the watched file to the debouncer.
func (w *FileWatcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	w.logger.Debug("file event", zap.Stringer("op", op))
	w.deb.add(Event{Path: w.path, Op: op, Time: time.Now()})
}

// send delivers ev unless the watcher is closed. An event is dropped when
// the channel is full; the queued one already reports the file changed.
func (w *FileWatcher) send(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.events <- ev:
	default:
		w.logger.Debug("event channel full, dropping event", zap.Stringer("op", ev.Op))
	}
}

func (w *FileWatcher) sendError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

// convertOp maps fsnotify operations; chmod is not a change.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
