package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/dshills/linewatch/internal/project/watcher"
)

// newWatcher watches the session file with the configured debounce.
func (s *Session) newWatcher() (*watcher.FileWatcher, error) {
	return watcher.NewFileWatcher(s.path,
		watcher.WithDebounceDelay(s.cfg.Watch.Debounce.Std()),
		watcher.WithLogger(s.logger),
	)
}

// Watch writes the summary, then reloads and writes it again after every
// change on disk until ctx is done.
func (s *Session) Watch(ctx context.Context, w io.Writer) error {
	if s.closed {
		return ErrSessionClosed
	}
	fw, err := s.newWatcher()
	if err != nil {
		return NewOperationError("watch", s.path, err)
	}
	defer fw.Close()

	if _, err := fmt.Fprintln(w, s.Summary()); err != nil {
		return err
	}
	return s.watchLoop(ctx, w, fw.Events(), fw.Errors())
}

func (s *Session) watchLoop(ctx context.Context, w io.Writer, events <-chan watcher.Event, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			msg, err := s.handleFileEvent(ev)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, msg); err != nil {
				return err
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// handleFileEvent reloads after a change and returns the line to report.
// A file that disappeared or cannot be read is reported and kept as it was.
func (s *Session) handleFileEvent(ev watcher.Event) (string, error) {
	s.logger.Debug("file changed", zap.Stringer("op", ev.Op))

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("%s: removed", s.path), nil
	}
	if err := s.Reload(); err != nil {
		if errors.Is(err, ErrSessionClosed) {
			return "", err
		}
		s.logger.Warn("reload failed", zap.Error(err))
		return err.Error(), nil
	}
	return s.Summary(), nil
}
