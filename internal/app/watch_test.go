package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/linewatch/internal/config"
	"github.com/dshills/linewatch/internal/project/watcher"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchLoop(t *testing.T) {
	path := setup(t, "a\nb\n", "a\nb\n")
	core, logs := observer.New(zap.WarnLevel)
	s := openSession(t, path, Options{Config: fileConfig(), Logger: zap.New(core)})

	events := make(chan watcher.Event, 3)
	errs := make(chan error, 1)

	require.NoError(t, os.WriteFile(path, []byte("a\nB\n"), 0644))
	events <- watcher.Event{Path: path, Op: watcher.OpWrite, Time: time.Now()}
	errs <- errors.New("overflow")

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- s.watchLoop(context.Background(), &out, events, errs) }()

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 10*time.Millisecond)
	close(events)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop")
	}

	require.Equal(t, "watcher error", logs.All()[0].Message)
	require.Contains(t, out.String(), "1 modified")
	require.Equal(t, 1, s.Tracker().Stats().Modified)
}

func TestWatchLoopContextDone(t *testing.T) {
	path := setup(t, "a\n", "a\n")
	s := openSession(t, path, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.watchLoop(ctx, &bytes.Buffer{}, make(chan watcher.Event), make(chan error)))
}

func TestHandleFileEvent(t *testing.T) {
	path := setup(t, "a\n", "a\n")
	s := openSession(t, path, Options{})

	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))
	msg, err := s.handleFileEvent(watcher.Event{Path: path, Op: watcher.OpWrite})
	require.NoError(t, err)
	require.Equal(t, s.Summary(), msg)
	require.Contains(t, msg, "1 added")

	require.NoError(t, os.Remove(path))
	msg, err = s.handleFileEvent(watcher.Event{Path: path, Op: watcher.OpRemove})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(msg, ": removed"))
	// The last content is kept.
	require.Equal(t, "a\nb\n", s.Document().String())

	s.Close()
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))
	_, err = s.handleFileEvent(watcher.Event{Path: path, Op: watcher.OpCreate})
	require.ErrorIs(t, err, ErrSessionClosed)
}

func TestWatch(t *testing.T) {
	path := setup(t, "a\n", "a\n")
	cfg := fileConfig()
	cfg.Watch.Debounce = config.Duration(10 * time.Millisecond)
	s := openSession(t, path, Options{Config: cfg})

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, out) }()

	require.Eventually(t, func() bool { return strings.Count(out.String(), "\n") == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "1 added") }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
