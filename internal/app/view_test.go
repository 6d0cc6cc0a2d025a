package app

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linewatch/internal/project/watcher"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func screenRow(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := range w {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestViewerDraw(t *testing.T) {
	path := setup(t, baseText, currentText)
	s := openSession(t, path, Options{})
	screen := newScreen(t, 40, 5)

	v := &viewer{s: s, screen: screen, style: tcell.StyleDefault}
	v.draw()

	require.Equal(t, []string{"_", "    1 one", "~   2 TWO", "    3 three"}, []string{
		screenRow(screen, 0), screenRow(screen, 1), screenRow(screen, 2), screenRow(screen, 3),
	})
	require.True(t, strings.HasPrefix(s.Summary(), screenRow(screen, 4)))

	v.status = "saved"
	v.draw()
	require.Equal(t, "saved", screenRow(screen, 4))
}

func TestViewerKeys(t *testing.T) {
	path := setup(t, baseText, currentText)
	s := openSession(t, path, Options{})
	screen := newScreen(t, 40, 5) // four text rows, six lines plus the marker

	v := &viewer{s: s, screen: screen}
	key := func(k tcell.Key, r rune) error {
		err := v.handle(tcell.NewEventKey(k, r, tcell.ModNone))
		v.clampTop()
		return err
	}

	v.clampTop()
	require.Equal(t, 0, v.top)

	require.NoError(t, key(tcell.KeyUp, 0))
	require.Equal(t, 0, v.top)

	require.NoError(t, key(tcell.KeyRune, 'j'))
	require.Equal(t, 1, v.top)

	require.NoError(t, key(tcell.KeyEnd, 0))
	require.Equal(t, 3, v.top)

	require.NoError(t, key(tcell.KeyPgDn, 0))
	require.Equal(t, 3, v.top)

	require.NoError(t, key(tcell.KeyRune, 'k'))
	require.Equal(t, 2, v.top)

	require.NoError(t, key(tcell.KeyHome, 0))
	require.Equal(t, 0, v.top)

	require.ErrorIs(t, key(tcell.KeyRune, 'q'), ErrQuit)
	require.ErrorIs(t, key(tcell.KeyEscape, 0), ErrQuit)
	require.ErrorIs(t, key(tcell.KeyCtrlC, 0), ErrQuit)
	require.ErrorIs(t, v.handle(nil), ErrQuit)
}

func TestViewerFileEvent(t *testing.T) {
	path := setup(t, "a\n", "a\n")
	s := openSession(t, path, Options{})
	screen := newScreen(t, 40, 5)
	v, remove := newViewer(s, screen)
	defer remove()

	require.NoError(t, os.WriteFile(path, []byte("A\n"), 0644))
	require.NoError(t, v.handle(tcell.NewEventInterrupt(watcher.Event{Path: path, Op: watcher.OpWrite})))
	require.True(t, v.refreshed)
	require.Empty(t, v.status)
	require.Contains(t, s.Summary(), "1 modified")
	v.draw()
	require.True(t, strings.HasPrefix(s.Summary(), screenRow(screen, 4)))

	require.ErrorIs(t, v.handle(tcell.NewEventInterrupt(viewDone{})), ErrQuit)
}

func TestViewerRefreshesStatusAfterRebaseline(t *testing.T) {
	path := setup(t, "a\nb\n", "a\nb\n")
	s := openSession(t, path, Options{})
	screen := newScreen(t, 400, 3)
	v, remove := newViewer(s, screen)

	require.NoError(t, os.Remove(path))
	require.NoError(t, v.handle(tcell.NewEventInterrupt(watcher.Event{Path: path, Op: watcher.OpRemove})))
	require.Equal(t, path+": removed", v.status)
	v.draw()
	require.Equal(t, v.status, screenRow(screen, 2))

	// The file comes back without its first line: the summary replaces the
	// stale message and the view scrolls up to the new deletion marker.
	v.top = 2
	require.NoError(t, os.WriteFile(path, []byte("b\n"), 0644))
	require.NoError(t, s.Reload())
	require.Empty(t, v.status)
	require.Equal(t, 0, s.gutter.FirstRow())
	require.Equal(t, 1, v.top)
	require.Contains(t, s.Summary(), "1 deleted")
	v.draw()
	require.Equal(t, s.Summary(), screenRow(screen, 2))

	remove()
	v.status = "kept"
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))
	require.NoError(t, s.Reload())
	require.Equal(t, "kept", v.status)
}

func TestView(t *testing.T) {
	path := setup(t, baseText, currentText)
	s := openSession(t, path, Options{})
	screen := newScreen(t, 40, 10)

	done := make(chan error, 1)
	go func() { done <- s.View(context.Background(), screen, false) }()

	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("view did not quit")
	}
}

func TestViewContextDone(t *testing.T) {
	path := setup(t, "a\n", "a\n")
	s := openSession(t, path, Options{})
	screen := newScreen(t, 40, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.View(ctx, screen, true) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("view did not stop")
	}
}
