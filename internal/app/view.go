package app

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/linewatch/internal/engine/tracking"
	"github.com/dshills/linewatch/internal/project/watcher"
	"github.com/dshills/linewatch/internal/renderer/gutter"
)

// viewDone is posted to the screen when the view context ends.
type viewDone struct{}

// viewer is the full-screen gutter view of a session.
type viewer struct {
	s      *Session
	screen tcell.Screen
	top    int
	status string
	style  tcell.Style

	// refreshed is set when the tracker recomputed its changes while the
	// current event was handled.
	refreshed bool
}

// newViewer returns a viewer that follows the tracker of s. remove stops
// following it.
func newViewer(s *Session, screen tcell.Screen) (v *viewer, remove func()) {
	v = &viewer{s: s, screen: screen, style: tcell.StyleDefault}
	v.top = s.gutter.FirstRow()
	remove = s.tracker.OnChange(v.changesRefreshed)
	return v, remove
}

// changesRefreshed drops the status message so the status row shows the
// new summary, and keeps the view in range of the new gutter.
func (v *viewer) changesRefreshed(ev tracking.Event) {
	v.s.logger.Debug("changes refreshed",
		zap.Stringer("tracker", ev.TrackerID),
		zap.String("reason", string(ev.Reason)),
	)
	v.refreshed = true
	v.status = ""
	v.clampTop()
}

// View shows the document with its gutter on screen until the user quits
// (q, Esc, Ctrl-C) or ctx is done. screen must be initialized; the caller
// finalizes it. With watch set the view reloads when the file changes.
func (s *Session) View(ctx context.Context, screen tcell.Screen, watch bool) error {
	if s.closed {
		return ErrSessionClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if watch {
		fw, err := s.newWatcher()
		if err != nil {
			return NewOperationError("view", s.path, err)
		}
		defer fw.Close()
		go forwardEvents(ctx, screen, fw.Events())
	}
	go func() {
		<-ctx.Done()
		_ = screen.PostEvent(tcell.NewEventInterrupt(viewDone{}))
	}()

	v, remove := newViewer(s, screen)
	defer remove()
	for {
		v.draw()
		if err := v.handle(screen.PollEvent()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// forwardEvents hands watcher events to the event loop, which is the only
// goroutine touching the session.
func forwardEvents(ctx context.Context, screen tcell.Screen, events <-chan watcher.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = screen.PostEvent(tcell.NewEventInterrupt(ev))
		}
	}
}

// rows returns the number of text rows; the last screen row is the status
// line.
func (v *viewer) rows() int {
	_, h := v.screen.Size()
	return max(h-1, 1)
}

func (v *viewer) draw() {
	w, h := v.screen.Size()
	v.clampTop()
	v.s.gutter.Draw(v.screen, v.s.doc, gutter.Rect{Width: w, Height: v.rows()}, v.top, v.style)

	if h > 1 {
		status := v.status
		if status == "" {
			status = v.s.Summary()
		}
		bar := v.style.Reverse(true)
		x := 0
		for _, r := range status {
			if x >= w {
				break
			}
			v.screen.SetContent(x, h-1, r, nil, bar)
			x++
		}
		for ; x < w; x++ {
			v.screen.SetContent(x, h-1, ' ', nil, bar)
		}
	}
	v.screen.Show()
}

// handle applies one event. It returns ErrQuit when the view should close.
func (v *viewer) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case nil:
		// Screen finalized.
		return ErrQuit

	case *tcell.EventResize:
		v.screen.Sync()

	case *tcell.EventKey:
		return v.handleKey(ev)

	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case viewDone:
			return ErrQuit
		case watcher.Event:
			v.refreshed = false
			msg, err := v.s.handleFileEvent(data)
			if err != nil {
				return err
			}
			if !v.refreshed {
				v.status = msg
			}
		}
	}
	return nil
}

func (v *viewer) handleKey(ev *tcell.EventKey) error {
	page := v.rows()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyUp:
		v.top--
	case tcell.KeyDown:
		v.top++
	case tcell.KeyPgUp:
		v.top -= page
	case tcell.KeyPgDn:
		v.top += page
	case tcell.KeyHome:
		v.top = v.s.gutter.FirstRow()
	case tcell.KeyEnd:
		v.top = v.s.doc.LineCount()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ErrQuit
		case 'k':
			v.top--
		case 'j':
			v.top++
		}
	}
	return nil
}

// clampTop keeps the view within the document: the first row is the top
// marker or line 1, and the last line stays at the bottom when possible.
func (v *viewer) clampTop() {
	first := v.s.gutter.FirstRow()
	last := max(first, v.s.doc.LineCount()-v.rows()+1)
	v.top = min(max(v.top, first), last)
}
