package tracking

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/linewatch/internal/engine/buffer"
	"github.com/dshills/linewatch/internal/engine/diff"
	"github.com/dshills/linewatch/internal/engine/runlist"
	"github.com/dshills/linewatch/internal/integration/versioning"
)

// ReadOnlyDocument is the view the tracker needs of the base version.
type ReadOnlyDocument = buffer.Reader

// Document is a live document the tracker can follow.
type Document interface {
	buffer.Reader

	// Snapshot returns an immutable copy of the current content.
	Snapshot() *buffer.Snapshot

	// AddLineTracker subscribes to line notifications.
	AddLineTracker(t buffer.LineTracker) (remove func())

	// OnOriginalState registers fn to run when the document returns to its
	// saved state.
	OnOriginalState(fn func()) (remove func())
}

// Reason says why change listeners were notified.
type Reason string

const (
	ReasonInitialized  Reason = "initialized"
	ReasonRebaselined  Reason = "rebaselined"
	ReasonBaseReplaced Reason = "base-replaced"
)

// Event is delivered to change listeners after the classification of many
// lines may have changed at once.
type Event struct {
	TrackerID uuid.UUID
	Reason    Reason
}

type listenerEntry struct {
	id uint64
	fn func(Event)
}

// Tracker maintains the per-line change classification of one document.
type Tracker struct {
	id        uuid.UUID
	providers versioning.Provider
	logger    *zap.Logger
	normalize func(string) string
	ctx       context.Context

	doc  Document
	base ReadOnlyDocument

	// baseKnown is false when no provider had a base version and base is a
	// snapshot of the document taken at Initialize.
	baseKnown bool

	// changes[0] is the entry before the first line; changes[n] is line n.
	changes runlist.List[LineChangeInfo]

	detach    []func()
	listeners []listenerEntry
	nextID    uint64
	disposed  bool
}

// NewTracker creates a tracker that reads base versions from providers.
// providers may be nil, in which case the document is tracked against its
// own content at initialization.
func NewTracker(providers versioning.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		id:        uuid.New(),
		providers: providers,
		logger:    zap.NewNop(),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(zap.Stringer("tracker", t.id))
	return t
}

// ID returns the unique tracker ID.
func (t *Tracker) ID() uuid.UUID {
	return t.id
}

// CurrentDocument returns the tracked document, or nil before Initialize.
func (t *Tracker) CurrentDocument() Document {
	return t.doc
}

// BaseDocument returns the base version, or nil before Initialize.
func (t *Tracker) BaseDocument() ReadOnlyDocument {
	return t.base
}

// HasBaseVersion reports whether a provider supplied the base version.
func (t *Tracker) HasBaseVersion() bool {
	return t.baseKnown
}

// Initialize starts tracking doc. It does nothing when the tracker already
// tracks a document or has been disposed.
func (t *Tracker) Initialize(doc Document) {
	if t.disposed || t.changes.Len() > 0 {
		return
	}

	t.doc = doc
	if !t.loadBase() {
		// Everything is unchanged from now on.
		t.base = doc.Snapshot()
	}
	t.rebuild()

	t.detach = append(t.detach,
		doc.AddLineTracker(t),
		doc.OnOriginalState(t.Rebaseline),
	)
	t.fire(ReasonInitialized)
}

// Rebaseline recomputes the classification after the document returned to
// its saved state. Without a base version every unsaved line becomes added;
// otherwise the base version is fetched again and fully diffed.
func (t *Tracker) Rebaseline() {
	if t.doc == nil || t.disposed {
		return
	}

	if !t.baseKnown {
		t.changes.Transform(func(c LineChangeInfo) LineChangeInfo {
			if c.Kind == ChangeUnsaved {
				c.Kind = ChangeAdded
			}
			return c
		})
		t.logger.Debug("unsaved lines marked as added", zap.String("file", t.doc.Name()))
	} else {
		// Keep the previous base if the provider lost it.
		t.loadBase()
		t.rebuild()
	}
	t.fire(ReasonRebaselined)
}

// SetBaseDocument replaces the base version with text and diffs again, for
// hosts that know the base changed (commit, checkout).
func (t *Tracker) SetBaseDocument(text string) {
	if t.doc == nil || t.disposed {
		return
	}
	t.base = buffer.NewSnapshot(t.doc.Name(), text)
	t.baseKnown = true
	t.rebuild()
	t.fire(ReasonBaseReplaced)
}

// Dispose detaches the tracker from its document. It is safe to call more
// than once.
func (t *Tracker) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	for _, remove := range t.detach {
		remove()
	}
	t.detach = nil
	t.listeners = nil
}

// OnChange registers fn to run after Initialize, Rebaseline and
// SetBaseDocument. The returned function unregisters it.
func (t *Tracker) OnChange(fn func(Event)) (remove func()) {
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		t.listeners = slices.DeleteFunc(t.listeners, func(e listenerEntry) bool { return e.id == id })
	}
}

func (t *Tracker) fire(reason Reason) {
	ev := Event{TrackerID: t.id, Reason: reason}
	for _, e := range slices.Clone(t.listeners) {
		e.fn(ev)
	}
}

// loadBase fetches the base version from the providers. It reports whether
// one was found; on failure the current base is kept.
func (t *Tracker) loadBase() bool {
	if t.providers == nil {
		return false
	}

	name := t.doc.Name()
	text, err := versioning.Load(t.ctx, t.providers, name)
	if err != nil {
		if errors.Is(err, versioning.ErrNoBaseVersion) {
			t.logger.Debug("no base version", zap.String("file", name), zap.Error(err))
		} else {
			t.logger.Warn("load base version", zap.String("file", name), zap.Error(err))
		}
		return false
	}

	t.base = buffer.NewSnapshot(name, text)
	t.baseKnown = true
	t.logger.Debug("base version loaded",
		zap.String("file", name),
		zap.Int("lines", t.base.LineCount()),
	)
	return true
}

// rebuild diffs the base version against the document and refills the
// change list.
func (t *Tracker) rebuild() {
	var opts []diff.HashOption
	if t.normalize != nil {
		opts = append(opts, diff.WithNormalizer(t.normalize))
	}
	edits := diff.DiffLines(t.base, t.doc, opts...)

	t.changes.Clear()
	t.changes.Append(1, EmptyLineChange)

	for _, e := range edits {
		// Unchanged lines up to the edit; entry n is line n.
		if gap := e.BeginB + 1 - t.changes.Len(); gap > 0 {
			t.changes.Append(gap, EmptyLineChange)
		}

		switch e.Type {
		case diff.EditDelete:
			// Mark the line before the deletion point.
			t.changes.Set(t.changes.Len()-1, LineChangeInfo{
				Kind:         ChangeDeleted,
				OldStartLine: e.BeginA,
				OldEndLine:   e.EndA,
			})
		case diff.EditInsert:
			t.changes.Append(e.LenB(), LineChangeInfo{
				Kind:         ChangeAdded,
				OldStartLine: e.BeginA,
				OldEndLine:   e.EndA,
			})
		default:
			t.changes.Append(e.LenB(), LineChangeInfo{
				Kind:         ChangeModified,
				OldStartLine: e.BeginA,
				OldEndLine:   e.EndA,
			})
		}
	}

	if gap := t.doc.LineCount() + 1 - t.changes.Len(); gap > 0 {
		t.changes.Append(gap, EmptyLineChange)
	}

	t.logger.Debug("diff complete",
		zap.String("file", t.doc.Name()),
		zap.Int("lines", t.doc.LineCount()),
		zap.Int("edits", len(edits)),
		zap.Int("runs", t.changes.RunCount()),
	)
}

// Apply updates the classification for one document notification without
// diffing. Notifications before Initialize or after Dispose are ignored.
func (t *Tracker) Apply(n Notification) {
	if t.doc == nil || t.disposed {
		return
	}

	switch n := n.(type) {
	case LineRemoved:
		t.changes.RemoveAt(n.Line)
	case LineLengthChanged:
		t.changes.Set(n.Line, unsavedChange)
	case LineInserted:
		t.changes.Set(n.After, unsavedChange)
		t.changes.Insert(n.NewLine, unsavedChange)
	case RebuildRequested:
		// Everything may have changed; no diff until the next rebaseline.
		t.changes.Clear()
		t.changes.Append(t.doc.LineCount()+1, LineChangeInfo{
			Kind:       ChangeModified,
			OldEndLine: t.base.LineCount(),
		})
	}
}

// LineRemoved implements buffer.LineTracker.
func (t *Tracker) LineRemoved(line int) {
	t.Apply(LineRemoved{Line: line})
}

// LineLengthChanged implements buffer.LineTracker.
func (t *Tracker) LineLengthChanged(line, newLength int) {
	t.Apply(LineLengthChanged{Line: line, NewLength: newLength})
}

// LineInserted implements buffer.LineTracker.
func (t *Tracker) LineInserted(after, newLine int) {
	t.Apply(LineInserted{After: after, NewLine: newLine})
}

// RebuildRequested implements buffer.LineTracker.
func (t *Tracker) RebuildRequested() {
	t.Apply(RebuildRequested{})
}

var _ buffer.LineTracker = (*Tracker)(nil)
