package buffer

import (
	"errors"
	"io"
	"slices"
)

// Errors returned by document operations.
var (
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrRangeInvalid       = errors.New("invalid range")
	ErrEditsOverlap       = errors.New("edits overlap or are not in reverse order")
)

// LineTracker receives the structural changes of a document line by line.
// Line numbers refer to the document as it is after all previous
// notifications of the same edit have been applied.
type LineTracker interface {
	// LineRemoved reports that line was removed; later lines move up by one.
	LineRemoved(line int)

	// LineLengthChanged reports that the content of line changed.
	LineLengthChanged(line, newLength int)

	// LineInserted reports that newLine was inserted right after line after.
	LineInserted(after, newLine int)

	// RebuildRequested reports that the whole content was replaced.
	RebuildRequested()
}

type trackerEntry struct {
	id      uint64
	tracker LineTracker
}

type originalEntry struct {
	id uint64
	fn func()
}

// Document is an editable line-indexed text.
// It is not safe for concurrent use; take a Snapshot to share content.
type Document struct {
	lineStore
	name       string
	revisionID RevisionID
	original   RevisionID
	lineEnding LineEnding

	nextID    uint64
	trackers  []trackerEntry
	originals []originalEntry
}

// New creates a document named name with the given content.
// The initial content is the original state.
func New(name, text string, opts ...Option) *Document {
	d := &Document{name: name}
	for _, opt := range opts {
		opt(d)
	}
	d.lines = splitLines(d.lineEnding.normalize(text))
	d.revisionID = NewRevisionID()
	d.original = d.revisionID
	return d
}

// NewFromReader creates a document from the full content of r.
func NewFromReader(name string, r io.Reader, opts ...Option) (*Document, error) {
	// Read everything first so CRLF pairs are never split across reads.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(name, string(data), opts...), nil
}

// Name returns the document name, usually the file path.
func (d *Document) Name() string {
	return d.name
}

// RevisionID returns the current revision ID.
func (d *Document) RevisionID() RevisionID {
	return d.revisionID
}

// IsOriginal returns true if the document has not changed since the last
// call to MarkOriginal (or since it was created).
func (d *Document) IsOriginal() bool {
	return d.revisionID == d.original
}

// EndPosition returns the position after the last character.
func (d *Document) EndPosition() Position {
	n := len(d.lines)
	return Position{Line: n, Column: len(d.lines[n-1].text)}
}

// Write Operations

// Insert inserts text at pos.
func (d *Document) Insert(pos Position, text string) error {
	return d.Replace(pos, pos, text)
}

// Delete removes the text between start and end.
func (d *Document) Delete(start, end Position) error {
	return d.Replace(start, end, "")
}

// Replace replaces the text between start and end with text.
func (d *Document) Replace(start, end Position, text string) error {
	if err := d.checkPosition(start); err != nil {
		return err
	}
	if err := d.checkPosition(end); err != nil {
		return err
	}
	if end.Before(start) {
		return ErrRangeInvalid
	}

	d.replace(start, end, d.lineEnding.normalize(text))
	return nil
}

// ApplyEdit applies a single edit.
func (d *Document) ApplyEdit(e Edit) error {
	return d.Replace(e.Start, e.End, e.NewText)
}

// ApplyEdits applies multiple edits. Edits must be in reverse order (last
// position first) so earlier positions stay valid.
func (d *Document) ApplyEdits(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i-1].Start.Before(edits[i].End) {
			return ErrEditsOverlap
		}
	}
	for _, e := range edits {
		if err := d.checkPosition(e.Start); err != nil {
			return err
		}
		if err := d.checkPosition(e.End); err != nil {
			return err
		}
		if e.End.Before(e.Start) {
			return ErrRangeInvalid
		}
	}
	for _, e := range edits {
		d.replace(e.Start, e.End, d.lineEnding.normalize(e.NewText))
	}
	return nil
}

// SetText replaces the whole content and asks trackers to rebuild.
func (d *Document) SetText(text string) {
	d.lines = splitLines(d.lineEnding.normalize(text))
	d.starts = d.starts[:0]
	d.revisionID = NewRevisionID()

	for _, e := range slices.Clone(d.trackers) {
		e.tracker.RebuildRequested()
	}
}

// MarkOriginal records the current revision as the saved state and notifies
// the original-state listeners.
func (d *Document) MarkOriginal() {
	d.original = d.revisionID
	for _, e := range slices.Clone(d.originals) {
		e.fn()
	}
}

// Subscriptions

// AddLineTracker subscribes t to line notifications.
// The returned function unsubscribes it.
func (d *Document) AddLineTracker(t LineTracker) (remove func()) {
	d.nextID++
	id := d.nextID
	d.trackers = append(d.trackers, trackerEntry{id: id, tracker: t})
	return func() {
		d.trackers = slices.DeleteFunc(d.trackers, func(e trackerEntry) bool { return e.id == id })
	}
}

// OnOriginalState registers fn to run whenever MarkOriginal is called.
// The returned function unregisters it.
func (d *Document) OnOriginalState(fn func()) (remove func()) {
	d.nextID++
	id := d.nextID
	d.originals = append(d.originals, originalEntry{id: id, fn: fn})
	return func() {
		d.originals = slices.DeleteFunc(d.originals, func(e originalEntry) bool { return e.id == id })
	}
}

func (d *Document) checkPosition(p Position) error {
	if p.Line < 1 || p.Line > len(d.lines) {
		return ErrPositionOutOfRange
	}
	if p.Column < 0 || p.Column > len(d.lines[p.Line-1].text) {
		return ErrPositionOutOfRange
	}
	return nil
}

// replace performs a validated edit and notifies trackers.
func (d *Document) replace(start, end Position, text string) {
	first := d.lines[start.Line-1]
	last := d.lines[end.Line-1]

	pieces := splitLines(first.text[:start.Column] + text + last.text[end.Column:])
	pieces[len(pieces)-1].delim = last.delim

	removed := end.Line - start.Line
	inserted := len(pieces) - 1
	changed := removed > 0 || pieces[0].text != first.text

	d.lines = slices.Replace(d.lines, start.Line-1, end.Line, pieces...)
	d.invalidate(start.Line - 1)
	d.revisionID = NewRevisionID()

	trackers := slices.Clone(d.trackers)
	for range removed {
		for _, e := range trackers {
			e.tracker.LineRemoved(start.Line + 1)
		}
	}
	if changed {
		for _, e := range trackers {
			e.tracker.LineLengthChanged(start.Line, len(pieces[0].text))
		}
	}
	for i := 1; i <= inserted; i++ {
		for _, e := range trackers {
			e.tracker.LineInserted(start.Line+i-1, start.Line+i)
		}
	}
}
