package buffer

import (
	"io"
	"slices"
)

// Reader is the read-only line view shared by documents and snapshots.
type Reader interface {
	Name() string
	LineCount() int
	LineText(n int) string
	LineLength(n int) int
	LineOffset(n int) int
	LineDelimiter(n int) string
	LineDelimiterLength(n int) int
	Len() int
	Text(offset, length int) string
	String() string
}

// Snapshot is an immutable view of a document's lines.
// It is safe for concurrent reads.
type Snapshot struct {
	lineStore
	name       string
	revisionID RevisionID
}

// NewSnapshot creates a snapshot directly from text, for content that is
// never edited such as a base version read from disk.
func NewSnapshot(name, text string) *Snapshot {
	return newSnapshot(name, splitLines(text), NewRevisionID())
}

// ReadSnapshot creates a snapshot from the full content of r.
func ReadSnapshot(name string, r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(name, string(data)), nil
}

func newSnapshot(name string, lines []line, rev RevisionID) *Snapshot {
	s := &Snapshot{
		lineStore:  lineStore{lines: lines},
		name:       name,
		revisionID: rev,
	}
	// Fill the offset table now so later reads never write.
	s.Len()
	return s
}

// Name returns the name of the document the snapshot was taken from.
func (s *Snapshot) Name() string {
	return s.name
}

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// Lines returns a copy of the line texts without delimiters.
func (s *Snapshot) Lines() []string {
	out := make([]string, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.text
	}
	return out
}

// Snapshot returns a read-only snapshot of the current document state.
func (d *Document) Snapshot() *Snapshot {
	return newSnapshot(d.name, slices.Clone(d.lines), d.revisionID)
}

var (
	_ Reader = (*Document)(nil)
	_ Reader = (*Snapshot)(nil)
)
