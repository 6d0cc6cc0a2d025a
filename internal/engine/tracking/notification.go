package tracking

// Notification is one structural change of the tracked document.
// The set is closed: LineRemoved, LineLengthChanged, LineInserted and
// RebuildRequested.
type Notification interface {
	notification()
}

// LineRemoved reports that Line was removed.
type LineRemoved struct {
	Line int
}

// LineLengthChanged reports that the content of Line changed.
type LineLengthChanged struct {
	Line      int
	NewLength int
}

// LineInserted reports that NewLine was inserted after line After.
type LineInserted struct {
	After   int
	NewLine int
}

// RebuildRequested reports that the whole document content was replaced.
type RebuildRequested struct{}

func (LineRemoved) notification()       {}
func (LineLengthChanged) notification() {}
func (LineInserted) notification()      {}
func (RebuildRequested) notification()  {}
