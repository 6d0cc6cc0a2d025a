package tracking

import "fmt"

// ChangeKind classifies a line against the base version.
type ChangeKind uint8

const (
	ChangeNone     ChangeKind = iota // unchanged
	ChangeAdded                      // new line without base counterpart
	ChangeDeleted                    // base lines were removed after this line
	ChangeModified                   // replaces a base range
	ChangeUnsaved                    // edited since the last diff
)

// String returns the string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeNone:
		return "none"
	case ChangeAdded:
		return "added"
	case ChangeDeleted:
		return "deleted"
	case ChangeModified:
		return "modified"
	case ChangeUnsaved:
		return "unsaved"
	default:
		return fmt.Sprintf("ChangeKind(%d)", k)
	}
}

// LineChangeInfo is the classification of one line.
// Equal values in consecutive lines are stored as a single run.
type LineChangeInfo struct {
	Kind ChangeKind

	// Base lines [OldStartLine, OldEndLine), 0-based.
	OldStartLine int
	OldEndLine   int
}

// EmptyLineChange is the classification of an unchanged line.
var EmptyLineChange = LineChangeInfo{}

// unsavedChange is the classification of a line touched by an edit.
// The old range is dropped so consecutive edited lines form one run.
var unsavedChange = LineChangeInfo{Kind: ChangeUnsaved}

// String returns a compact representation such as "modified[1:2)".
func (c LineChangeInfo) String() string {
	if c.Kind == ChangeNone || c.Kind == ChangeUnsaved {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s[%d:%d)", c.Kind, c.OldStartLine, c.OldEndLine)
}

// hasOldText reports whether the classification maps to base content.
func (c LineChangeInfo) hasOldText() bool {
	return c.Kind != ChangeNone && c.Kind != ChangeUnsaved
}

// Region is a maximal range of consecutive lines with the same
// classification. StartLine and EndLine are inclusive; a region starting at
// line 0 marks a deletion before the first line.
type Region struct {
	Kind         ChangeKind
	StartLine    int
	EndLine      int
	OldStartLine int
	OldEndLine   int
}

// Lines returns the number of lines in the region.
func (r Region) Lines() int {
	return r.EndLine - r.StartLine + 1
}

// Stats counts lines per change kind. Deleted counts deletion markers, which
// may include entry 0.
type Stats struct {
	Unchanged int
	Added     int
	Modified  int
	Deleted   int
	Unsaved   int
}

// Changed returns the number of lines that differ from the base version.
func (s Stats) Changed() int {
	return s.Added + s.Modified + s.Unsaved
}
