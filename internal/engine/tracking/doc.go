// Package tracking classifies every line of a live document against a base
// version of the same file.
//
// A Tracker loads the base version through a versioning.Provider, diffs it
// against the document and stores one LineChangeInfo per line in a
// run-length compressed list. Afterwards it follows the document's edits
// through line notifications without diffing again, and re-diffs when the
// document returns to its saved state.
//
// # Line Numbers
//
// Lines are 1-based. The change list also holds an entry 0 before the first
// line; it is ChangeNone except when lines were deleted at the very top of
// the file, in which case it carries the ChangeDeleted marker. The list
// therefore always has LineCount()+1 entries.
//
// Old ranges in LineChangeInfo are 0-based and half-open in the base
// document: OldStartLine 2, OldEndLine 4 means base lines 3 and 4.
//
// # Change Kinds
//
//   - ChangeAdded: the line has no counterpart in the base version
//   - ChangeModified: the line replaces the base lines of its old range
//   - ChangeDeleted: base lines of the old range were removed right after
//     this line
//   - ChangeUnsaved: the line was edited since the last diff
//
// # Usage
//
//	t := tracking.NewTracker(providers, tracking.WithLogger(logger))
//	t.Initialize(doc)
//	defer t.Dispose()
//
//	for r := range t.Changes() {
//	    fmt.Println(r.Kind, r.StartLine, r.EndLine)
//	}
//
// # Thread Safety
//
// A Tracker is driven synchronously by its document and is not safe for
// concurrent use.
package tracking
