// Package buffer provides a line-indexed text document for change tracking.
//
// A Document stores its content as a list of lines. Every line keeps its own
// text and its own delimiter ("\n", "\r\n", "\r", or "" for the last line),
// so documents with mixed line endings round-trip byte for byte. Line numbers
// are 1-based; byte offsets are 0-based. An empty document has one empty line.
//
// Basic usage:
//
//	doc := buffer.New("main.go", "package main\n\nfunc main() {}\n")
//
//	// Insert a line after the package clause
//	doc.Insert(buffer.Position{Line: 1, Column: 12}, "\n\nimport \"fmt\"")
//
//	// Delete the blank line
//	doc.Delete(buffer.Position{Line: 2, Column: 0}, buffer.Position{Line: 3, Column: 0})
//
// # Line Trackers
//
// Components that keep per-line state subscribe with AddLineTracker. After
// each edit the document replays the structural change as a sequence of four
// notifications, in this order:
//
//   - LineRemoved for every line joined into the first edited line
//   - LineLengthChanged for the first edited line when its content changed
//   - LineInserted for every line split off the first edited line
//
// Replacing the whole content with SetText sends RebuildRequested instead.
// The number of lines a tracker must hold is always LineCount() once the
// sequence has been delivered.
//
// # Original State
//
// MarkOriginal records the current revision as the saved state and notifies
// the OnOriginalState listeners; hosts call it after loading or saving.
//
// # Snapshots
//
// Snapshot returns an immutable copy of the lines. Snapshots can be read from
// other goroutines; the Document itself is not safe for concurrent use and all
// edits and notifications happen on the caller's goroutine.
package buffer
