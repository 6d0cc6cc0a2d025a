package app

import (
	"slices"

	"github.com/dshills/linewatch/internal/engine/buffer"
	"github.com/dshills/linewatch/internal/engine/diff"
)

// syncText makes doc hold text by editing only the lines that differ, so
// trackers see line notifications instead of a rebuild. It reports false
// when it fell back to replacing the whole text; that happens when lines
// differ only in their delimiters.
func syncText(doc *buffer.Document, text string) bool {
	target := buffer.NewSnapshot(doc.Name(), text)
	edits := diff.DiffLines(doc, target)
	if len(edits) == 0 && doc.String() == text {
		return true
	}

	// Last edit first, as ApplyEdits requires.
	bufEdits := make([]buffer.Edit, 0, len(edits))
	for _, e := range slices.Backward(edits) {
		start := lineStart(doc, e.BeginA)
		end := lineStart(doc, e.EndA)
		from := snapshotOffset(target, e.BeginB)
		to := snapshotOffset(target, e.EndB)
		bufEdits = append(bufEdits, buffer.Edit{
			Start:   start,
			End:     end,
			NewText: target.Text(from, to-from),
		})
	}

	if err := doc.ApplyEdits(bufEdits); err != nil || doc.String() != text {
		doc.SetText(text)
		return false
	}
	return true
}

// lineStart returns the position of 0-based line i, or the end of the
// document when i is past the last line.
func lineStart(doc *buffer.Document, i int) buffer.Position {
	if i < doc.LineCount() {
		return buffer.Position{Line: i + 1}
	}
	return doc.EndPosition()
}

func snapshotOffset(s *buffer.Snapshot, i int) int {
	if i < s.LineCount() {
		return s.LineOffset(i + 1)
	}
	return s.Len()
}
