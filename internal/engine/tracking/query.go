package tracking

import (
	"iter"
	"strings"
)

// GetChange returns the classification of line n. Line 0 is the entry
// before the first line. n must be in [0, LineCount()].
func (t *Tracker) GetChange(n int) LineChangeInfo {
	return t.changes.Get(n)
}

// LineCount returns the number of lines the tracker holds, which equals the
// document line count between notifications.
func (t *Tracker) LineCount() int {
	return max(t.changes.Len()-1, 0)
}

// GetOldTextForLine returns the base text replaced by the change containing
// line n.
//
// ok is false for unchanged and unsaved lines. For added lines text is empty
// and added is true. newStartLine is the first line of the change in the
// current document. Line endings of text follow the current document.
func (t *Tracker) GetOldTextForLine(n int) (text string, ok bool, newStartLine int, added bool) {
	info := t.changes.Get(n)
	if !info.hasOldText() {
		return "", false, 0, false
	}

	newStartLine = t.changes.StartOfRun(n)
	if info.Kind != ChangeDeleted {
		// A run may begin at the sentinel after a rebuild marks every line.
		newStartLine = max(newStartLine, 1)
	}
	if info.Kind == ChangeAdded || info.OldEndLine <= info.OldStartLine {
		return "", true, newStartLine, info.Kind == ChangeAdded
	}

	first := info.OldStartLine + 1
	last := min(info.OldEndLine, t.base.LineCount())
	offset := t.base.LineOffset(first)
	end := t.base.LineOffset(last) + t.base.LineLength(last)

	text = normalizeNewLines(t.base.Text(offset, end-offset), t.lineTerminator(max(newStartLine, 1)))
	return text, true, newStartLine, false
}

// GetNewRegionForLine returns the byte range of the current document
// covered by the change containing line n. Regions of added lines include
// the delimiter of their last line. ok is false for unchanged and unsaved
// lines.
func (t *Tracker) GetNewRegionForLine(n int) (offset, length int, ok bool) {
	info := t.changes.Get(n)
	if !info.hasOldText() {
		return 0, 0, false
	}

	start := max(t.changes.StartOfRun(n), 1)
	end := t.changes.EndOfRun(n) - 1
	if end < start {
		// Deletion marker before the first line.
		return 0, 0, true
	}

	offset = t.doc.LineOffset(start)
	length = t.doc.LineOffset(end) + t.doc.LineLength(end) - offset
	if info.Kind == ChangeAdded {
		length += t.doc.LineDelimiterLength(end)
	}
	return offset, length, true
}

// Changes iterates over the changed regions in document order.
func (t *Tracker) Changes() iter.Seq[Region] {
	return func(yield func(Region) bool) {
		for run, start := range t.changes.Runs() {
			if run.Value.Kind == ChangeNone {
				continue
			}
			r := Region{
				Kind:         run.Value.Kind,
				StartLine:    start,
				EndLine:      start + run.Len - 1,
				OldStartLine: run.Value.OldStartLine,
				OldEndLine:   run.Value.OldEndLine,
			}
			if start == 0 && r.Kind != ChangeDeleted {
				r.StartLine = 1
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Stats counts the document lines per change kind.
func (t *Tracker) Stats() Stats {
	var s Stats
	for run, start := range t.changes.Runs() {
		lines := run.Len
		if start == 0 && run.Value.Kind != ChangeDeleted {
			// Entry 0 is not a line.
			lines--
		}
		switch run.Value.Kind {
		case ChangeNone:
			s.Unchanged += lines
		case ChangeAdded:
			s.Added += lines
		case ChangeModified:
			s.Modified += lines
		case ChangeDeleted:
			s.Deleted += lines
		case ChangeUnsaved:
			s.Unsaved += lines
		}
	}
	return s
}

// lineTerminator returns the delimiter of line n in the current document.
// The last line has none, so the one before it is used; single-line
// documents fall back to "\n".
func (t *Tracker) lineTerminator(n int) string {
	n = min(n, t.doc.LineCount())
	if d := t.doc.LineDelimiter(n); d != "" {
		return d
	}
	if n > 1 {
		return t.doc.LineDelimiter(n - 1)
	}
	return "\n"
}

// normalizeNewLines replaces every line ending in s with newline.
func normalizeNewLines(s, newline string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if newline != "\n" {
		s = strings.ReplaceAll(s, "\n", newline)
	}
	return s
}
