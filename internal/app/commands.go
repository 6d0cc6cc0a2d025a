package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/linewatch/internal/engine/tracking"
)

// Status writes every line of the document with its gutter prefix,
// followed by the summary. A deletion before the first line is shown as an
// extra row without text.
func (s *Session) Status(w io.Writer) error {
	if s.closed {
		return ErrSessionClosed
	}

	bw := bufio.NewWriter(w)
	g := s.gutter
	for line := g.FirstRow(); line <= s.doc.LineCount(); line++ {
		prefix := g.Prefix(line)
		if line == 0 {
			fmt.Fprintln(bw, strings.TrimRight(prefix, " "))
			continue
		}
		fmt.Fprintf(bw, "%s%s\n", prefix, s.doc.LineText(line))
	}
	fmt.Fprintln(bw, s.Summary())
	return bw.Flush()
}

// Summary describes the change counts in one line.
func (s *Session) Summary() string {
	st := s.tracker.Stats()
	base := "base version"
	if !s.tracker.HasBaseVersion() {
		base = "no base version"
	}
	return fmt.Sprintf("%s: %d lines, %d added, %d modified, %d deleted markers, %d unsaved (%s)",
		s.path, s.doc.LineCount(), st.Added, st.Modified, st.Deleted, st.Unsaved, base)
}

// Old writes the base text replaced by the change containing line. Line 0
// addresses a deletion before the first line. For added lines nothing
// was replaced and only the header is written.
func (s *Session) Old(w io.Writer, line int) error {
	if s.closed {
		return ErrSessionClosed
	}
	if line < 0 || line > s.doc.LineCount() {
		return NewOperationError("old", strconv.Itoa(line),
			fmt.Errorf("%w: document has %d lines", ErrLineOutOfRange, s.doc.LineCount()))
	}

	text, ok, start, added := s.tracker.GetOldTextForLine(line)
	if !ok {
		kind := s.tracker.GetChange(line).Kind
		return NewOperationError("old", strconv.Itoa(line), fmt.Errorf("%w (%s)", ErrNoChange, kind))
	}

	info := s.tracker.GetChange(line)
	if added {
		_, err := fmt.Fprintf(w, "@@ line %d: added, no base text @@\n", start)
		return err
	}
	if _, err := fmt.Fprintf(w, "@@ line %d: %s, base lines %s @@\n", start, info.Kind, baseRange(info)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// baseRange formats the 1-based inclusive base line range of info.
func baseRange(info tracking.LineChangeInfo) string {
	first, last := info.OldStartLine+1, info.OldEndLine
	switch {
	case last < first:
		return "none"
	case first == last:
		return strconv.Itoa(first)
	default:
		return fmt.Sprintf("%d-%d", first, last)
	}
}
