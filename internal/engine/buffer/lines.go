package buffer

import (
	"fmt"
	"sort"
	"strings"
)

// LineEnding specifies a line ending style.
type LineEnding uint8

const (
	LineEndingKeep LineEnding = iota // keep delimiters as found
	LineEndingLF                     // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "keep"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// normalize converts all line endings in s to le.
func (le LineEnding) normalize(s string) string {
	if le == LineEndingKeep || !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if le != LineEndingLF {
		s = strings.ReplaceAll(s, "\n", le.Sequence())
	}
	return s
}

// line is one document line: its text and the delimiter that ends it.
type line struct {
	text  string
	delim string
}

func (l line) len() int { return len(l.text) + len(l.delim) }

// splitLines splits s at "\r\n", "\n" and "\r". The result always has at
// least one element and the last element never has a delimiter.
func splitLines(s string) []line {
	lines := make([]line, 0, strings.Count(s, "\n")+1)
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, line{text: s[start:i], delim: "\n"})
			start = i + 1
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				lines = append(lines, line{text: s[start:i], delim: "\r\n"})
				i++
			} else {
				lines = append(lines, line{text: s[start:i], delim: "\r"})
			}
			start = i + 1
		}
	}
	return append(lines, line{text: s[start:]})
}

// lineStore holds the lines of a document or snapshot together with a lazily
// extended table of line start offsets.
type lineStore struct {
	lines []line

	// starts[i] is the offset of lines[i]; only the first len(starts)
	// entries are known.
	starts []int
}

// invalidate drops cached offsets after the 0-based line index i.
func (s *lineStore) invalidate(i int) {
	if len(s.starts) > i+1 {
		s.starts = s.starts[:i+1]
	}
}

// offsetOf returns the offset of the 0-based line index i.
func (s *lineStore) offsetOf(i int) int {
	if len(s.starts) == 0 {
		s.starts = append(s.starts, 0)
	}
	for len(s.starts) <= i {
		k := len(s.starts) - 1
		s.starts = append(s.starts, s.starts[k]+s.lines[k].len())
	}
	return s.starts[i]
}

func (s *lineStore) checkLine(n int) {
	if n < 1 || n > len(s.lines) {
		panic(fmt.Sprintf("buffer: line %d out of range [1, %d]", n, len(s.lines)))
	}
}

// LineCount returns the number of lines. It is at least 1.
func (s *lineStore) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of line n without its delimiter.
func (s *lineStore) LineText(n int) string {
	s.checkLine(n)
	return s.lines[n-1].text
}

// LineLength returns the byte length of line n without its delimiter.
func (s *lineStore) LineLength(n int) int {
	s.checkLine(n)
	return len(s.lines[n-1].text)
}

// LineDelimiter returns the delimiter ending line n, "" for the last line.
func (s *lineStore) LineDelimiter(n int) string {
	s.checkLine(n)
	return s.lines[n-1].delim
}

// LineDelimiterLength returns the byte length of the delimiter ending line n.
func (s *lineStore) LineDelimiterLength(n int) int {
	s.checkLine(n)
	return len(s.lines[n-1].delim)
}

// LineOffset returns the byte offset of the start of line n.
func (s *lineStore) LineOffset(n int) int {
	s.checkLine(n)
	return s.offsetOf(n - 1)
}

// Len returns the total byte length of the content.
func (s *lineStore) Len() int {
	last := len(s.lines) - 1
	return s.offsetOf(last) + s.lines[last].len()
}

// Text returns length bytes of content starting at offset.
// The range is clipped to the content.
func (s *lineStore) Text(offset, length int) string {
	end := min(offset+length, s.Len())
	offset = max(offset, 0)
	if offset >= end {
		return ""
	}

	// Last line starting at or before offset; starts is complete after Len.
	i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > offset }) - 1

	var sb strings.Builder
	sb.Grow(end - offset)
	for pos := s.starts[i]; pos < end; i++ {
		full := s.lines[i].text + s.lines[i].delim
		lo := max(offset-pos, 0)
		hi := min(end-pos, len(full))
		sb.WriteString(full[lo:hi])
		pos += len(full)
	}
	return sb.String()
}

// String returns the whole content.
func (s *lineStore) String() string {
	var sb strings.Builder
	sb.Grow(s.Len())
	for _, l := range s.lines {
		sb.WriteString(l.text)
		sb.WriteString(l.delim)
	}
	return sb.String()
}
