package gutter

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/linewatch/internal/engine/tracking"
)

// DefaultSignSet is the sign for each change kind in the order none, added,
// modified, deleted, unsaved.
const DefaultSignSet = " +~_*"

// Signs maps change kinds to gutter glyphs.
type Signs struct {
	None     rune
	Added    rune
	Modified rune
	Deleted  rune
	Unsaved  rune
}

// DefaultSigns returns the signs of DefaultSignSet.
func DefaultSigns() Signs {
	s, _ := ParseSigns(DefaultSignSet)
	return s
}

// ParseSigns reads a five-rune string in the order none, added, modified,
// deleted, unsaved.
func ParseSigns(set string) (Signs, error) {
	if n := utf8.RuneCountInString(set); n != 5 {
		return Signs{}, fmt.Errorf("sign set %q: want 5 signs, got %d", set, n)
	}
	r := []rune(set)
	return Signs{None: r[0], Added: r[1], Modified: r[2], Deleted: r[3], Unsaved: r[4]}, nil
}

// For returns the glyph for kind.
func (s Signs) For(kind tracking.ChangeKind) rune {
	switch kind {
	case tracking.ChangeAdded:
		return s.Added
	case tracking.ChangeModified:
		return s.Modified
	case tracking.ChangeDeleted:
		return s.Deleted
	case tracking.ChangeUnsaved:
		return s.Unsaved
	default:
		return s.None
	}
}

// String returns the set in ParseSigns order.
func (s Signs) String() string {
	return string([]rune{s.None, s.Added, s.Modified, s.Deleted, s.Unsaved})
}

// StyleFor returns base coloured for a sign of change.
func StyleFor(base tcell.Style, change tracking.ChangeKind) tcell.Style {
	switch change {
	case tracking.ChangeAdded:
		return base.Foreground(tcell.ColorGreen)
	case tracking.ChangeModified:
		return base.Foreground(tcell.ColorYellow)
	case tracking.ChangeDeleted:
		return base.Foreground(tcell.ColorRed)
	case tracking.ChangeUnsaved:
		return base.Foreground(tcell.ColorOrange)
	default:
		return base.Dim(true)
	}
}
