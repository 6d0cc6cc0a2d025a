// Package gutter renders change signs next to document lines.
//
// The gutter is the area to the left of the text. It holds a one-column
// sign for the change kind of the line and, optionally, the line number.
package gutter

import (
	"strconv"
	"strings"

	"github.com/dshills/linewatch/internal/engine/tracking"
)

// Source provides the change classification the gutter displays.
// *tracking.Tracker implements it.
type Source interface {
	// LineCount returns the number of lines.
	LineCount() int

	// GetChange returns the classification of line n; entry 0 is the
	// position before the first line.
	GetChange(n int) tracking.LineChangeInfo
}

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display.
	ShowLineNumbers bool

	// MinLineNumberWidth is the minimum width of the number column.
	MinLineNumberWidth int

	// Signs are the glyphs per change kind.
	Signs Signs
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		MinLineNumberWidth: 3,
		Signs:              DefaultSigns(),
	}
}

// Cell is one gutter cell.
type Cell struct {
	Rune rune

	// Kind is the change kind that selects the style.
	Kind tracking.ChangeKind

	// Number is set for line number cells.
	Number bool
}

// Gutter renders the sign and number columns for a Source.
type Gutter struct {
	config Config
	src    Source
}

// New creates a gutter over src.
func New(src Source, config Config) *Gutter {
	return &Gutter{config: config, src: src}
}

// Config returns the configuration.
func (g *Gutter) Config() Config {
	return g.config
}

// Width returns the number of columns RenderLine fills: the sign, the
// number column and a separator after each.
func (g *Gutter) Width() int {
	w := 2
	if g.config.ShowLineNumbers {
		w += g.numberWidth() + 1
	}
	return w
}

// HasTopMarker reports whether lines were deleted before the first line.
// Such a deletion has no line of its own and is shown on row 0.
func (g *Gutter) HasTopMarker() bool {
	return g.src.GetChange(0).Kind == tracking.ChangeDeleted
}

// FirstRow returns 0 when row 0 must be shown for a top marker, else 1.
func (g *Gutter) FirstRow() int {
	if g.HasTopMarker() {
		return 0
	}
	return 1
}

// Kind returns the change kind shown for line. Lines past the end are
// unchanged.
func (g *Gutter) Kind(line int) tracking.ChangeKind {
	if line < 0 || line > g.src.LineCount() {
		return tracking.ChangeNone
	}
	return g.src.GetChange(line).Kind
}

// Sign returns the sign glyph for line.
func (g *Gutter) Sign(line int) rune {
	return g.config.Signs.For(g.Kind(line))
}

// RenderLine returns the Width() cells for line. Row 0 has no number.
func (g *Gutter) RenderLine(line int) []Cell {
	kind := g.Kind(line)
	cells := make([]Cell, 0, g.Width())
	cells = append(cells, Cell{Rune: g.config.Signs.For(kind), Kind: kind}, Cell{Rune: ' '})

	if g.config.ShowLineNumbers {
		var num string
		if line > 0 {
			num = strconv.Itoa(line)
		}
		for _, r := range padLeft(num, g.numberWidth()) {
			cells = append(cells, Cell{Rune: r, Number: true})
		}
		cells = append(cells, Cell{Rune: ' '})
	}
	return cells
}

// Prefix returns RenderLine(line) as a string.
func (g *Gutter) Prefix(line int) string {
	var b strings.Builder
	for _, c := range g.RenderLine(line) {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

func (g *Gutter) numberWidth() int {
	return max(len(strconv.Itoa(g.src.LineCount())), g.config.MinLineNumberWidth)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
