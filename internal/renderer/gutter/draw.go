package gutter

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// TabWidth is the tab stop interval used when drawing text.
const TabWidth = 4

// TextSource provides line text. buffer.Reader implements it.
type TextSource interface {
	LineText(n int) string
}

// Rect is a screen area.
type Rect struct {
	X, Y, Width, Height int
}

// Draw renders rows starting at line top into area: the gutter followed by
// the line text, clipped to the area. Rows past the last line show '~'.
func (g *Gutter) Draw(screen tcell.Screen, text TextSource, area Rect, top int, base tcell.Style) {
	count := g.src.LineCount()
	for row := range area.Height {
		y := area.Y + row
		line := top + row
		clearRow(screen, area, y, base)

		if line > count {
			screen.SetContent(area.X, y, '~', nil, base.Dim(true))
			continue
		}

		x := area.X
		right := area.X + area.Width
		for _, c := range g.RenderLine(line) {
			if x >= right {
				break
			}
			style := base
			switch {
			case c.Number:
				style = base.Dim(true)
			case c.Rune != ' ':
				style = StyleFor(base, c.Kind)
			}
			screen.SetContent(x, y, c.Rune, nil, style)
			x++
		}

		if line > 0 {
			drawText(screen, text.LineText(line), x, y, right, base)
		}
	}
}

// drawText draws s from column x up to right, one grapheme cluster per
// cell run. Tabs advance to the next tab stop.
func drawText(screen tcell.Screen, s string, x, y, right int, style tcell.Style) {
	start := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() && x < right {
		runes := gr.Runes()
		if runes[0] == '\t' {
			next := start + ((x-start)/TabWidth+1)*TabWidth
			for ; x < next && x < right; x++ {
				screen.SetContent(x, y, ' ', nil, style)
			}
			continue
		}

		w := gr.Width()
		if w == 0 {
			continue
		}
		if x+w > right {
			break
		}
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}

func clearRow(screen tcell.Screen, area Rect, y int, style tcell.Style) {
	for x := area.X; x < area.X+area.Width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
