package gutter

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/linewatch/internal/engine/buffer"
	"github.com/dshills/linewatch/internal/engine/tracking"
	"github.com/dshills/linewatch/internal/integration/versioning"
)

// newTracked returns a tracker for a document with every change kind:
// a deletion before line 1, a modified line 2, an added line 4 and an
// unsaved line 5.
func newTracked(t *testing.T) (*tracking.Tracker, *buffer.Document) {
	t.Helper()

	p := versioning.NewMemoryProvider()
	p.Set("doc.txt", "zero\none\ntwo\nthree\nfour")
	doc := buffer.New("doc.txt", "one\nTWO\nthree\nnew\nfour")

	tr := tracking.NewTracker(p)
	tr.Initialize(doc)
	t.Cleanup(tr.Dispose)

	if err := doc.Insert(buffer.Position{Line: 5, Column: 0}, "x"); err != nil {
		t.Fatal(err)
	}
	return tr, doc
}

func TestParseSigns(t *testing.T) {
	s, err := ParseSigns(".ACDU")
	if err != nil {
		t.Fatal(err)
	}
	want := map[tracking.ChangeKind]rune{
		tracking.ChangeNone:     '.',
		tracking.ChangeAdded:    'A',
		tracking.ChangeModified: 'C',
		tracking.ChangeDeleted:  'D',
		tracking.ChangeUnsaved:  'U',
	}
	for kind, r := range want {
		if got := s.For(kind); got != r {
			t.Errorf("For(%v) = %q, want %q", kind, got, r)
		}
	}
	if s.String() != ".ACDU" {
		t.Errorf("String() = %q", s.String())
	}

	for _, bad := range []string{"", "+~_*", "  +~_*"} {
		if _, err := ParseSigns(bad); err == nil {
			t.Errorf("ParseSigns(%q) should fail", bad)
		}
	}

	if got := DefaultSigns().String(); got != DefaultSignSet {
		t.Errorf("DefaultSigns() = %q, want %q", got, DefaultSignSet)
	}
}

func TestGutterSigns(t *testing.T) {
	tr, _ := newTracked(t)
	g := New(tr, DefaultConfig())

	if !g.HasTopMarker() || g.FirstRow() != 0 {
		t.Errorf("expected a top marker, FirstRow() = %d", g.FirstRow())
	}

	tests := []struct {
		line int
		sign rune
	}{
		{0, '_'},
		{1, ' '},
		{2, '~'},
		{3, ' '},
		{4, '+'},
		{5, '*'},
		{6, ' '},
		{-1, ' '},
	}
	for _, tt := range tests {
		if got := g.Sign(tt.line); got != tt.sign {
			t.Errorf("Sign(%d) = %q, want %q", tt.line, got, tt.sign)
		}
	}
}

func TestGutterPrefix(t *testing.T) {
	tr, _ := newTracked(t)

	tests := []struct {
		name   string
		config Config
		line   int
		want   string
	}{
		{"numbered", DefaultConfig(), 2, "~   2 "},
		{"unchanged", DefaultConfig(), 1, "    1 "},
		{"top marker", DefaultConfig(), 0, "_     "},
		{"signs only", Config{Signs: DefaultSigns()}, 4, "+ "},
		{"wide numbers", Config{ShowLineNumbers: true, Signs: DefaultSigns()}, 5, "* 5 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tr, tt.config)
			got := g.Prefix(tt.line)
			if got != tt.want {
				t.Errorf("Prefix(%d) = %q, want %q", tt.line, got, tt.want)
			}
			if len([]rune(got)) != g.Width() {
				t.Errorf("prefix has %d cells, Width() = %d", len([]rune(got)), g.Width())
			}
		})
	}
}

func TestGutterNoTopMarker(t *testing.T) {
	p := versioning.NewMemoryProvider()
	p.Set("doc.txt", "a\nb")
	tr := tracking.NewTracker(p)
	tr.Initialize(buffer.New("doc.txt", "a\nb\nc"))

	g := New(tr, DefaultConfig())
	if g.HasTopMarker() || g.FirstRow() != 1 {
		t.Errorf("unexpected top marker, FirstRow() = %d", g.FirstRow())
	}
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, width)
	for i := range width {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes[i] = ch
	}
	end := len(runes)
	for end > 0 && runes[end-1] == ' ' {
		end--
	}
	return string(runes[:end])
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func TestDraw(t *testing.T) {
	tr, doc := newTracked(t)
	g := New(tr, DefaultConfig())
	screen := newScreen(t, 20, 8)

	g.Draw(screen, doc, Rect{Width: 20, Height: 8}, 0, tcell.StyleDefault)
	screen.Show()

	want := []string{
		"_",
		"    1 one",
		"~   2 TWO",
		"    3 three",
		"+   4 new",
		"*   5 xfour",
		"~",
		"~",
	}
	for y, w := range want {
		if got := readScreenLine(screen, 0, y, 20); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}

	_, _, style, _ := screen.GetContent(0, 2)
	if fg, _, _ := style.Decompose(); fg != tcell.ColorYellow {
		t.Errorf("modified sign colour = %v, want yellow", fg)
	}
	_, _, style, _ = screen.GetContent(0, 4)
	if fg, _, _ := style.Decompose(); fg != tcell.ColorGreen {
		t.Errorf("added sign colour = %v, want green", fg)
	}
}

func TestDrawClipsAndScrolls(t *testing.T) {
	tr, doc := newTracked(t)
	g := New(tr, DefaultConfig())
	screen := newScreen(t, 20, 4)

	g.Draw(screen, doc, Rect{X: 2, Y: 1, Width: 8, Height: 2}, 2, tcell.StyleDefault)
	screen.Show()

	if got := readScreenLine(screen, 0, 0, 20); got != "" {
		t.Errorf("row above area = %q, want empty", got)
	}
	if got := readScreenLine(screen, 0, 1, 20); got != "  ~   2 TW" {
		t.Errorf("row 1 = %q", got)
	}
	if got := readScreenLine(screen, 0, 2, 20); got != "      3 th" {
		t.Errorf("row 2 = %q", got)
	}
}

func TestDrawTabsAndWideRunes(t *testing.T) {
	screen := newScreen(t, 12, 1)

	drawText(screen, "a\tb世c", 0, 0, 12, tcell.StyleDefault)
	screen.Show()

	ch, _, _, _ := screen.GetContent(4, 0)
	if ch != 'b' {
		t.Errorf("tab should advance to column 4, got %q there", ch)
	}
	ch, _, _, _ = screen.GetContent(7, 0)
	if ch != 'c' {
		t.Errorf("wide rune should take two columns, got %q at column 7", ch)
	}
}
