package text

import (
	"errors"
	"testing"
	"unicode"

	"github.com/gogpu/svgtext/style"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(nil, opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func layoutText(t *testing.T, e *Engine, node style.Node, box Box) *Layout {
	t.Helper()
	buf, runs := style.Analyze(node)
	l, err := e.Layout(buf, runs, box)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return l
}

func glyphCount(l *Layout) int {
	n := 0
	for _, r := range l.Runs {
		n += len(r.Glyphs)
	}
	return n
}

func TestLayoutHello(t *testing.T) {
	e := newTestEngine(t)
	size := defaultEngineConfig().size
	l := layoutText(t, e, style.Text("Hello"), Box{Width: 500, Height: 100, LineHeight: 1.5, BaselineOffset: 0.8})

	if l.Lines != 1 {
		t.Errorf("Lines = %d, want 1", l.Lines)
	}
	if got := glyphCount(l); got != 5 {
		t.Fatalf("glyph count = %d, want 5", got)
	}
	run := l.Runs[0]
	for i, g := range run.Glyphs {
		if g.Advance <= 0 {
			t.Errorf("glyph %d advance = %v", i, g.Advance)
		}
	}
	if run.EmSize != size {
		t.Errorf("EmSize = %v, want %v", run.EmSize, size)
	}
	if run.RTL() || run.Sideways || run.Orientation != Orientation0 {
		t.Errorf("unexpected run state: rtl=%v sideways=%v orientation=%v", run.RTL(), run.Sideways, run.Orientation)
	}
	if run.Text != "Hello" {
		t.Errorf("Text = %q", run.Text)
	}
	wantBase := 0.8 * 1.5 * size
	if d := run.Origin.Y - wantBase; d > 0.01 || d < -0.01 {
		t.Errorf("baseline y = %v, want %v", run.Origin.Y, wantBase)
	}
	if l.Metrics.Width <= 0 || l.Metrics.Height != 1.5*size {
		t.Errorf("Metrics = %+v", l.Metrics)
	}
	if len(run.EmitOutline(0)) == 0 {
		t.Error("'H' should have an outline")
	}
}

func TestLayoutStyledRuns(t *testing.T) {
	e := newTestEngine(t)
	node := style.Embed(
		style.Text("small "),
		style.Change(style.Style{FontSize: style.Ptr[float32](48), FontWeight: style.Ptr(700)}),
		style.Text("big"),
	)
	l := layoutText(t, e, node, Box{Width: 1000, Height: 200, LineHeight: 1})

	if len(l.Runs) < 2 {
		t.Fatalf("got %d runs, want at least 2", len(l.Runs))
	}
	last := l.Runs[len(l.Runs)-1]
	if last.EmSize != 48 {
		t.Errorf("last run EmSize = %v, want 48", last.EmSize)
	}
	if l.Metrics.Height != 48 {
		t.Errorf("line height follows the largest em: got %v", l.Metrics.Height)
	}
}

func TestLayoutWrap(t *testing.T) {
	e := newTestEngine(t)
	l := layoutText(t, e, style.Text("the quick brown fox jumps over the lazy dog"), Box{Width: 120, Height: 400, LineHeight: 1.2})

	if l.Lines < 2 {
		t.Fatalf("Lines = %d, want wrapping", l.Lines)
	}
	var prevY float32 = -1
	for _, r := range l.Runs {
		if r.Origin.Y < prevY {
			t.Errorf("runs not in line order: %v after %v", r.Origin.Y, prevY)
		}
		prevY = r.Origin.Y
	}
}

func TestLayoutParagraphs(t *testing.T) {
	e := newTestEngine(t)
	l := layoutText(t, e, style.Text("one\ntwo\r\nthree\n"), Box{Width: 500, Height: 500, LineHeight: 1})
	if l.Lines != 4 {
		t.Errorf("Lines = %d, want 4", l.Lines)
	}
	if got := glyphCount(l); got != 11 {
		t.Errorf("glyph count = %d, want 11", got)
	}
}

func TestLayoutEmpty(t *testing.T) {
	e := newTestEngine(t)
	l, err := e.Layout(nil, nil, Box{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(l.Runs) != 0 || l.Lines != 1 {
		t.Errorf("empty layout = %+v", l)
	}
}

func TestLayoutAlignment(t *testing.T) {
	e := newTestEngine(t)
	width := func(a Alignment) float32 {
		l := layoutText(t, e, style.Text("Hi"), Box{Width: 400, Height: 100, Align: a, LineHeight: 1})
		return l.Runs[0].Origin.X
	}
	left, center, right := width(AlignLeft), width(AlignCenter), width(AlignRight)
	if left != 0 {
		t.Errorf("left origin = %v", left)
	}
	if !(left < center && center < right) {
		t.Errorf("origins left=%v center=%v right=%v", left, center, right)
	}
}

func TestLayoutJustify(t *testing.T) {
	e := newTestEngine(t)
	box := Box{Width: 200, Height: 400, Align: AlignJustify, LineHeight: 1}
	l := layoutText(t, e, style.Text("aa bb cc dd ee ff gg hh ii jj kk ll"), box)
	if l.Lines < 2 {
		t.Fatalf("Lines = %d, want wrapping", l.Lines)
	}
	// The first line is stretched to the box width.
	first := l.Runs[0].Origin.Y
	var w float32
	for _, r := range l.Runs {
		if r.Origin.Y == first {
			w += r.Advance()
		}
	}
	if d := w - box.Width; d > 0.01 || d < -0.01 {
		t.Errorf("justified width = %v, want %v", w, box.Width)
	}
}

func TestLayoutVertical(t *testing.T) {
	e := newTestEngine(t)
	box := Box{Width: 100, Height: 400, LineHeight: 1, BaselineOffset: 0.8}

	box.Mode = TBRL
	l := layoutText(t, e, style.Text("abc"), box)
	run := l.Runs[0]
	if !run.Sideways || run.Orientation != Orientation0 {
		t.Errorf("tb-rl run sideways=%v orientation=%v", run.Sideways, run.Orientation)
	}
	if run.Origin.Y != 0 || run.Origin.X <= 50 {
		t.Errorf("tb-rl origin = %v, want top of the right column", run.Origin)
	}

	box.Mode = BTRL
	l = layoutText(t, e, style.Text("abc"), box)
	run = l.Runs[0]
	if !run.Sideways || run.Orientation != Orientation180 {
		t.Errorf("bt-rl run sideways=%v orientation=%v", run.Sideways, run.Orientation)
	}
	if run.Origin.Y != 400 {
		t.Errorf("bt-rl origin = %v, want bottom edge", run.Origin)
	}
}

func TestLayoutRTL(t *testing.T) {
	e := newTestEngine(t)
	l := layoutText(t, e, style.Text("שלום"), Box{Width: 300, Height: 100, LineHeight: 1})
	if len(l.Runs) == 0 {
		t.Fatal("no runs")
	}
	run := l.Runs[0]
	if run.BidiLevel != 1 || !run.RTL() {
		t.Errorf("BidiLevel = %d, want 1", run.BidiLevel)
	}
	if d := run.Origin.X - run.Advance(); d > 0.01 || d < -0.01 {
		t.Errorf("rtl origin %v should be the run's right edge %v", run.Origin.X, run.Advance())
	}
}

func TestLayoutRightToLeftMode(t *testing.T) {
	e := newTestEngine(t)
	l := layoutText(t, e, style.Text("abc"), Box{Width: 300, Height: 100, Mode: RLTB, LineHeight: 1})
	run := l.Runs[0]
	if run.Origin.X <= 0 {
		t.Errorf("rl-tb line should start at the right: origin %v", run.Origin)
	}
}

func TestLayoutInvalidRuns(t *testing.T) {
	e := newTestEngine(t)
	buf := []uint16{'a', 'b', 'c'}
	tests := []struct {
		name string
		runs []style.Run
	}{
		{"past end", []style.Run{{Start: 0, End: 4}}},
		{"reversed", []style.Run{{Start: 2, End: 1}}},
		{"overlap", []style.Run{{Start: 0, End: 2}, {Start: 1, End: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Layout(buf, tt.runs, Box{}); !errors.Is(err, ErrInvalidRun) {
				t.Errorf("Layout() error = %v, want ErrInvalidRun", err)
			}
		})
	}
}

func TestLayoutEffect(t *testing.T) {
	e := newTestEngine(t, WithEffect(func(s style.Style) any {
		if s.Color == nil {
			return nil
		}
		return *s.Color
	}))
	node := style.Embed(style.Change(style.Style{Color: style.Ptr("#ff0000")}), style.Text("red"))
	l := layoutText(t, e, node, Box{Width: 300, Height: 100, LineHeight: 1})
	if got := l.Runs[0].Effect; got != "#ff0000" {
		t.Errorf("Effect = %v", got)
	}
}

func TestDecodeUTF16(t *testing.T) {
	// "a😀b"
	runes, index := decodeUTF16([]uint16{'a', 0xD83D, 0xDE00, 'b'})
	if len(runes) != 3 || runes[1] != 0x1F600 {
		t.Fatalf("runes = %U", runes)
	}
	want := []int{0, 1, 1, 2, 3}
	for i, w := range want {
		if index[i] != w {
			t.Errorf("index[%d] = %d, want %d", i, index[i], w)
		}
	}

	runes, _ = decodeUTF16([]uint16{0xD800, 'x'})
	if runes[0] != unicode.ReplacementChar || runes[1] != 'x' {
		t.Errorf("lone surrogate decoded to %U", runes)
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"a\nb", 2},
		{"a\r\nb", 2},
		{"a\rb\n", 3},
		{"a\u2029b", 2},
	}
	for _, tt := range tests {
		if got := len(paragraphs([]rune(tt.in))); got != tt.want {
			t.Errorf("paragraphs(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
