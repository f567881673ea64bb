package svg

import (
	"testing"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/svgtext/style"
	"github.com/gogpu/svgtext/text"
)

// boxFont draws every glyph but 0 as a box of its design size.
type boxFont struct{ upem float32 }

func (f boxFont) UnitsPerEm() float32 { return f.upem }

func (f boxFont) Outline(gid font.GID) []text.OutlineEvent {
	if gid == 0 {
		return nil
	}
	w := f.upem / 2
	h := f.upem * float32(gid) / 4
	return []text.OutlineEvent{
		{Op: text.OutlineBeginFigure, Points: []text.Point{{X: 0, Y: 0}}},
		{Op: text.OutlineAddLines, Points: []text.Point{{X: w, Y: 0}, {X: w, Y: -h}, {X: 0, Y: -h}}},
		{Op: text.OutlineEndFigure, Closed: true},
	}
}

func testRun(level uint8) *text.GlyphRun {
	return &text.GlyphRun{
		Origin: text.Point{X: 100, Y: 50},
		EmSize: 10,
		Font:   boxFont{upem: 1000},
		Glyphs: []text.Glyph{
			{ID: 1, Advance: 5},
			{ID: 0, Advance: 3},
			{ID: 1, Advance: 5},
			{ID: 2, Advance: 6},
		},
		BidiLevel: level,
		Text:      "a bc",
	}
}

func TestComposeAdvanceDirection(t *testing.T) {
	tests := []struct {
		name  string
		level uint8
		wantX []float32
	}{
		{"ltr", 0, []float32{0, 800, 1300}},
		{"rtl", 1, []float32{0, -800, -1300}},
		{"nested rtl", 3, []float32{0, -800, -1300}},
		{"nested ltr", 2, []float32{0, 800, 1300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompositor(NewPathStore())
			rec := c.Compose(testRun(tt.level), 0, 0)

			if len(rec.Glyphs) != len(tt.wantX) {
				t.Fatalf("got %d placements, want %d", len(rec.Glyphs), len(tt.wantX))
			}
			for i, g := range rec.Glyphs {
				if g.X != tt.wantX[i] || g.Y != 0 {
					t.Errorf("glyph %d at (%v, %v), want (%v, 0)", i, g.X, g.Y, tt.wantX[i])
				}
			}
		})
	}
}

func TestComposeInternsOutlines(t *testing.T) {
	store := NewPathStore()
	c := NewCompositor(store)
	rec := c.Compose(testRun(0), 0, 0)

	if store.Len() != 2 {
		t.Errorf("store has %d paths, want 2", store.Len())
	}
	if rec.Glyphs[0].PathID != rec.Glyphs[1].PathID {
		t.Error("identical glyphs should share a path")
	}
	if rec.Glyphs[2].PathID == rec.Glyphs[0].PathID {
		t.Error("different glyphs should not share a path")
	}
	if d, _ := store.Path(1); d != "M 0 0 L 500 0 L 500 -250 L 0 -250 Z " {
		t.Errorf("path 1 = %q", d)
	}

	// A second run elsewhere reuses the same ids.
	rec2 := c.Compose(testRun(0), 10, 10)
	if store.Len() != 2 || rec2.Glyphs[0].PathID != rec.Glyphs[0].PathID {
		t.Errorf("second run grew the store to %d", store.Len())
	}
}

func TestComposeRunTransform(t *testing.T) {
	c := NewCompositor(NewPathStore())
	run := testRun(0)
	run.Sideways = true
	run.Orientation = text.Orientation180
	run.Effect = style.RGBA{R: 1, A: 1}

	rec := c.Compose(run, 452, -8)

	if rec.X != 552 || rec.Y != 42 {
		t.Errorf("origin = (%v, %v), want (552, 42)", rec.X, rec.Y)
	}
	if rec.InverseScale != 0.01 {
		t.Errorf("InverseScale = %v, want 0.01", rec.InverseScale)
	}
	if rec.Rotation != 270 {
		t.Errorf("Rotation = %v, want 270", rec.Rotation)
	}
	if rec.Color == nil || *rec.Color != "#ff0000" {
		t.Errorf("Color = %v, want #ff0000", rec.Color)
	}
	if rec.SourceText != "a bc" || rec.UnitsPerEm != 1000 {
		t.Errorf("SourceText = %q, UnitsPerEm = %v", rec.SourceText, rec.UnitsPerEm)
	}
}

func TestComposeWithoutColor(t *testing.T) {
	c := NewCompositor(NewPathStore())
	run := testRun(0)
	run.Effect = "not a color"
	if rec := c.Compose(run, 0, 0); rec.Color != nil {
		t.Errorf("Color = %q, want nil", *rec.Color)
	}
}

func TestRotation(t *testing.T) {
	tests := []struct {
		o        text.Orientation
		sideways bool
		want     float32
	}{
		{text.Orientation0, false, 0},
		{text.Orientation0, true, 90},
		{text.Orientation90, false, 90},
		{text.Orientation90, true, 180},
		{text.Orientation180, false, 180},
		{text.Orientation180, true, 270},
		{text.Orientation270, false, 270},
		{text.Orientation270, true, 0},
	}
	for _, tt := range tests {
		if got := Rotation(tt.o, tt.sideways); got != tt.want {
			t.Errorf("Rotation(%v, %v) = %v, want %v", tt.o, tt.sideways, got, tt.want)
		}
	}
}
