package text

import "github.com/go-text/typesetting/font"

// Glyph is one shaped glyph of a GlyphRun. Advance and offsets are in
// layout units (the run's em size is EmSize of them).
type Glyph struct {
	ID font.GID

	// Advance is the distance from this glyph's pen position to the
	// next one, along the run's reading direction.
	Advance float32

	// XOffset and YOffset displace the glyph from its pen position;
	// x grows right and y grows down in the run's coordinate system.
	XOffset, YOffset float32

	// Cluster is the index of the first rune of the glyph's cluster in
	// the run's paragraph.
	Cluster int
}

// GlyphRun is a sequence of glyphs sharing one face, size, bidi level and
// orientation, positioned on one baseline.
//
// Glyphs are in logical order. For an odd BidiLevel the pen starts at
// Origin, which is the run's right edge, and moves left.
type GlyphRun struct {
	// Origin is the pen position of the first glyph on the baseline,
	// relative to the layout box.
	Origin Point

	// EmSize is the font size in layout units.
	EmSize float32

	Font   OutlineSource
	Glyphs []Glyph

	// BidiLevel is odd for right-to-left runs.
	BidiLevel uint8

	// Sideways marks a run whose glyphs are laid on their side, as in
	// vertical writing modes. It adds a quarter turn to Orientation.
	Sideways    bool
	Orientation Orientation

	// Effect is the drawing effect computed from the run's style by the
	// engine's effect function, or nil.
	Effect any

	// Text is the source text covered by the run.
	Text string
}

// UnitsPerEm returns the design units per em of the run's font.
func (r *GlyphRun) UnitsPerEm() float32 {
	if r.Font == nil {
		return 0
	}
	return r.Font.UnitsPerEm()
}

// RTL reports whether the run advances right to left.
func (r *GlyphRun) RTL() bool {
	return r.BidiLevel%2 == 1
}

// Advance returns the sum of the glyph advances.
func (r *GlyphRun) Advance() float32 {
	var sum float32
	for _, g := range r.Glyphs {
		sum += g.Advance
	}
	return sum
}

// EmitOutline returns the outline of glyph i in layout units with y
// growing down, relative to the glyph's pen position. The glyph offset
// is applied, and glyphs of right-to-left runs are drawn to the left of
// the pen. A glyph without outline (such as a space) yields no events.
func (r *GlyphRun) EmitOutline(i int) []OutlineEvent {
	if r.Font == nil || i < 0 || i >= len(r.Glyphs) {
		return nil
	}
	upem := r.Font.UnitsPerEm()
	if upem <= 0 {
		return nil
	}
	g := r.Glyphs[i]
	events := r.Font.Outline(g.ID)
	if len(events) == 0 {
		return nil
	}
	dx := g.XOffset
	if r.RTL() {
		dx -= g.Advance
	}
	return transformEvents(events, r.EmSize/upem, dx, g.YOffset)
}
