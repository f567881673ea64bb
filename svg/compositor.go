package svg

import (
	"image/color"

	"github.com/gogpu/svgtext/style"
	"github.com/gogpu/svgtext/text"
)

// PlacedGlyph is a glyph path placed at a run-local position in design
// units.
type PlacedGlyph struct {
	PathID uint32
	X, Y   float32
}

// RunRecord is a composed glyph run: a transform shared by its glyphs and
// the placements of every glyph that has an outline.
type RunRecord struct {
	// X and Y are the baseline origin on the canvas.
	X, Y float32

	// Rotation is a multiple of 90 degrees.
	Rotation float32

	// InverseScale maps design units back to layout units.
	InverseScale float32

	// Color is the run's fill as a hex string, or nil for the default.
	Color *string

	Glyphs []PlacedGlyph

	SourceText string
	UnitsPerEm float32
}

// Compositor composes glyph runs, interning glyph outlines in a shared
// PathStore.
type Compositor struct {
	store *PathStore
}

// NewCompositor returns a compositor interning paths in store.
func NewCompositor(store *PathStore) *Compositor {
	return &Compositor{store: store}
}

// Compose turns run into a RunRecord, offsetting its origin by (dx, dy).
// The pen moves by each glyph's advance, leftwards for odd bidi levels.
func (c *Compositor) Compose(run *text.GlyphRun, dx, dy float32) RunRecord {
	upem := run.UnitsPerEm()
	rec := RunRecord{
		X:          run.Origin.X + dx,
		Y:          run.Origin.Y + dy,
		Rotation:   Rotation(run.Orientation, run.Sideways),
		Color:      colorOf(run.Effect),
		SourceText: run.Text,
		UnitsPerEm: upem,
	}
	if upem <= 0 || run.EmSize <= 0 {
		return rec
	}
	rec.InverseScale = run.EmSize / upem

	sink := NewSink(upem / run.EmSize)
	dir := float32(1)
	if run.RTL() {
		dir = -1
	}

	var penX, penY float32
	for i, g := range run.Glyphs {
		sink.Consume(run.EmitOutline(i))
		if id := c.store.Intern(sink.Reset()); id != 0 {
			rec.Glyphs = append(rec.Glyphs, PlacedGlyph{
				PathID: id,
				X:      sink.Quantize(penX),
				Y:      sink.Quantize(penY),
			})
		}
		penX += dir * g.Advance
	}
	return rec
}

// Rotation returns the rotation in degrees of a run with orientation o,
// adding a quarter turn for sideways runs.
func Rotation(o text.Orientation, sideways bool) float32 {
	q := o.Quarters()
	if sideways {
		q++
	}
	return float32(90 * (q % 4))
}

// colorOf returns the hex form of effect if it is a color.
func colorOf(effect any) *string {
	c, ok := effect.(color.Color)
	if !ok {
		return nil
	}
	hex := style.HexString(c)
	return &hex
}
