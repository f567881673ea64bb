package text

import "github.com/chewxy/math32"

// axes maps logical layout coordinates to the layout box. The inline
// coordinate s runs along a line in the direction glyph runs advance
// before rotation; the block coordinate c is the physical x (vertical
// modes) or y (horizontal modes) of the line box.
type axes struct {
	mode   WritingMode
	inline float32
	block  float32
}

func newAxes(box Box) axes {
	a := axes{mode: box.Mode, inline: max(box.inline(), 0)}
	if box.Mode.IsVertical() {
		a.block = box.Width
	} else {
		a.block = box.Height
	}
	return a
}

// point returns the position of inline coordinate s on block coordinate c.
func (a axes) point(s, c float32) Point {
	switch a.mode.Reading() {
	case DirectionTTB:
		return Point{X: c, Y: s}
	case DirectionBTT:
		return Point{X: c, Y: a.inline - s}
	default:
		return Point{X: s, Y: c}
	}
}

// lineBox returns the lower block coordinate of a line box of height h
// whose leading edge lies at distance b along the flow direction.
func (a axes) lineBox(b, h float32) float32 {
	switch a.mode.Flow() {
	case DirectionBTT, DirectionRTL:
		return a.block - b - h
	default:
		return b
	}
}

// baseline returns the block coordinate of the baseline of the line box
// [lo, lo+h]. The baseline sits bo*h from the box edge on the ascent side
// of the glyphs.
func (a axes) baseline(lo, h, bo float32) float32 {
	if a.mode.Reading() == DirectionTTB {
		// Runs turned clockwise have their ascent side facing right.
		return lo + h - bo*h
	}
	return lo + bo*h
}

// orientation returns how runs are turned in this mode.
func (a axes) orientation() (Orientation, bool) {
	switch a.mode.Reading() {
	case DirectionTTB:
		return Orientation0, true
	case DirectionBTT:
		return Orientation180, true
	default:
		return Orientation0, false
	}
}

// alignStart returns the inline coordinate at which a line of the given
// width starts.
func alignStart(box Box, inline, width float32) float32 {
	rtl := box.Mode.Reading() == DirectionRTL
	switch box.Align {
	case AlignCenter:
		return (inline - width) / 2
	case AlignRight:
		if rtl {
			return 0
		}
		return inline - width
	default:
		if rtl {
			return inline - width
		}
		return 0
	}
}

// bounds accumulates the union of rectangles.
type bounds struct {
	minX, minY, maxX, maxY float32
	empty                  bool
}

func newBounds() bounds {
	return bounds{empty: true}
}

func (b *bounds) add(p, q Point) {
	lo := Point{X: math32.Min(p.X, q.X), Y: math32.Min(p.Y, q.Y)}
	hi := Point{X: math32.Max(p.X, q.X), Y: math32.Max(p.Y, q.Y)}
	if b.empty {
		b.minX, b.minY, b.maxX, b.maxY = lo.X, lo.Y, hi.X, hi.Y
		b.empty = false
		return
	}
	b.minX = math32.Min(b.minX, lo.X)
	b.minY = math32.Min(b.minY, lo.Y)
	b.maxX = math32.Max(b.maxX, hi.X)
	b.maxY = math32.Max(b.maxY, hi.Y)
}

func (b bounds) metrics() Metrics {
	if b.empty {
		return Metrics{}
	}
	return Metrics{Left: b.minX, Top: b.minY, Width: b.maxX - b.minX, Height: b.maxY - b.minY}
}

// place stacks lines along the flow direction and turns line runs into
// positioned glyph runs.
func (e *Engine) place(lines []line, box Box) *Layout {
	a := newAxes(box)
	orient, sideways := a.orientation()
	out := &Layout{Lines: len(lines)}
	ext := newBounds()

	var b float32
	for _, l := range lines {
		h := box.LineHeight * l.em
		lo := a.lineBox(b, h)
		base := a.baseline(lo, h, box.BaselineOffset)
		start := alignStart(box, a.inline, l.width)
		ext.add(a.point(start, lo), a.point(start+l.width, lo+h))

		s := start
		for _, lr := range l.runs {
			origin := s
			var level uint8
			if lr.rtl {
				origin = s + lr.advance
				level = 1
			}
			s += lr.advance
			if len(lr.glyphs) == 0 {
				continue
			}
			out.Runs = append(out.Runs, GlyphRun{
				Origin:      a.point(origin, base),
				EmSize:      lr.style.emSize,
				Font:        faceSource{face: lr.out.Face, cache: e.outlines},
				Glyphs:      lr.glyphs,
				BidiLevel:   level,
				Sideways:    sideways,
				Orientation: orient,
				Effect:      lr.style.effect,
				Text:        lr.text,
			})
		}
		b += h
	}
	out.Metrics = ext.metrics()
	return out
}
