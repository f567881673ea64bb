package svg

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/svgtext/text"
)

// resolution is the number of path units per design unit kept after
// quantization.
const resolution = 256

// Sink accumulates glyph outline events into SVG path data.
//
// Incoming coordinates are in layout units. Each one is multiplied by the
// sink's scalar (design units per layout unit) and rounded to 1/256 of a
// design unit. Cubic segments whose control points are those of a
// degree-elevated quadratic are written as quadratics.
type Sink struct {
	scalar float32
	buf    []byte

	// last is the unscaled end point of the previous segment.
	last text.Point
}

// NewSink returns a sink scaling coordinates by scalar.
func NewSink(scalar float32) *Sink {
	return &Sink{scalar: scalar}
}

// Scalar returns the scale applied to every coordinate.
func (s *Sink) Scalar() float32 {
	return s.scalar
}

// Quantize scales v and rounds it to the path resolution.
func (s *Sink) Quantize(v float32) float32 {
	return math32.Round(v*s.scalar*resolution) / resolution
}

// Consume feeds an outline event stream into the sink.
func (s *Sink) Consume(events []text.OutlineEvent) {
	for _, e := range events {
		switch e.Op {
		case text.OutlineBeginFigure:
			if len(e.Points) > 0 {
				s.BeginFigure(e.Points[0])
			}
		case text.OutlineAddLines:
			s.AddLines(e.Points)
		case text.OutlineAddCubic:
			if len(e.Points) >= 3 {
				s.AddCubic(e.Points[0], e.Points[1], e.Points[2])
			}
		case text.OutlineEndFigure:
			s.EndFigure(e.Closed)
		}
	}
}

// BeginFigure starts a figure at p.
func (s *Sink) BeginFigure(p text.Point) {
	s.buf = append(s.buf, "M "...)
	s.point(p)
	s.last = p
}

// AddLines draws straight lines through ps.
func (s *Sink) AddLines(ps []text.Point) {
	for _, p := range ps {
		s.buf = append(s.buf, "L "...)
		s.point(p)
		s.last = p
	}
}

// AddCubic draws a cubic Bézier from the current point with controls p1
// and p2 to p3.
func (s *Sink) AddCubic(p1, p2, p3 text.Point) {
	p0 := s.last
	m1 := text.Point{X: p0.X + (p1.X-p0.X)*1.5, Y: p0.Y + (p1.Y-p0.Y)*1.5}
	m2 := text.Point{X: p3.X + (p2.X-p3.X)*1.5, Y: p3.Y + (p2.Y-p3.Y)*1.5}

	// The collapse test runs in the scaled space of the output.
	if resolution*math32.Abs((m2.X-m1.X)*s.scalar) < 1 &&
		resolution*math32.Abs((m2.Y-m1.Y)*s.scalar) < 1 {
		s.buf = append(s.buf, "Q "...)
		s.point(text.Point{X: (m1.X + m2.X) / 2, Y: (m1.Y + m2.Y) / 2})
		s.point(p3)
	} else {
		s.buf = append(s.buf, "C "...)
		s.point(p1)
		s.point(p2)
		s.point(p3)
	}
	s.last = p3
}

// EndFigure ends the current figure, closing it if closed is set.
func (s *Sink) EndFigure(closed bool) {
	if closed {
		s.buf = append(s.buf, "Z "...)
	}
}

// Reset returns the accumulated path data and clears the sink.
func (s *Sink) Reset() string {
	d := string(s.buf)
	s.buf = s.buf[:0]
	s.last = text.Point{}
	return d
}

func (s *Sink) point(p text.Point) {
	s.buf = appendCoord(s.buf, s.Quantize(p.X))
	s.buf = append(s.buf, ' ')
	s.buf = appendCoord(s.buf, s.Quantize(p.Y))
	s.buf = append(s.buf, ' ')
}
