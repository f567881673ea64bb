package text

import (
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// OutlineOp is the kind of an outline event.
type OutlineOp uint8

const (
	// OutlineBeginFigure starts a new figure at Points[0].
	OutlineBeginFigure OutlineOp = iota

	// OutlineAddLines draws straight lines through every point in Points.
	OutlineAddLines

	// OutlineAddCubic draws a cubic Bézier with controls Points[0] and
	// Points[1] ending at Points[2].
	OutlineAddCubic

	// OutlineEndFigure ends the current figure; Closed reports whether
	// it is closed back to its start point.
	OutlineEndFigure
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineBeginFigure:
		return "BeginFigure"
	case OutlineAddLines:
		return "AddLines"
	case OutlineAddCubic:
		return "AddCubic"
	case OutlineEndFigure:
		return "EndFigure"
	default:
		return unknownStr
	}
}

// OutlineEvent is one step of a glyph outline. Glyph outlines are
// delivered as a flat event stream in which every figure is bracketed by
// BeginFigure and EndFigure.
type OutlineEvent struct {
	Op     OutlineOp
	Points []Point
	Closed bool
}

// OutlineSource provides glyph outlines for a glyph run.
type OutlineSource interface {
	// UnitsPerEm returns the design units per em of the font.
	UnitsPerEm() float32

	// Outline returns the outline of gid in design units with y growing
	// down. The result must not be modified.
	Outline(gid font.GID) []OutlineEvent
}

// faceSource serves outlines from a go-text face through a shared cache.
type faceSource struct {
	face  *font.Face
	cache *Cache[OutlineKey, []OutlineEvent]
}

func (s faceSource) UnitsPerEm() float32 {
	return float32(s.face.Upem())
}

func (s faceSource) Outline(gid font.GID) []OutlineEvent {
	return s.cache.GetOrCreate(OutlineKey{Face: s.face, Glyph: gid}, func() []OutlineEvent {
		return outlineEvents(glyphSegments(s.face, gid))
	})
}

// glyphSegments returns the vector outline of gid, falling back to the
// outline attached to SVG and bitmap glyphs.
func glyphSegments(face *font.Face, gid font.GID) []font.Segment {
	switch d := face.GlyphData(gid).(type) {
	case font.GlyphOutline:
		return d.Segments
	case font.GlyphSVG:
		return d.Outline.Segments
	case font.GlyphBitmap:
		if d.Outline != nil {
			return d.Outline.Segments
		}
	}
	return nil
}

// outlineEvents converts font segments (y up) into an event stream
// (y down). Consecutive line segments are coalesced into one AddLines
// event and quadratic segments are raised to cubics.
func outlineEvents(segments []font.Segment) []OutlineEvent {
	if len(segments) == 0 {
		return nil
	}
	var (
		events []OutlineEvent
		open   bool
		cur    Point
	)
	pt := func(p font.SegmentPoint) Point {
		return Point{X: p.X, Y: -p.Y}
	}
	closeFigure := func() {
		if open {
			events = append(events, OutlineEvent{Op: OutlineEndFigure, Closed: true})
			open = false
		}
	}
	for _, seg := range segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			closeFigure()
			cur = pt(seg.Args[0])
			events = append(events, OutlineEvent{Op: OutlineBeginFigure, Points: []Point{cur}})
			open = true
			continue
		}
		if !open {
			events = append(events, OutlineEvent{Op: OutlineBeginFigure, Points: []Point{cur}})
			open = true
		}
		switch seg.Op {
		case ot.SegmentOpLineTo:
			p := pt(seg.Args[0])
			if last := &events[len(events)-1]; last.Op == OutlineAddLines {
				last.Points = append(last.Points, p)
			} else {
				events = append(events, OutlineEvent{Op: OutlineAddLines, Points: []Point{p}})
			}
			cur = p
		case ot.SegmentOpQuadTo:
			q, end := pt(seg.Args[0]), pt(seg.Args[1])
			c1, c2 := elevate(cur, q, end)
			events = append(events, OutlineEvent{Op: OutlineAddCubic, Points: []Point{c1, c2, end}})
			cur = end
		case ot.SegmentOpCubeTo:
			end := pt(seg.Args[2])
			events = append(events, OutlineEvent{Op: OutlineAddCubic, Points: []Point{pt(seg.Args[0]), pt(seg.Args[1]), end}})
			cur = end
		}
	}
	closeFigure()
	return events
}

// elevate returns the cubic control points equivalent to the quadratic
// p0, q, p3.
func elevate(p0, q, p3 Point) (c1, c2 Point) {
	const k = 2.0 / 3.0
	c1 = Point{X: p0.X + k*(q.X-p0.X), Y: p0.Y + k*(q.Y-p0.Y)}
	c2 = Point{X: p3.X + k*(q.X-p3.X), Y: p3.Y + k*(q.Y-p3.Y)}
	return c1, c2
}

// transformEvents returns a copy of events with every point scaled by s
// and translated by (dx, dy).
func transformEvents(events []OutlineEvent, s, dx, dy float32) []OutlineEvent {
	out := make([]OutlineEvent, len(events))
	for i, e := range events {
		out[i] = OutlineEvent{Op: e.Op, Closed: e.Closed}
		if len(e.Points) == 0 {
			continue
		}
		pts := make([]Point, len(e.Points))
		for j, p := range e.Points {
			pts[j] = Point{X: p.X*s + dx, Y: p.Y*s + dy}
		}
		out[i].Points = pts
	}
	return out
}
