package text

import (
	"testing"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

func seg(op ot.SegmentOp, pts ...float32) font.Segment {
	s := font.Segment{Op: op}
	for i := 0; i+1 < len(pts); i += 2 {
		s.Args[i/2] = font.SegmentPoint{X: pts[i], Y: pts[i+1]}
	}
	return s
}

func TestOutlineEventsLinesAndFlip(t *testing.T) {
	events := outlineEvents([]font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpLineTo, 100, 0),
		seg(ot.SegmentOpLineTo, 100, 200),
		seg(ot.SegmentOpLineTo, 0, 200),
	})

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}
	if events[0].Op != OutlineBeginFigure || events[1].Op != OutlineAddLines || events[2].Op != OutlineEndFigure {
		t.Errorf("ops = %v %v %v", events[0].Op, events[1].Op, events[2].Op)
	}
	if len(events[1].Points) != 3 {
		t.Errorf("consecutive lines should coalesce, got %d points", len(events[1].Points))
	}
	if p := events[1].Points[1]; p != (Point{100, -200}) {
		t.Errorf("y not flipped: %v", p)
	}
	if !events[2].Closed {
		t.Error("figure should be closed")
	}
}

func TestOutlineEventsQuadElevation(t *testing.T) {
	events := outlineEvents([]font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpQuadTo, 30, 30, 60, 0),
	})
	if len(events) != 3 || events[1].Op != OutlineAddCubic {
		t.Fatalf("unexpected events %+v", events)
	}
	pts := events[1].Points
	want := []Point{{20, -20}, {40, -20}, {60, 0}}
	for i := range want {
		if !nearPoint(pts[i], want[i]) {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestOutlineEventsMultipleFigures(t *testing.T) {
	events := outlineEvents([]font.Segment{
		seg(ot.SegmentOpMoveTo, 0, 0),
		seg(ot.SegmentOpLineTo, 10, 0),
		seg(ot.SegmentOpMoveTo, 20, 0),
		seg(ot.SegmentOpCubeTo, 20, 10, 30, 10, 30, 0),
	})
	var begins, ends int
	for _, e := range events {
		switch e.Op {
		case OutlineBeginFigure:
			begins++
		case OutlineEndFigure:
			ends++
		}
	}
	if begins != 2 || ends != 2 {
		t.Errorf("begins=%d ends=%d, want 2 and 2", begins, ends)
	}
	if outlineEvents(nil) != nil {
		t.Error("empty outline should yield no events")
	}
}

func TestOutlineOpString(t *testing.T) {
	if OutlineAddCubic.String() != "AddCubic" {
		t.Errorf("String() = %q", OutlineAddCubic.String())
	}
	if OutlineOp(99).String() != unknownStr {
		t.Errorf("String() of invalid op = %q", OutlineOp(99).String())
	}
}

// squareSource serves a unit square for every glyph except 0.
type squareSource struct{ upem float32 }

func (s squareSource) UnitsPerEm() float32 { return s.upem }

func (s squareSource) Outline(gid font.GID) []OutlineEvent {
	if gid == 0 {
		return nil
	}
	return []OutlineEvent{
		{Op: OutlineBeginFigure, Points: []Point{{0, 0}}},
		{Op: OutlineAddLines, Points: []Point{{s.upem, 0}, {s.upem, -s.upem}, {0, -s.upem}}},
		{Op: OutlineEndFigure, Closed: true},
	}
}

func TestEmitOutline(t *testing.T) {
	run := GlyphRun{
		EmSize: 20,
		Font:   squareSource{upem: 1000},
		Glyphs: []Glyph{{ID: 1, Advance: 20, XOffset: 2, YOffset: 3}, {ID: 0, Advance: 5}},
	}

	events := run.EmitOutline(0)
	if len(events) != 3 {
		t.Fatalf("got %d events", len(events))
	}
	if p := events[0].Points[0]; !nearPoint(p, Point{2, 3}) {
		t.Errorf("start = %v, want offset (2, 3)", p)
	}
	if p := events[1].Points[1]; !nearPoint(p, Point{22, -17}) {
		t.Errorf("corner = %v, want (22, -17)", p)
	}

	if got := run.EmitOutline(1); got != nil {
		t.Errorf("glyph without outline yielded %v", got)
	}
	if got := run.EmitOutline(5); got != nil {
		t.Error("out of range index should yield nothing")
	}

	run.BidiLevel = 1
	events = run.EmitOutline(0)
	if p := events[0].Points[0]; !nearPoint(p, Point{-18, 3}) {
		t.Errorf("rtl start = %v, want (-18, 3)", p)
	}
	if !run.RTL() || run.Advance() != 25 {
		t.Errorf("RTL() = %v, Advance() = %v", run.RTL(), run.Advance())
	}
}

func TestEmitOutlineDoesNotModifySource(t *testing.T) {
	src := squareSource{upem: 100}
	run := GlyphRun{EmSize: 50, Font: src, Glyphs: []Glyph{{ID: 1}}}
	_ = run.EmitOutline(0)
	if p := src.Outline(1)[1].Points[0]; p != (Point{100, 0}) {
		t.Errorf("source mutated: %v", p)
	}
}

func nearPoint(a, b Point) bool {
	const eps = 1e-3
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx > -eps && dx < eps && dy > -eps && dy < eps
}
