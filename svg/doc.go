// Package svg turns laid out glyph runs into an SVG document in which
// every distinct glyph outline is stored once as a <path> definition and
// placed with <use> elements.
//
// A Composer owns the document-wide PathStore. For every frame the
// caller computes the frame offset with FrameOffset, composes each glyph
// run with a Compositor and adds the resulting RunRecord to the frame:
//
//	c := svg.NewComposer(width, height)
//	comp := svg.NewCompositor(c.Store())
//	frame := c.Frame(title, desc, false)
//	dx, dy := svg.FrameOffset(rect, hAlign, vAlign, layout.Metrics)
//	for i := range layout.Runs {
//		frame.Add(comp.Compose(&layout.Runs[i], dx, dy))
//	}
//	_, err := c.WriteTo(w)
//
// Glyph paths are written in font design units; each run group scales
// them back to layout units.
package svg
