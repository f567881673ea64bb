// Package text lays out styled text into positioned glyph runs.
//
// The pipeline follows a separation of concerns:
//
//   - Fonts: the font set, holding the embedded Go fonts plus font files
//     loaded by path or glob pattern
//   - Engine: shapes text with go-text/typesetting (HarfBuzz port),
//     resolves bidi levels, wraps lines and places them in a Box
//   - GlyphRun: the output, one face and size per run, with glyph
//     outlines available through EmitOutline
//
// # Example usage
//
//	fonts, err := text.NewFonts()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := fonts.LoadFiles([]string{"fonts/**.ttf"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	engine, err := text.NewEngine(fonts, text.WithDefaultSize(32))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf, runs := style.Analyze(style.Text("Hello, world"))
//	layout, err := engine.Layout(buf, runs, text.Box{Width: 400, Height: 300, LineHeight: 1.5, BaselineOffset: 0.8})
//
// # Writing modes
//
// Eight writing modes combine a reading direction with a line flow
// direction. Vertical modes shape text horizontally and turn the runs a
// quarter (top to bottom) or three quarters (bottom to top).
//
// # Outlines
//
// Glyph outlines are decoded once per face, glyph and variation instance
// and kept in an LRU Cache. Quadratic segments are elevated to cubics so
// consumers only deal with lines and cubic Béziers.
package text
