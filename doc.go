// Package svgtext converts documents of styled text frames into SVG
// images made of glyph outlines.
//
// Every distinct glyph outline is written once as a <path> in the
// document's <defs> and placed with <use> elements, so the output renders
// identically without the fonts it was made with.
//
// # Pipeline
//
// A document (see package document) holds a canvas size, font files and
// frames. For each frame the converter
//
//  1. flattens the frame's content tree into UTF-16 text and style runs
//     (package style),
//  2. lays the text out in the frame's box (package text),
//  3. aligns the measured text block in the frame and composes every glyph
//     run into placed glyph paths (package svg).
//
// The SVG is buffered and written only once every frame succeeded.
//
// # Quick start
//
//	doc, err := svgtext.ReadDocument("hello.json", document.FormatJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = svgtext.NewConverter().Convert(context.Background(), doc, os.Stdout)
//
// # Logging
//
// svgtext is silent by default. Use SetLogger to route structured logs
// from the converter and the layout engine to a slog.Logger.
package svgtext
