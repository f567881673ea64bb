package svgtext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/gogpu/svgtext/document"
	"github.com/gogpu/svgtext/style"
	"github.com/gogpu/svgtext/svg"
	"github.com/gogpu/svgtext/text"
)

// Converter turns documents into SVG images.
//
// A Converter holds only configuration; every call to Convert loads its
// own fonts, so a Converter may be shared between goroutines.
type Converter struct {
	cfg config
}

// NewConverter returns a converter configured by opts.
func NewConverter(opts ...Option) *Converter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Converter{cfg: cfg}
}

// Stats summarizes a conversion.
type Stats struct {
	Frames int
	Runs   int
	Glyphs int
	Paths  int
	Bytes  int64
}

// Convert renders doc and writes the SVG to w. Nothing is written unless
// the whole document converts successfully. ctx is checked between frames.
func (c *Converter) Convert(ctx context.Context, doc *document.Document, w io.Writer) error {
	_, err := c.ConvertStats(ctx, doc, w)
	return err
}

// ConvertStats is like Convert and also reports what was produced.
func (c *Converter) ConvertStats(ctx context.Context, doc *document.Document, w io.Writer) (Stats, error) {
	var stats Stats
	start := time.Now()

	if err := doc.Validate(); err != nil {
		return stats, decodeError(err)
	}
	if err := ctx.Err(); err != nil {
		return stats, &Error{Kind: KindIO, Frame: -1, Err: fmt.Errorf("%w: %w", ErrCanceled, err)}
	}

	engine, err := c.newEngine(doc)
	if err != nil {
		return stats, err
	}

	composer := svg.NewComposer(doc.Width, doc.Height)
	compositor := svg.NewCompositor(composer.Store())

	for i := range doc.Frames {
		if err := ctx.Err(); err != nil {
			return stats, &Error{Kind: KindIO, Frame: i, Err: fmt.Errorf("%w: %w", ErrCanceled, err)}
		}
		f := &doc.Frames[i]

		buf, runs := style.Analyze(f.Contents)
		layout, err := engine.Layout(buf, runs, f.Box(doc.Width, doc.Height))
		if err != nil {
			return stats, &Error{Kind: KindLayout, Frame: i, Err: err}
		}

		dx, dy := svg.FrameOffset(f.Rect(doc.Width, doc.Height), f.HorizontalAlign, f.VerticalAlign, layout.Metrics)
		rec := composer.Frame(f.Title, f.Desc, f.Copyable || c.cfg.copyable)
		for j := range layout.Runs {
			rec.Add(compositor.Compose(&layout.Runs[j], dx, dy))
		}

		stats.Frames++
		stats.Runs += len(rec.Runs)
		stats.Glyphs += rec.Glyphs()
		Logger().Debug("frame composed",
			"frame", i,
			"lines", layout.Lines,
			"runs", len(rec.Runs),
			"glyphs", rec.Glyphs(),
			"offset_x", dx,
			"offset_y", dy,
		)
	}
	stats.Paths = composer.Store().Len()

	var out bytes.Buffer
	if err := c.encode(composer, &out); err != nil {
		return stats, &Error{Kind: KindIO, Frame: -1, Err: err}
	}
	n, err := out.WriteTo(w)
	stats.Bytes = n
	if err != nil {
		return stats, &Error{Kind: KindIO, Frame: -1, Err: err}
	}

	Logger().Info("document written",
		"frames", stats.Frames,
		"glyphs", stats.Glyphs,
		"paths", stats.Paths,
		"bytes", stats.Bytes,
		"elapsed", time.Since(start),
	)
	return stats, nil
}

func (c *Converter) newEngine(doc *document.Document) (*text.Engine, error) {
	fonts, err := text.NewFonts()
	if err != nil {
		return nil, &Error{Kind: KindLayout, Frame: -1, Err: err}
	}
	patterns := append(append([]string(nil), doc.FontFiles...), c.cfg.fontFiles...)
	if err := fonts.LoadFiles(patterns); err != nil {
		return nil, &Error{Kind: KindLayout, Frame: -1, Err: err}
	}
	Logger().Info("fonts loaded", "patterns", len(patterns), "files", fonts.Files())

	opts := []text.Option{
		text.WithDefaultSize(c.cfg.defaultSize),
		text.WithLanguage(c.cfg.language),
		text.WithEffect(runColor),
	}
	if c.cfg.defaultFamily != "" {
		opts = append(opts, text.WithDefaultFamily(c.cfg.defaultFamily))
	}
	return text.NewEngine(fonts, opts...)
}

func (c *Converter) encode(composer *svg.Composer, w io.Writer) error {
	enc := svg.NewEncoder(w)
	enc.Indent("", c.cfg.indent)
	if err := enc.Header(); err != nil {
		return err
	}
	if err := enc.Encode(composer.Element()); err != nil {
		return err
	}
	return enc.Flush()
}

// runColor is the drawing effect of a style: its parsed color, if any.
func runColor(s style.Style) any {
	if s.Color == nil {
		return nil
	}
	c, err := style.ParseColor(*s.Color)
	if err != nil {
		return nil
	}
	return c
}

// Convert renders doc to w with a converter configured by opts.
func Convert(ctx context.Context, doc *document.Document, w io.Writer, opts ...Option) error {
	return NewConverter(opts...).Convert(ctx, doc, w)
}

// ReadDocument decodes the document at path. Failing to open or read the
// file is a KindIO error; anything else is KindDecode.
func ReadDocument(path string, format document.Format) (*document.Document, error) {
	doc, err := document.DecodeFileFormat(path, format)
	var pe *fs.PathError
	switch {
	case err == nil:
		return doc, nil
	case errors.As(err, &pe):
		return nil, &Error{Kind: KindIO, Frame: -1, Err: err}
	default:
		return nil, &Error{Kind: KindDecode, Frame: -1, Err: fmt.Errorf("%s: %w", path, err)}
	}
}
