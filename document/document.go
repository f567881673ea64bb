// Package document defines the input document of svgtext: a canvas size,
// font files to load, and a list of frames of styled text.
package document

import (
	"fmt"
	"strings"

	"github.com/gogpu/svgtext/style"
	"github.com/gogpu/svgtext/text"
)

// Default canvas size and frame layout parameters.
const (
	DefaultWidth          = 1024
	DefaultHeight         = 1024
	DefaultLineHeight     = 1.5
	DefaultBaselineOffset = 0.8
)

// Document is a canvas holding frames of text.
type Document struct {
	Width  float32 `json:"width" yaml:"width"`
	Height float32 `json:"height" yaml:"height"`

	// FontFiles lists font file paths or glob patterns, loaded in order
	// before any frame is laid out.
	FontFiles []string `json:"fontFiles,omitempty" yaml:"fontFiles,omitempty"`

	Frames []Frame `json:"frames" yaml:"frames"`
}

// New returns an empty document with the default canvas size.
func New() *Document {
	return &Document{Width: DefaultWidth, Height: DefaultHeight}
}

// Frame is a rectangle of the canvas holding one block of text.
type Frame struct {
	// Edges of the frame; unset edges default to the canvas edges.
	Left   *float32 `json:"left,omitempty" yaml:"left,omitempty"`
	Top    *float32 `json:"top,omitempty" yaml:"top,omitempty"`
	Right  *float32 `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom *float32 `json:"bottom,omitempty" yaml:"bottom,omitempty"`

	Title *string `json:"title,omitempty" yaml:"title,omitempty"`
	Desc  *string `json:"desc,omitempty" yaml:"desc,omitempty"`

	// Copyable adds invisible selectable text under the glyphs.
	Copyable bool `json:"copyable,omitempty" yaml:"copyable,omitempty"`

	TextAlign       text.Alignment   `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	WritingMode     text.WritingMode `json:"writingMode,omitempty" yaml:"writingMode,omitempty"`
	HorizontalAlign text.HAlign      `json:"horizontalAlign,omitempty" yaml:"horizontalAlign,omitempty"`
	VerticalAlign   text.VAlign      `json:"verticalAlign,omitempty" yaml:"verticalAlign,omitempty"`

	// LineHeight is the line box height as a multiple of the largest em
	// size on the line. Nil means DefaultLineHeight.
	LineHeight *float32 `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`

	// BaselineOffset places the baseline inside the line box, as a
	// fraction of its height. Nil means DefaultBaselineOffset.
	BaselineOffset *float32 `json:"baselineOffset,omitempty" yaml:"baselineOffset,omitempty"`

	Contents style.Node `json:"contents" yaml:"contents"`
}

// Rect returns the frame rectangle on a canvas of the given size.
func (f *Frame) Rect(canvasW, canvasH float32) text.Rect {
	return text.Rect{
		MinX: orDefault(f.Left, 0),
		MinY: orDefault(f.Top, 0),
		MaxX: orDefault(f.Right, canvasW),
		MaxY: orDefault(f.Bottom, canvasH),
	}
}

// Box returns the layout box for the frame on a canvas of the given size.
func (f *Frame) Box(canvasW, canvasH float32) text.Box {
	r := f.Rect(canvasW, canvasH)
	return text.Box{
		Width:          r.Width(),
		Height:         r.Height(),
		Mode:           f.WritingMode,
		Align:          f.TextAlign,
		LineHeight:     orDefault(f.LineHeight, DefaultLineHeight),
		BaselineOffset: orDefault(f.BaselineOffset, DefaultBaselineOffset),
	}
}

func orDefault(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}

// Validate checks the document before any layout work. Frame problems are
// reported as *FrameError.
func (d *Document) Validate() error {
	if !(d.Width > 0) || !(d.Height > 0) {
		return fmt.Errorf("%w: canvas %vx%v", ErrInvalidDocument, d.Width, d.Height)
	}
	for i, p := range d.FontFiles {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: fontFiles[%d] is empty", ErrInvalidDocument, i)
		}
	}
	for i := range d.Frames {
		if err := d.Frames[i].validate(d.Width, d.Height); err != nil {
			return &FrameError{Frame: i, Err: err}
		}
	}
	return nil
}

func (f *Frame) validate(canvasW, canvasH float32) error {
	r := f.Rect(canvasW, canvasH)
	if r.MaxX < r.MinX || r.MaxY < r.MinY {
		return fmt.Errorf("%w: rectangle (%v, %v)-(%v, %v) is inverted", ErrInvalidFrame, r.MinX, r.MinY, r.MaxX, r.MaxY)
	}
	if f.LineHeight != nil && !(*f.LineHeight > 0) {
		return fmt.Errorf("%w: lineHeight %v must be positive", ErrInvalidFrame, *f.LineHeight)
	}
	if f.BaselineOffset != nil && (*f.BaselineOffset < 0 || *f.BaselineOffset > 1) {
		return fmt.Errorf("%w: baselineOffset %v not in [0, 1]", ErrInvalidFrame, *f.BaselineOffset)
	}
	return f.Contents.Walk(func(n style.Node) error {
		if n.Kind != style.NodeStyle {
			return nil
		}
		return n.Style.Validate()
	})
}
