package svg

import (
	"fmt"
	"io"

	"github.com/gogpu/svgtext/text"
)

const (
	namespace = "http://www.w3.org/2000/svg"

	// defaultFill is used for runs without a color.
	defaultFill = "black"
)

// FrameOffset returns the translation that moves text measured as m so
// that its anchor lines up with the frame's anchor. The anchors sit at
// the same fraction of the text block and of the frame, given by the
// alignment factors.
func FrameOffset(frame text.Rect, h text.HAlign, v text.VAlign, m text.Metrics) (dx, dy float32) {
	fh, fv := h.Factor(), v.Factor()
	textX := m.Left + fh*m.Width
	textY := m.Top + fv*m.Height
	frameX := frame.MinX + fh*(frame.MaxX-frame.MinX)
	frameY := frame.MinY + fv*(frame.MaxY-frame.MinY)
	return frameX - textX, frameY - textY
}

// FrameRecord collects the composed runs of one frame.
type FrameRecord struct {
	Title, Desc *string

	// Copyable adds transparent text to every run so that it can be
	// selected and copied.
	Copyable bool

	Runs []RunRecord
}

// Add appends a composed run.
func (f *FrameRecord) Add(r RunRecord) {
	f.Runs = append(f.Runs, r)
}

// Glyphs returns the number of glyph placements in the frame.
func (f *FrameRecord) Glyphs() int {
	n := 0
	for _, r := range f.Runs {
		n += len(r.Glyphs)
	}
	return n
}

// Composer assembles frames into one SVG document sharing a path store.
type Composer struct {
	width, height float32
	store         *PathStore
	frames        []*FrameRecord
}

// NewComposer returns a composer for a canvas of the given size.
func NewComposer(width, height float32) *Composer {
	return &Composer{width: width, height: height, store: NewPathStore()}
}

// Store returns the document-wide path store.
func (c *Composer) Store() *PathStore {
	return c.store
}

// Frame starts a new frame group.
func (c *Composer) Frame(title, desc *string, copyable bool) *FrameRecord {
	f := &FrameRecord{Title: title, Desc: desc, Copyable: copyable}
	c.frames = append(c.frames, f)
	return f
}

// Frames returns the frames added so far.
func (c *Composer) Frames() []*FrameRecord {
	return c.frames
}

// Element builds the <svg> element tree.
func (c *Composer) Element() *Element {
	w, h := formatNumber(c.width), formatNumber(c.height)
	root := NewElement("svg").
		Set("xmlns", namespace).
		Set("viewBox", "0 0 "+w+" "+h).
		Set("width", w).
		Set("height", h)

	defs := NewElement("defs")
	c.store.Each(func(id uint32, d string) {
		defs.Add(NewElement("path").Set("id", pathID(id)).Set("d", d))
	})
	root.Add(defs)

	for _, f := range c.frames {
		root.Add(f.element())
	}
	return root
}

// WriteTo writes the complete document, XML declaration included.
func (c *Composer) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Header(); err != nil {
		return cw.n, err
	}
	if err := enc.Encode(c.Element()); err != nil {
		return cw.n, err
	}
	err := enc.Flush()
	return cw.n, err
}

func (f *FrameRecord) element() *Element {
	g := NewElement("g")
	if f.Title != nil {
		g.Add(NewElement("title").SetText(*f.Title))
	}
	if f.Desc != nil {
		g.Add(NewElement("desc").SetText(*f.Desc))
	}
	for i := range f.Runs {
		g.Add(f.Runs[i].element(f.Copyable))
	}
	return g
}

func (r *RunRecord) element(copyable bool) *Element {
	fill := defaultFill
	if r.Color != nil {
		fill = *r.Color
	}
	g := NewElement("g").
		Set("transform", fmt.Sprintf("translate(%s %s) rotate(%s) scale(%s)",
			formatNumber(r.X), formatNumber(r.Y), formatNumber(r.Rotation), formatNumber(r.InverseScale))).
		Set("fill", fill).
		Set("data-source-text", r.SourceText)

	if copyable && r.SourceText != "" {
		g.Add(NewElement("text").
			Set("x", "0").
			Set("y", "0").
			Set("font-size", formatNumber(r.UnitsPerEm)).
			Set("fill", "transparent").
			SetText(r.SourceText))
	}
	for _, pg := range r.Glyphs {
		g.Add(NewElement("use").
			Set("href", "#"+pathID(pg.PathID)).
			Set("transform", "translate("+formatNumber(pg.X)+" "+formatNumber(pg.Y)+")"))
	}
	return g
}

func pathID(id uint32) string {
	return fmt.Sprintf("path%d", id)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
