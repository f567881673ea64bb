package style

import "unicode/utf16"

// Run is a contiguous range of the text buffer sharing one resolved
// style. Start and End are UTF-16 code unit offsets; End is exclusive and
// may equal Start.
type Run struct {
	Start, End uint32
	Style      Style
}

// Empty reports whether the run covers no text. Consumers skip empty runs.
func (r Run) Empty() bool {
	return r.End <= r.Start
}

// Len returns the number of UTF-16 code units covered by the run.
func (r Run) Len() uint32 {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start
}

// Builder flattens a content tree into a UTF-16 text buffer and a list
// of style runs. A Builder is used for one frame and then discarded.
//
// Builder keeps zero-length runs; filtering them is up to the consumer.
type Builder struct {
	text []uint16
	runs []Run
	cur  Style
}

// NewBuilder returns a Builder whose buffer starts with one run carrying
// the empty style.
func NewBuilder() *Builder {
	b := &Builder{}
	b.start(Style{})
	return b
}

// Analyze appends node to the buffer. Style changes made by a top-level
// node stay in effect for subsequent Analyze calls.
func (b *Builder) Analyze(node Node) {
	b.cur = b.walk(node, b.cur)
}

// Finish returns the text buffer and the run list. The Builder must not
// be used afterwards.
func (b *Builder) Finish() ([]uint16, []Run) {
	text, runs := b.text, b.runs
	b.text, b.runs = nil, nil
	return text, runs
}

// walk appends n under the effective style cur and returns the effective
// style that applies to n's following siblings.
func (b *Builder) walk(n Node, cur Style) Style {
	switch n.Kind {
	case NodeText:
		b.text = appendUTF16(b.text, n.Text)
		b.sync()
		return cur

	case NodeStyle:
		next := Merge(cur, n.Style)
		b.start(next)
		return next

	case NodeEmbed:
		b.sync()
		b.start(cur)
		inner := cur
		for _, child := range n.Children {
			inner = b.walk(child, inner)
		}
		b.start(cur)
		return cur
	}
	return cur
}

// sync extends the last run to the end of the buffer.
func (b *Builder) sync() {
	if len(b.runs) > 0 {
		b.runs[len(b.runs)-1].End = uint32(len(b.text))
	}
}

// start opens a new zero-length run at the end of the buffer.
func (b *Builder) start(s Style) {
	n := uint32(len(b.text))
	b.runs = append(b.runs, Run{Start: n, End: n, Style: s})
}

func appendUTF16(dst []uint16, s string) []uint16 {
	for _, r := range s {
		dst = utf16.AppendRune(dst, r)
	}
	return dst
}

// Analyze is a convenience that builds the buffer and runs for one
// content tree.
func Analyze(node Node) ([]uint16, []Run) {
	b := NewBuilder()
	b.Analyze(node)
	return b.Finish()
}

// NonEmpty returns the runs that cover text, in order.
func NonEmpty(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}
