package svg

import (
	"bufio"
	"io"
	"strings"
)

// Attr is an element attribute. Values are escaped when written.
type Attr struct {
	Name, Value string
}

// Element is a node of an XML tree. An element holds either text or
// children.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement returns an element without attributes or content.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Set appends an attribute and returns e.
func (e *Element) Set(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Add appends children and returns e.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// SetText sets the text content and returns e.
func (e *Element) SetText(s string) *Element {
	e.Text = s
	return e
}

// Encoder writes an element tree as XML.
type Encoder struct {
	w      *bufio.Writer
	prefix string
	indent string
	err    error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Indent makes the encoder put every element on its own line, starting
// with prefix followed by one copy of indent per nesting level.
func (enc *Encoder) Indent(prefix, indent string) {
	enc.prefix = prefix
	enc.indent = indent
}

// Header writes the XML declaration.
func (enc *Encoder) Header() error {
	enc.writeString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>`)
	enc.writeString("\n")
	return enc.err
}

// Encode writes e and its descendants.
func (enc *Encoder) Encode(e *Element) error {
	enc.element(e, 0)
	if enc.indent != "" || enc.prefix != "" {
		enc.writeString("\n")
	}
	return enc.err
}

// Flush writes any buffered data to the underlying writer.
func (enc *Encoder) Flush() error {
	if enc.err != nil {
		return enc.err
	}
	enc.err = enc.w.Flush()
	return enc.err
}

func (enc *Encoder) element(e *Element, depth int) {
	if enc.err != nil {
		return
	}
	if depth > 0 {
		enc.newline(depth)
	}
	enc.writeString("<")
	enc.writeString(e.Name)
	for _, a := range e.Attrs {
		enc.writeString(" ")
		enc.writeString(a.Name)
		enc.writeString(`="`)
		enc.writeString(Escape(a.Value))
		enc.writeString(`"`)
	}
	switch {
	case e.Text != "":
		enc.writeString(">")
		enc.writeString(Escape(e.Text))
	case len(e.Children) > 0:
		enc.writeString(">")
		for _, c := range e.Children {
			enc.element(c, depth+1)
		}
		enc.newline(depth)
	default:
		enc.writeString("/>")
		return
	}
	enc.writeString("</")
	enc.writeString(e.Name)
	enc.writeString(">")
}

func (enc *Encoder) newline(depth int) {
	if enc.indent == "" && enc.prefix == "" {
		return
	}
	enc.writeString("\n")
	enc.writeString(enc.prefix)
	enc.writeString(strings.Repeat(enc.indent, depth))
}

func (enc *Encoder) writeString(s string) {
	if enc.err != nil {
		return
	}
	_, enc.err = enc.w.WriteString(s)
}
