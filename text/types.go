package text

import (
	"fmt"
	"strings"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Direction is a physical direction on the canvas. It is used both for
// the reading direction of a line and for the direction in which lines
// follow each other.
type Direction int

const (
	// DirectionLTR is left-to-right (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left (Arabic, Hebrew)
	DirectionRTL
	// DirectionTTB is top-to-bottom (traditional Chinese, Japanese)
	DirectionTTB
	// DirectionBTT is bottom-to-top (rare)
	DirectionBTT
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionTTB:
		return "TTB"
	case DirectionBTT:
		return "BTT"
	default:
		return unknownStr
	}
}

// IsHorizontal returns true if the direction is horizontal (LTR or RTL).
func (d Direction) IsHorizontal() bool {
	return d == DirectionLTR || d == DirectionRTL
}

// IsVertical returns true if the direction is vertical (TTB or BTT).
func (d Direction) IsVertical() bool {
	return d == DirectionTTB || d == DirectionBTT
}

// WritingMode pairs a reading direction with a line flow direction. The
// two are always perpendicular.
type WritingMode int

const (
	// LRTB reads left to right, lines flow top to bottom (default).
	LRTB WritingMode = iota
	// RLTB reads right to left, lines flow top to bottom.
	RLTB
	// LRBT reads left to right, lines flow bottom to top.
	LRBT
	// RLBT reads right to left, lines flow bottom to top.
	RLBT
	// TBRL reads top to bottom, lines flow right to left.
	TBRL
	// TBLR reads top to bottom, lines flow left to right.
	TBLR
	// BTRL reads bottom to top, lines flow right to left.
	BTRL
	// BTLR reads bottom to top, lines flow left to right.
	BTLR
)

var writingModeNames = [...]string{"lr-tb", "rl-tb", "lr-bt", "rl-bt", "tb-rl", "tb-lr", "bt-rl", "bt-lr"}

var writingModeAliases = map[string]WritingMode{
	"horizontal-tb": LRTB,
	"vertical-rl":   TBRL,
	"vertical-lr":   TBLR,
}

// String returns the CSS-like name of the mode, e.g. "tb-rl".
func (m WritingMode) String() string {
	if m < LRTB || m > BTLR {
		return unknownStr
	}
	return writingModeNames[m]
}

// Reading returns the direction in which text advances along a line.
func (m WritingMode) Reading() Direction {
	switch m {
	case RLTB, RLBT:
		return DirectionRTL
	case TBRL, TBLR:
		return DirectionTTB
	case BTRL, BTLR:
		return DirectionBTT
	default:
		return DirectionLTR
	}
}

// Flow returns the direction in which successive lines are stacked.
func (m WritingMode) Flow() Direction {
	switch m {
	case LRBT, RLBT:
		return DirectionBTT
	case TBRL, BTRL:
		return DirectionRTL
	case TBLR, BTLR:
		return DirectionLTR
	default:
		return DirectionTTB
	}
}

// IsVertical reports whether lines run vertically.
func (m WritingMode) IsVertical() bool {
	return m.Reading().IsVertical()
}

// MarshalText implements encoding.TextMarshaler.
func (m WritingMode) MarshalText() ([]byte, error) {
	if m < LRTB || m > BTLR {
		return nil, fmt.Errorf("%w: writing mode %d", ErrInvalidEnum, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both the reading/flow
// pairs and the CSS aliases horizontal-tb, vertical-rl and vertical-lr are
// accepted.
func (m *WritingMode) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	if alias, ok := writingModeAliases[s]; ok {
		*m = alias
		return nil
	}
	for i, name := range writingModeNames {
		if name == s {
			*m = WritingMode(i)
			return nil
		}
	}
	return fmt.Errorf("%w: writing mode %q", ErrInvalidEnum, string(b))
}

// Alignment specifies how lines are placed along the reading direction
// within the layout box. Left and right are relative to the reading
// direction: AlignLeft means the line start.
type Alignment int

const (
	// AlignLeft aligns lines to their start edge (default).
	AlignLeft Alignment = iota
	// AlignCenter centers lines.
	AlignCenter
	// AlignRight aligns lines to their end edge.
	AlignRight
	// AlignJustify stretches wrapped lines to fill the box. The last line
	// of each paragraph is start aligned.
	AlignJustify
)

var alignmentNames = [...]string{"left", "center", "right", "justify"}

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	if a < AlignLeft || a > AlignJustify {
		return unknownStr
	}
	return alignmentNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	if a < AlignLeft || a > AlignJustify {
		return nil, fmt.Errorf("%w: text alignment %d", ErrInvalidEnum, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(b []byte) error {
	i, err := lookupName(alignmentNames[:], b, "text alignment")
	if err != nil {
		return err
	}
	*a = Alignment(i)
	return nil
}

// HAlign places a frame's text block horizontally inside the frame.
type HAlign int

const (
	// HAlignLeft places the block at the frame's left edge (default).
	HAlignLeft HAlign = iota
	// HAlignCenter centers the block.
	HAlignCenter
	// HAlignRight places the block at the frame's right edge.
	HAlignRight
)

var hAlignNames = [...]string{"left", "center", "right"}

// String returns the string representation of the alignment.
func (h HAlign) String() string {
	if h < HAlignLeft || h > HAlignRight {
		return unknownStr
	}
	return hAlignNames[h]
}

// Factor returns 0, 0.5 or 1 for left, center and right.
func (h HAlign) Factor() float32 {
	return float32(h) / 2
}

// MarshalText implements encoding.TextMarshaler.
func (h HAlign) MarshalText() ([]byte, error) {
	if h < HAlignLeft || h > HAlignRight {
		return nil, fmt.Errorf("%w: horizontal alignment %d", ErrInvalidEnum, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HAlign) UnmarshalText(b []byte) error {
	i, err := lookupName(hAlignNames[:], b, "horizontal alignment")
	if err != nil {
		return err
	}
	*h = HAlign(i)
	return nil
}

// VAlign places a frame's text block vertically inside the frame.
type VAlign int

const (
	// VAlignTop places the block at the frame's top edge (default).
	VAlignTop VAlign = iota
	// VAlignCenter centers the block.
	VAlignCenter
	// VAlignBottom places the block at the frame's bottom edge.
	VAlignBottom
)

var vAlignNames = [...]string{"top", "center", "bottom"}

// String returns the string representation of the alignment.
func (v VAlign) String() string {
	if v < VAlignTop || v > VAlignBottom {
		return unknownStr
	}
	return vAlignNames[v]
}

// Factor returns 0, 0.5 or 1 for top, center and bottom.
func (v VAlign) Factor() float32 {
	return float32(v) / 2
}

// MarshalText implements encoding.TextMarshaler.
func (v VAlign) MarshalText() ([]byte, error) {
	if v < VAlignTop || v > VAlignBottom {
		return nil, fmt.Errorf("%w: vertical alignment %d", ErrInvalidEnum, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VAlign) UnmarshalText(b []byte) error {
	i, err := lookupName(vAlignNames[:], b, "vertical alignment")
	if err != nil {
		return err
	}
	*v = VAlign(i)
	return nil
}

func lookupName(names []string, b []byte, what string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrInvalidEnum, what, string(b))
}

// Orientation is the clockwise rotation applied to a glyph run, in
// quarter turns.
type Orientation uint8

const (
	// Orientation0 draws the run unrotated.
	Orientation0 Orientation = iota
	// Orientation90 rotates the run 90 degrees clockwise.
	Orientation90
	// Orientation180 rotates the run 180 degrees.
	Orientation180
	// Orientation270 rotates the run 270 degrees clockwise.
	Orientation270
)

// Quarters returns the number of clockwise quarter turns.
func (o Orientation) Quarters() int {
	return int(o) % 4
}

// Point is a position in layout space: x grows right, y grows down.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	// Min is the top-left corner
	MinX, MinY float32
	// Max is the bottom-right corner
	MaxX, MaxY float32
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Metrics is the ink-independent extent of laid out text, relative to the
// layout box origin.
type Metrics struct {
	Left, Top     float32
	Width, Height float32
}

// Box describes the area and paragraph settings for one layout call.
type Box struct {
	// Width and Height are the physical size of the layout box. The inline
	// extent used for wrapping is Width for horizontal modes and Height
	// for vertical ones. A non-positive inline extent disables wrapping.
	Width, Height float32

	Mode  WritingMode
	Align Alignment

	// LineHeight multiplies the largest em size on a line to give the
	// line box height.
	LineHeight float32

	// BaselineOffset is the fraction of the line box height between the
	// line's ascent-side edge and its baseline.
	BaselineOffset float32
}

// inline returns the extent available along the reading direction.
func (b Box) inline() float32 {
	if b.Mode.IsVertical() {
		return b.Height
	}
	return b.Width
}
