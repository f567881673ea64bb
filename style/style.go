// Package style defines text styles, their cascading merge, the styled
// content tree and the builder that flattens that tree into style runs
// over a UTF-16 text buffer.
package style

import (
	"fmt"
	"maps"
	"strings"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// FontStyle selects the slant of a face.
type FontStyle int

const (
	// FontStyleUpright selects a face that is neither italic nor oblique.
	FontStyleUpright FontStyle = iota
	// FontStyleItalic selects a cursive, slanted face.
	FontStyleItalic
	// FontStyleOblique selects a mechanically slanted face.
	FontStyleOblique
)

// String returns the string representation of the font style.
func (s FontStyle) String() string {
	switch s {
	case FontStyleUpright:
		return "upright"
	case FontStyleItalic:
		return "italic"
	case FontStyleOblique:
		return "oblique"
	default:
		return unknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s FontStyle) MarshalText() ([]byte, error) {
	if s < FontStyleUpright || s > FontStyleOblique {
		return nil, fmt.Errorf("style: invalid font style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case
// insensitive and "normal" is accepted as an alias of "upright".
func (s *FontStyle) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "upright", "normal":
		*s = FontStyleUpright
	case "italic":
		*s = FontStyleItalic
	case "oblique":
		*s = FontStyleOblique
	default:
		return fmt.Errorf("%w: font style %q", ErrInvalidValue, string(b))
	}
	return nil
}

// Style is a set of optional text properties. A nil field (or nil map)
// means "inherit"; once runs are built, an unset field means the layout
// engine default applies.
//
// The zero Style is the identity element of Merge.
type Style struct {
	FontFamily *string    `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontWeight *int       `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	FontWidth  *int       `json:"fontWidth,omitempty" yaml:"fontWidth,omitempty"`
	FontStyle  *FontStyle `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty"`
	FontSize   *float32   `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Color      *string    `json:"color,omitempty" yaml:"color,omitempty"`
	Lang       *string    `json:"lang,omitempty" yaml:"lang,omitempty"`

	// FontFeatureSettings maps OpenType feature tags to values.
	FontFeatureSettings FeatureSettings `json:"fontFeatureSettings,omitempty" yaml:"fontFeatureSettings,omitempty"`

	// FontVariationSettings maps variation axis tags to values.
	FontVariationSettings VariationSettings `json:"fontVariationSettings,omitempty" yaml:"fontVariationSettings,omitempty"`
}

// knownKeys lists the field names accepted in a style object.
var knownKeys = map[string]bool{
	"fontFamily":            true,
	"fontWeight":            true,
	"fontWidth":             true,
	"fontStyle":             true,
	"fontSize":              true,
	"color":                 true,
	"lang":                  true,
	"fontFeatureSettings":   true,
	"fontVariationSettings": true,
}

// IsZero reports whether no field of s is set.
func (s Style) IsZero() bool {
	return s.FontFamily == nil && s.FontWeight == nil && s.FontWidth == nil &&
		s.FontStyle == nil && s.FontSize == nil && s.Color == nil && s.Lang == nil &&
		len(s.FontFeatureSettings) == 0 && len(s.FontVariationSettings) == 0
}

// Merge returns base with every field set in override replacing the
// corresponding field of base. The two settings maps are merged key by
// key, override entries replacing base entries with the same tag.
//
// The result shares no maps with base or override.
func Merge(base, override Style) Style {
	out := Style{
		FontFamily: pick(base.FontFamily, override.FontFamily),
		FontWeight: pick(base.FontWeight, override.FontWeight),
		FontWidth:  pick(base.FontWidth, override.FontWidth),
		FontStyle:  pick(base.FontStyle, override.FontStyle),
		FontSize:   pick(base.FontSize, override.FontSize),
		Color:      pick(base.Color, override.Color),
		Lang:       pick(base.Lang, override.Lang),
	}
	out.FontFeatureSettings = union(base.FontFeatureSettings, override.FontFeatureSettings)
	out.FontVariationSettings = union(base.FontVariationSettings, override.FontVariationSettings)
	return out
}

// pick returns a copy of override if set, else a copy of base.
func pick[T any](base, override *T) *T {
	src := base
	if override != nil {
		src = override
	}
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

// union is a right-biased map union. It returns nil when both are empty.
func union[M ~map[K]V, K comparable, V any](base, override M) M {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(M, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// Size returns the font size, or def when unset.
func (s Style) Size(def float32) float32 {
	if s.FontSize == nil {
		return def
	}
	return *s.FontSize
}

// Ptr returns a pointer to v. It is a convenience for building styles in
// code and tests.
func Ptr[T any](v T) *T {
	return &v
}
