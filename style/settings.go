package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"gopkg.in/yaml.v3"
)

// FeatureSettings maps four-character OpenType feature tags to values,
// e.g. {"liga": 0, "ss01": 1}.
//
// In documents it is written either as an object or as a CSS
// font-feature-settings string such as `"liga" 0, "kern"`.
type FeatureSettings map[string]uint32

// Variation is the value of one variation axis: either the font's default
// or an explicit design-space coordinate.
type Variation struct {
	Default bool
	Value   float32
}

// Set returns a Variation holding v.
func Set(v float32) Variation {
	return Variation{Value: v}
}

// DefaultVariation returns a Variation that resets the axis to the font's
// default.
func DefaultVariation() Variation {
	return Variation{Default: true}
}

// String returns "default" or the numeric value.
func (v Variation) String() string {
	if v.Default {
		return "default"
	}
	return fmt.Sprint(v.Value)
}

// VariationSettings maps variation axis tags to values, e.g.
// {"wght": Set(650), "wdth": DefaultVariation()}.
//
// In documents it is written either as an object whose values are numbers
// or "default", or as a CSS font-variation-settings string such as
// `"wght" 650, "wdth" default`.
type VariationSettings map[string]Variation

var (
	settingsLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"|'(?:\\.|[^'])*'`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9-]*`},
		{Name: "Punct", Pattern: `,`},
	})

	settingsParser = participle.MustBuild[settingsList](
		participle.Lexer(settingsLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
	)
)

// settingsList is the AST of a CSS-style settings string.
type settingsList struct {
	Entries []*settingEntry `parser:"( @@ ( ',' @@ )* ','? )?"`
}

type settingEntry struct {
	Pos     lexer.Position
	Tag     string   `parser:"@String"`
	Number  *float64 `parser:"( @Number"`
	Keyword *string  `parser:"| @Ident )?"`
}

func parseSettings(s string) ([]*settingEntry, error) {
	list, err := settingsParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("%w: settings %q: %w", ErrInvalidValue, s, err)
	}
	for _, e := range list.Entries {
		if err := CheckTag(e.Tag); err != nil {
			return nil, err
		}
	}
	return list.Entries, nil
}

// ParseFeatureSettings parses a CSS font-feature-settings string. A tag
// without a value means 1; "on" and "off" mean 1 and 0.
func ParseFeatureSettings(s string) (FeatureSettings, error) {
	entries, err := parseSettings(s)
	if err != nil {
		return nil, err
	}
	out := make(FeatureSettings, len(entries))
	for _, e := range entries {
		switch {
		case e.Number != nil:
			v, err := featureValue(*e.Number)
			if err != nil {
				return nil, err
			}
			out[e.Tag] = v
		case e.Keyword != nil:
			switch strings.ToLower(*e.Keyword) {
			case "on":
				out[e.Tag] = 1
			case "off":
				out[e.Tag] = 0
			default:
				return nil, fmt.Errorf("%w: feature %q value %q", ErrInvalidValue, e.Tag, *e.Keyword)
			}
		default:
			out[e.Tag] = 1
		}
	}
	return out, nil
}

// ParseVariationSettings parses a CSS font-variation-settings string.
// Every tag needs a number or the keyword "default".
func ParseVariationSettings(s string) (VariationSettings, error) {
	entries, err := parseSettings(s)
	if err != nil {
		return nil, err
	}
	out := make(VariationSettings, len(entries))
	for _, e := range entries {
		switch {
		case e.Number != nil:
			out[e.Tag] = Set(float32(*e.Number))
		case e.Keyword != nil && strings.EqualFold(*e.Keyword, "default"):
			out[e.Tag] = DefaultVariation()
		case e.Keyword != nil:
			return nil, fmt.Errorf("%w: variation %q value %q", ErrInvalidValue, e.Tag, *e.Keyword)
		default:
			return nil, fmt.Errorf("%w: variation %q has no value", ErrInvalidValue, e.Tag)
		}
	}
	return out, nil
}

func featureValue(f float64) (uint32, error) {
	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: feature value %v", ErrInvalidValue, f)
	}
	return uint32(f), nil
}

// UnmarshalJSON accepts an object of tag → number or a settings string.
func (fs *FeatureSettings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseFeatureSettings(s)
		if err != nil {
			return err
		}
		*fs = parsed
		return nil
	}
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("%w: fontFeatureSettings: %w", ErrInvalidValue, err)
	}
	return fs.fromMap(m)
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (fs *FeatureSettings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseFeatureSettings(value.Value)
		if err != nil {
			return err
		}
		*fs = parsed
		return nil
	}
	var m map[string]float64
	if err := value.Decode(&m); err != nil {
		return fmt.Errorf("%w: fontFeatureSettings: %w", ErrInvalidValue, err)
	}
	return fs.fromMap(m)
}

func (fs *FeatureSettings) fromMap(m map[string]float64) error {
	out := make(FeatureSettings, len(m))
	for tag, f := range m {
		if err := CheckTag(tag); err != nil {
			return err
		}
		v, err := featureValue(f)
		if err != nil {
			return err
		}
		out[tag] = v
	}
	*fs = out
	return nil
}

// UnmarshalJSON accepts an object of tag → number|"default" or a settings
// string.
func (vs *VariationSettings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseVariationSettings(s)
		if err != nil {
			return err
		}
		*vs = parsed
		return nil
	}
	var m map[string]Variation
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	return vs.fromMap(m)
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (vs *VariationSettings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseVariationSettings(value.Value)
		if err != nil {
			return err
		}
		*vs = parsed
		return nil
	}
	var m map[string]Variation
	if err := value.Decode(&m); err != nil {
		return err
	}
	return vs.fromMap(m)
}

func (vs *VariationSettings) fromMap(m map[string]Variation) error {
	for tag := range m {
		if err := CheckTag(tag); err != nil {
			return err
		}
	}
	*vs = m
	return nil
}

// UnmarshalJSON accepts a number or the string "default".
func (v *Variation) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return v.fromKeyword(s)
	}
	var f float32
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("%w: variation value %s", ErrInvalidValue, b)
	}
	*v = Set(f)
	return nil
}

// UnmarshalYAML accepts a number or the scalar "default".
func (v *Variation) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: variation value must be a scalar (line %d)", ErrInvalidValue, value.Line)
	}
	if value.Tag == "!!str" {
		return v.fromKeyword(value.Value)
	}
	var f float32
	if err := value.Decode(&f); err != nil {
		return fmt.Errorf("%w: variation value %q", ErrInvalidValue, value.Value)
	}
	*v = Set(f)
	return nil
}

// MarshalJSON writes a number, or "default" for a default variation.
func (v Variation) MarshalJSON() ([]byte, error) {
	if v.Default {
		return []byte(`"default"`), nil
	}
	return json.Marshal(v.Value)
}

func (v *Variation) fromKeyword(s string) error {
	if !strings.EqualFold(strings.TrimSpace(s), "default") {
		return fmt.Errorf("%w: variation value %q", ErrInvalidValue, s)
	}
	*v = DefaultVariation()
	return nil
}
