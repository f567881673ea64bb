package style

import (
	"fmt"

	"golang.org/x/text/language"
)

// Validate checks every set field of s and returns a *FieldError for the
// first invalid one.
func (s Style) Validate() error {
	if s.FontFamily != nil && *s.FontFamily == "" {
		return &FieldError{Field: "fontFamily", Err: fmt.Errorf("%w: empty family name", ErrInvalidValue)}
	}
	if s.FontWeight != nil && (*s.FontWeight < 1 || *s.FontWeight > 999) {
		return &FieldError{Field: "fontWeight", Err: fmt.Errorf("%w: %d not in [1, 999]", ErrInvalidValue, *s.FontWeight)}
	}
	if s.FontWidth != nil && (*s.FontWidth < 1 || *s.FontWidth > 9) {
		return &FieldError{Field: "fontWidth", Err: fmt.Errorf("%w: %d not in [1, 9]", ErrInvalidValue, *s.FontWidth)}
	}
	if s.FontStyle != nil && (*s.FontStyle < FontStyleUpright || *s.FontStyle > FontStyleOblique) {
		return &FieldError{Field: "fontStyle", Err: fmt.Errorf("%w: %d", ErrInvalidValue, int(*s.FontStyle))}
	}
	if s.FontSize != nil && !(*s.FontSize > 0) {
		return &FieldError{Field: "fontSize", Err: fmt.Errorf("%w: %v must be positive", ErrInvalidValue, *s.FontSize)}
	}
	if s.Color != nil {
		if _, err := ParseColor(*s.Color); err != nil {
			return &FieldError{Field: "color", Err: err}
		}
	}
	if s.Lang != nil {
		if _, err := CanonicalLang(*s.Lang); err != nil {
			return &FieldError{Field: "lang", Err: err}
		}
	}
	for tag := range s.FontFeatureSettings {
		if err := CheckTag(tag); err != nil {
			return &FieldError{Field: "fontFeatureSettings", Err: err}
		}
	}
	for tag := range s.FontVariationSettings {
		if err := CheckTag(tag); err != nil {
			return &FieldError{Field: "fontVariationSettings", Err: err}
		}
	}
	return nil
}

// CanonicalLang parses a BCP 47 language tag and returns its canonical
// form, e.g. "EN_us" becomes "en-US".
func CanonicalLang(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: language %q: %w", ErrInvalidValue, tag, err)
	}
	return t.String(), nil
}

// CheckTag reports whether tag is a valid OpenType tag: exactly four
// printable ASCII characters.
func CheckTag(tag string) error {
	if len(tag) != 4 {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	for i := 0; i < 4; i++ {
		if tag[i] < 0x20 || tag[i] > 0x7e {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
	}
	return nil
}
