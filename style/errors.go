package style

import "errors"

// Sentinel errors for style package.
var (
	// ErrInvalidValue is returned when a style field holds a value outside
	// its allowed range or vocabulary.
	ErrInvalidValue = errors.New("style: invalid value")

	// ErrInvalidTag is returned for OpenType tags that are not four
	// printable ASCII characters.
	ErrInvalidTag = errors.New("style: invalid OpenType tag")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("style: invalid color")

	// ErrInvalidNode is returned when content is neither a string, an
	// object nor an array.
	ErrInvalidNode = errors.New("style: invalid content node")
)

// FieldError reports which style field failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "style: " + e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
