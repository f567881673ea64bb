package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when a font file holds no data.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFace is returned when no loaded face can render a run.
	ErrNoFace = errors.New("text: no font face available")

	// ErrInvalidEnum is returned when an enum name is not recognized.
	ErrInvalidEnum = errors.New("text: invalid enum value")

	// ErrInvalidRun is returned when a style run lies outside the text
	// buffer or runs are out of order.
	ErrInvalidRun = errors.New("text: invalid style run")

	// ErrInvalidPattern is returned for a malformed font glob.
	ErrInvalidPattern = errors.New("text: invalid font pattern")
)

// FontFileError is returned when a font file cannot be read or parsed.
type FontFileError struct {
	Path string
	Err  error
}

func (e *FontFileError) Error() string {
	return "text: font " + e.Path + ": " + e.Err.Error()
}

func (e *FontFileError) Unwrap() error {
	return e.Err
}
