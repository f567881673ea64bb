package document

import (
	"errors"
	"strconv"
)

// Sentinel errors for document package.
var (
	// ErrUnknownFormat is returned for an input format other than JSON,
	// YAML or TOML.
	ErrUnknownFormat = errors.New("document: unknown format")

	// ErrInvalidDocument is returned for document-level problems such as a
	// non-positive canvas size.
	ErrInvalidDocument = errors.New("document: invalid document")

	// ErrInvalidFrame is returned for a frame with inconsistent geometry.
	ErrInvalidFrame = errors.New("document: invalid frame")
)

// FrameError reports which frame failed validation.
type FrameError struct {
	Frame int
	Err   error
}

func (e *FrameError) Error() string {
	return "document: frame " + strconv.Itoa(e.Frame) + ": " + e.Err.Error()
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
