package svgtext

import (
	"errors"
	"fmt"

	"github.com/gogpu/svgtext/document"
)

// Kind classifies conversion errors.
type Kind uint8

const (
	// KindDecode is a malformed or invalid input document.
	KindDecode Kind = iota

	// KindLayout is a failure of font loading or text layout.
	KindLayout

	// KindIO is a failure reading input or writing output.
	KindIO
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindLayout:
		return "layout"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ErrCanceled is returned when the context is done before the document
// is written.
var ErrCanceled = errors.New("svgtext: conversion canceled")

// Error is returned by every conversion step. All errors are fatal and no
// output is written when one occurs.
type Error struct {
	Kind Kind

	// Frame is the index of the frame being processed, or -1.
	Frame int

	Err error
}

func (e *Error) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("svgtext: %s error in frame %d: %v", e.Kind, e.Frame, e.Err)
	}
	return fmt.Sprintf("svgtext: %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// decodeError wraps a validation error, keeping the frame index of a
// *document.FrameError.
func decodeError(err error) *Error {
	e := &Error{Kind: KindDecode, Frame: -1, Err: err}
	var fe *document.FrameError
	if errors.As(err, &fe) {
		e.Frame = fe.Frame
	}
	return e
}
