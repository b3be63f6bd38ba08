package nlattr

import (
	"errors"
	"fmt"
)

// Errors which may be returned while decoding attributes or objects built
// from them. Use errors.Is to check for a specific kind.
var (
	// ErrTruncatedBuffer is returned when an attribute header declares more
	// bytes than remain in the buffer, or trailing bytes are too short to
	// hold an attribute header.
	ErrTruncatedBuffer = errors.New("truncated attribute buffer")

	// ErrAttributeLengthMismatch is returned when an attribute's payload
	// length violates its Policy.
	ErrAttributeLengthMismatch = errors.New("attribute length mismatch")

	// ErrMissingRequiredAttribute is returned when an attribute needed to
	// identify an object is absent.
	ErrMissingRequiredAttribute = errors.New("missing required attribute")

	// ErrSchemaTooDeep is returned when nested attributes exceed the
	// supported nesting depth.
	ErrSchemaTooDeep = errors.New("attribute nesting too deep")
)

// An Error annotates an attribute decoding failure with the attribute type
// and its byte offset within the buffer being decoded.
type Error struct {
	// The attribute type which failed to decode, if known.
	Type uint16

	// The offset of the attribute header within the decoded buffer.
	Offset int

	// The underlying error, typically one of the package's sentinel errors.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("nlattr: attribute %d at offset %d: %v", e.Type, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }
