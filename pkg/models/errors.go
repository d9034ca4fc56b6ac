package models

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldCount is returned when a record has too few fields.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrFaceArity is returned for a face vertex reference that is neither
	// p//n nor p/u/n.
	ErrFaceArity = errors.New("face vertex must be p//n or p/u/n")

	// ErrTooFewVertices is returned for a face with fewer than 3 vertices.
	ErrTooFewVertices = errors.New("face needs at least 3 vertices")

	// ErrIndexRange is returned when a face references a missing attribute.
	ErrIndexRange = errors.New("index out of range")

	// ErrNonFinite is returned for a NaN or infinite coordinate.
	ErrNonFinite = errors.New("non-finite number")

	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
)

// ParseError reports a mesh that could not be loaded. No partial mesh is
// ever returned alongside a ParseError.
type ParseError struct {
	Path string
	Line int // 1-based; 0 when the error is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
