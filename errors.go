package formpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for composition failure conditions.
var (
	ErrNilDocument = errors.New("formpdf: document is nil")
	ErrBadGeometry = errors.New("formpdf: degenerate layout geometry")
	ErrBadLogo     = errors.New("formpdf: logo image is not decodable")
)

// RenderError represents an error that occurred during a specific rendering
// operation. It wraps an underlying error and includes the operation name
// for context.
type RenderError struct {
	Op  string // operation name, e.g. "Render", "validate"
	Err error  // underlying error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("formpdf.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("formpdf.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// newRenderError creates a new RenderError wrapping the given error with
// operation context.
func newRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}
