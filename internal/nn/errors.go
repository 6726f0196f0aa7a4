package nn

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrUnsupported        = errors.New("unsupported enum value")
	ErrInvalidLayerConfig = errors.New("invalid layer config")
	ErrShapeMismatch      = errors.New("shape mismatch")
)

// UnsupportedError reports a tag outside its closed set (activation, loss,
// weight or bias initialization, target function).
type UnsupportedError struct {
	Kind  string // e.g. "activation function"
	Value string // offending tag as text
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s type is not supported (%s)", e.Kind, e.Value)
}

// Unwrap lets errors.Is match ErrUnsupported.
func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Unsupported builds an *UnsupportedError for kind and value.
func Unsupported(kind string, value any) error {
	return &UnsupportedError{Kind: kind, Value: fmt.Sprint(value)}
}

// shapePanic aborts on parameter/gradient shape divergence. Generated networks
// cannot reach it; hand-assembled slices can.
func shapePanic(format string, args ...any) {
	panic(errors.Wrapf(ErrShapeMismatch, format, args...))
}
