package types

import (
	"errors"
	"fmt"
)

// Error kinds shared by every package. All of them describe a caller supplied
// bad input or a lookup miss; none of them is transient.
var (
	// ErrInvalidArgument is returned when a value is malformed or refers to
	// something the callee cannot resolve.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilArgument is returned when a required value is nil.
	ErrNilArgument = errors.New("nil argument")

	// ErrNotFound is a lookup miss. It is an invalid argument from the
	// callee's point of view, so errors.Is(err, ErrInvalidArgument) holds too.
	ErrNotFound = fmt.Errorf("%w: not found", ErrInvalidArgument)
)

func NewInvalidArgumentError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func NewNilArgumentError(name string) error {
	return fmt.Errorf("%w: %s", ErrNilArgument, name)
}

func NewNotFoundError(kind string, key interface{}) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, kind, key)
}
