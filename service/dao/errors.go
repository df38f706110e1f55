package dao

import (
	"errors"
	"fmt"

	"github.com/viant/versionary/model/types"
)

// Common, reusable DAO errors. They alias the model error kinds so callers
// can use either package with errors.Is.

var (
	// ErrNotFound is returned when the requested id or version does not exist
	// in the underlying storage.
	ErrNotFound = types.ErrNotFound

	// ErrInvalidID indicates that the supplied id is nil or otherwise invalid.
	ErrInvalidID = fmt.Errorf("%w: dao: invalid id", types.ErrInvalidArgument)

	// ErrNilEntity is returned when the caller attempts to persist a nil value.
	ErrNilEntity = fmt.Errorf("%w: dao: nil entity", types.ErrNilArgument)

	// ErrVersionConflict is returned when a saved version does not extend the
	// stored history: a gap in the version chain, a duplicate version or a
	// prior version still active.
	ErrVersionConflict = fmt.Errorf("%w: dao: version conflict", types.ErrInvalidArgument)

	// ErrUnsupported is returned when the underlying repository does not
	// implement an optional operation.
	ErrUnsupported = errors.New("dao: unsupported operation")
)
