package uid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/viant/versionary/model/types"
)

// MonotonicLength is the code length of every Monotonic identifier.
const MonotonicLength = ulid.EncodedSize

// Monotonic is a lexicographically sortable identifier (ULID). Identifiers
// created in different milliseconds sort chronologically; within the same
// millisecond the order is decided by the random suffix.
type Monotonic ulid.ULID

// NewMonotonic generates a new identifier stamped with the current time.
func NewMonotonic() Monotonic {
	return Monotonic(ulid.Make())
}

// ParseMonotonic parses a 26 character Crockford base32 code. The returned
// error wraps both types.ErrInvalidArgument and the underlying ulid error.
func ParseMonotonic(code string) (Monotonic, error) {
	parsed, err := ulid.ParseStrict(code)
	if err != nil {
		return Monotonic{}, fmt.Errorf("%w: monotonic code %q: %w", types.ErrInvalidArgument, code, err)
	}
	return Monotonic(parsed), nil
}

// MonotonicFromUUID reinterprets the 128 bits of a UUID.
func MonotonicFromUUID(id uuid.UUID) Monotonic {
	return Monotonic(id)
}

// UUID reinterprets the identifier as a UUID.
func (m Monotonic) UUID() uuid.UUID {
	return uuid.UUID(m)
}

// Timestamp returns the embedded creation instant (millisecond precision).
func (m Monotonic) Timestamp() time.Time {
	return ulid.Time(ulid.ULID(m).Time())
}

// Compare returns -1, 0 or +1 comparing the raw 128-bit values.
func (m Monotonic) Compare(other Monotonic) int {
	return ulid.ULID(m).Compare(ulid.ULID(other))
}

func (m Monotonic) Code() string { return ulid.ULID(m).String() }

func (m Monotonic) Kind() Kind { return KindMonotonic }

func (m Monotonic) String() string { return m.Code() }
