package uid

import "github.com/viant/versionary/model/types"

// Generate returns a new identifier of the default (monotonic) variant.
func Generate() UID {
	return NewMonotonic()
}

// Parse reconstructs an identifier from its code, choosing the variant by
// code length only.
func Parse(code string) (UID, error) {
	switch len(code) {
	case MonotonicLength:
		return ParseMonotonic(code)
	case RandomLength:
		return RandomFrom(code), nil
	}
	return nil, types.NewInvalidArgumentError("unknown format %s", code)
}

// ParseKind reconstructs an identifier of an explicitly given variant.
func ParseKind(kind Kind, code string) (UID, error) {
	switch kind {
	case KindMonotonic:
		return ParseMonotonic(code)
	case KindRandom:
		return RandomFrom(code), nil
	}
	return nil, types.NewInvalidArgumentError("unknown kind %v for %s", kind, code)
}

// KindOf parses a variant name as used in configuration ("random", "monotonic").
func KindOf(name string) (Kind, error) {
	switch name {
	case KindRandom.String():
		return KindRandom, nil
	case KindMonotonic.String(), "":
		return KindMonotonic, nil
	}
	return 0, types.NewInvalidArgumentError("unknown uid kind %s", name)
}

// New generates an identifier of the given variant.
func New(kind Kind) UID {
	switch kind {
	case KindRandom:
		return NewRandom()
	default:
		return NewMonotonic()
	}
}
