package uid

// Kind identifies a UID variant.
type Kind int

const (
	KindRandom Kind = iota + 1
	KindMonotonic
)

func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "random"
	case KindMonotonic:
		return "monotonic"
	}
	return "unknown"
}

// UID represents a unique identifier. Implementations are immutable and safe
// for concurrent use.
type UID interface {
	// Code returns the canonical string form.
	Code() string
	// Kind returns the variant tag.
	Kind() Kind
	String() string
}

// Equal reports whether both identifiers carry the same code.
func Equal(a, b UID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Code() == b.Code()
}
