package versioned

import (
	"time"

	"github.com/viant/versionary/model/locator"
)

// Versioned represents one immutable version of an entity.
type Versioned interface {
	// Locator returns the (id, version) of this version.
	Locator() locator.Locator
	// Created returns the instant this version was created.
	Created() time.Time
	// Expired returns the instant this version was superseded, or nil.
	Expired() *time.Time
}

// Expirable is a Versioned value able to produce its own expired copy.
type Expirable[T any] interface {
	Versioned
	// WithExpired returns a copy stamped as expired at the given instant.
	WithExpired(at time.Time) T
}

// IsActiveAt reports whether v is active at instant t.
func IsActiveAt(t time.Time, v Versioned) bool {
	if v.Created().After(t) {
		return false
	}
	expired := v.Expired()
	return expired == nil || expired.After(t)
}

// IsActive reports whether v has no expiry.
func IsActive(v Versioned) bool {
	return v.Expired() == nil
}

// Equal compares two versions by locator only, ignoring timestamps.
func Equal(a, b Versioned) bool {
	return a.Locator().Equal(b.Locator())
}

// Key returns a map key derived from the locator only.
func Key(v Versioned) string {
	return v.Locator().Key()
}
