// Package locator identifies one version of one entity.
package locator

import (
	"strconv"

	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
)

// FirstVersion is the version number of every newly created entity.
const FirstVersion = 1

// Locator is an immutable (id, version) pair. Versions start at FirstVersion
// and each successor increments by one; keeping the chain consistent is up to
// the caller.
type Locator struct {
	ID      uid.UID
	Version int
}

// Generate creates a locator for a new entity with a fresh random id.
func Generate() Locator {
	return Locator{ID: uid.NewRandom(), Version: FirstVersion}
}

// First creates the first version locator for id.
func First(id uid.UID) Locator {
	return Locator{ID: id, Version: FirstVersion}
}

// New creates a locator after checking its arguments.
func New(id uid.UID, version int) (Locator, error) {
	if id == nil {
		return Locator{}, types.NewNilArgumentError("locator id")
	}
	if version < FirstVersion {
		return Locator{}, types.NewInvalidArgumentError("locator version %d < %d", version, FirstVersion)
	}
	return Locator{ID: id, Version: version}, nil
}

// Increment returns the locator of the next version; l is left unchanged.
func (l Locator) Increment() Locator {
	return Locator{ID: l.ID, Version: l.Version + 1}
}

// Equal compares id codes and versions.
func (l Locator) Equal(other Locator) bool {
	return l.Version == other.Version && uid.Equal(l.ID, other.ID)
}

// Key returns a string usable as a map key; equal locators share a key.
func (l Locator) Key() string {
	code := ""
	if l.ID != nil {
		code = l.ID.Code()
	}
	return code + separator + strconv.Itoa(l.Version)
}

// String returns the text form "code@version".
func (l Locator) String() string {
	return l.Key()
}
