package dao

import (
	"context"
	"time"

	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/uid"
	"github.com/viant/versionary/model/versioned"
)

// Finder locates versioned data by id. Every entity has one or more versions
// starting at one and at most one of them is active. Histories are returned
// in ascending version order, so the active version, if any, comes last.
type Finder[T versioned.Versioned] interface {
	// FindVersions returns all versions (active and expired) of id.
	FindVersions(ctx context.Context, id uid.UID) ([]T, error)

	// FindActive returns the active version of id, if any.
	FindActive(ctx context.Context, id uid.UID) (T, bool, error)

	// Find returns the exact version; a miss is reported as ErrNotFound.
	Find(ctx context.Context, loc locator.Locator) (T, error)

	// FindAt returns the version of id active at timestamp, if any.
	FindAt(ctx context.Context, id uid.UID, timestamp time.Time) (T, bool, error)
}

// Repository adds write operations to a Finder. Implementations are the
// persistence collaborators (memory, file system, databases).
type Repository[T versioned.Versioned] interface {
	Finder[T]

	// Save stores a new version and returns the stored value.
	Save(ctx context.Context, item T) (T, error)

	// FindAll returns all versions of id; same as FindVersions.
	FindAll(ctx context.Context, id uid.UID) ([]T, error)

	// Delete removes the whole history of id, reporting whether it existed.
	Delete(ctx context.Context, id uid.UID) (bool, error)

	// Expire stamps the active version of id as expired at timestamp,
	// reporting whether an active version was found.
	Expire(ctx context.Context, id uid.UID, timestamp time.Time) (bool, error)
}

// ActiveLister is implemented by repositories able to return the current
// version of every entity.
type ActiveLister[T versioned.Versioned] interface {
	AllActive(ctx context.Context) ([]T, error)
}
