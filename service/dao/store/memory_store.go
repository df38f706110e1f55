package store

import (
	"context"
	"time"

	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/uid"
	"github.com/viant/versionary/model/versioned"
	"github.com/viant/versionary/service/dao"
	"github.com/viant/versionary/service/dao/finder"
)

// MemoryStore is a generic in-memory implementation of dao.Repository.
// State is kept as immutable finder.Simple snapshots published through a
// finder.Ref: reads never block, writes are serialized and validated with
// dao.ValidateNext before a new snapshot is published.
type MemoryStore[T versioned.Expirable[T]] struct {
	ref *finder.Ref[T]
}

// NewMemoryStore creates a store holding the supplied versions, if any.
func NewMemoryStore[T versioned.Expirable[T]](items ...T) *MemoryStore[T] {
	return &MemoryStore[T]{ref: finder.NewRef(finder.NewSimple(items...))}
}

var _ dao.Repository[*versioned.Record[string]] = (*MemoryStore[*versioned.Record[string]])(nil)
var _ dao.ActiveLister[*versioned.Record[string]] = (*MemoryStore[*versioned.Record[string]])(nil)

// Snapshot returns the current immutable state.
func (s *MemoryStore[T]) Snapshot() *finder.Simple[T] {
	return s.ref.Load()
}

// Save appends a new version to its id history.
func (s *MemoryStore[T]) Save(ctx context.Context, item T) (T, error) {
	_, err := s.ref.Update(func(current *finder.Simple[T]) (*finder.Simple[T], error) {
		if dao.IsNil(item) {
			return nil, dao.ErrNilEntity
		}
		if item.Locator().ID == nil {
			return nil, dao.ErrInvalidID
		}
		history, err := current.FindVersions(ctx, item.Locator().ID)
		if err != nil {
			return nil, err
		}
		if err = dao.ValidateNext(history, item); err != nil {
			return nil, err
		}
		return current.Add(item), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Expire stamps the active version of id as expired at timestamp.
func (s *MemoryStore[T]) Expire(ctx context.Context, id uid.UID, timestamp time.Time) (bool, error) {
	if id == nil {
		return false, dao.ErrInvalidID
	}
	found := false
	_, err := s.ref.Update(func(current *finder.Simple[T]) (*finder.Simple[T], error) {
		active, ok, err := current.FindActive(ctx, id)
		if err != nil || !ok {
			return current, err
		}
		if err = dao.ValidateExpiry(active, timestamp); err != nil {
			return nil, err
		}
		next, replaced := current.Replace(active.WithExpired(timestamp))
		found = replaced
		return next, nil
	})
	return found, err
}

// Delete removes the whole history of id.
func (s *MemoryStore[T]) Delete(_ context.Context, id uid.UID) (bool, error) {
	if id == nil {
		return false, dao.ErrInvalidID
	}
	found := false
	_, err := s.ref.Update(func(current *finder.Simple[T]) (*finder.Simple[T], error) {
		next, removed := current.Remove(id)
		found = removed
		return next, nil
	})
	return found, err
}

func (s *MemoryStore[T]) FindAll(ctx context.Context, id uid.UID) ([]T, error) {
	return s.FindVersions(ctx, id)
}

func (s *MemoryStore[T]) FindVersions(ctx context.Context, id uid.UID) ([]T, error) {
	if id == nil {
		return nil, dao.ErrInvalidID
	}
	return s.ref.Load().FindVersions(ctx, id)
}

func (s *MemoryStore[T]) FindActive(ctx context.Context, id uid.UID) (T, bool, error) {
	if id == nil {
		var zero T
		return zero, false, dao.ErrInvalidID
	}
	return s.ref.Load().FindActive(ctx, id)
}

func (s *MemoryStore[T]) Find(ctx context.Context, loc locator.Locator) (T, error) {
	return s.ref.Load().Find(ctx, loc)
}

func (s *MemoryStore[T]) FindAt(ctx context.Context, id uid.UID, timestamp time.Time) (T, bool, error) {
	if id == nil {
		var zero T
		return zero, false, dao.ErrInvalidID
	}
	return s.ref.Load().FindAt(ctx, id, timestamp)
}

// AllActive returns the active version of every id.
func (s *MemoryStore[T]) AllActive(ctx context.Context) ([]T, error) {
	return s.ref.Load().AllActive(ctx)
}
