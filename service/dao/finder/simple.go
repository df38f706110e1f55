// Package finder provides an immutable in-memory dao.Finder.
package finder

import (
	"context"
	"time"

	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
	"github.com/viant/versionary/model/versioned"
	"github.com/viant/versionary/service/dao"
)

// Simple is an immutable finder over histories keyed by id code. Every
// modification returns a new Simple backed by a full copy; values obtained
// earlier keep observing their own snapshot, so a Simple can be shared
// between goroutines without locking.
type Simple[T versioned.Versioned] struct {
	all map[string][]T
}

var _ dao.Finder[versioned.Versioned] = (*Simple[versioned.Versioned])(nil)

// NewSimple creates a finder holding items, appended in the given order.
// Items without an id are skipped.
func NewSimple[T versioned.Versioned](items ...T) *Simple[T] {
	ret := &Simple[T]{all: make(map[string][]T)}
	for _, item := range items {
		if dao.IsNil(item) || item.Locator().ID == nil {
			continue
		}
		code := item.Locator().ID.Code()
		ret.all[code] = append(ret.all[code], item)
	}
	return ret
}

// Add returns a new finder with item appended to its id history. An item
// without an id leaves f unchanged.
func (f *Simple[T]) Add(item T) *Simple[T] {
	if dao.IsNil(item) || item.Locator().ID == nil {
		return f
	}
	ret := f.copy()
	code := item.Locator().ID.Code()
	ret.all[code] = append(ret.all[code], item)
	return ret
}

// Replace returns a new finder where the stored version with item's locator
// is swapped for item. It reports false, returning f, when no such version
// exists.
func (f *Simple[T]) Replace(item T) (*Simple[T], bool) {
	if dao.IsNil(item) || item.Locator().ID == nil {
		return f, false
	}
	loc := item.Locator()
	history := f.all[loc.ID.Code()]
	for i := range history {
		if history[i].Locator().Equal(loc) {
			ret := f.copy()
			ret.all[loc.ID.Code()][i] = item
			return ret, true
		}
	}
	return f, false
}

// Remove returns a new finder without the history of id. It reports false,
// returning f, when id is unknown.
func (f *Simple[T]) Remove(id uid.UID) (*Simple[T], bool) {
	if id == nil {
		return f, false
	}
	if _, ok := f.all[id.Code()]; !ok {
		return f, false
	}
	ret := f.copy()
	delete(ret.all, id.Code())
	return ret, true
}

// Len returns the number of known ids.
func (f *Simple[T]) Len() int {
	return len(f.all)
}

// Items returns every stored version of every id.
func (f *Simple[T]) Items() []T {
	var ret []T
	for _, history := range f.all {
		ret = append(ret, history...)
	}
	return ret
}

// AllActive returns the active version of every id.
func (f *Simple[T]) AllActive(_ context.Context) ([]T, error) {
	return versioned.AllActive(f.Items()), nil
}

func (f *Simple[T]) FindActive(_ context.Context, id uid.UID) (T, bool, error) {
	if id == nil {
		var zero T
		return zero, false, dao.ErrInvalidID
	}
	ret, ok := versioned.FindActive(id, f.all[id.Code()])
	return ret, ok, nil
}

func (f *Simple[T]) FindAt(_ context.Context, id uid.UID, timestamp time.Time) (T, bool, error) {
	if id == nil {
		var zero T
		return zero, false, dao.ErrInvalidID
	}
	ret, ok := versioned.FindAt(id, timestamp, f.all[id.Code()])
	return ret, ok, nil
}

func (f *Simple[T]) FindVersions(_ context.Context, id uid.UID) ([]T, error) {
	if id == nil {
		return nil, dao.ErrInvalidID
	}
	ret := versioned.FindAllVersions(id, f.all[id.Code()])
	if ret == nil {
		ret = []T{}
	}
	return ret, nil
}

// Find returns the exact version. Unknown ids and versions are reported as
// types.ErrNotFound, which is also a types.ErrInvalidArgument.
func (f *Simple[T]) Find(_ context.Context, loc locator.Locator) (T, error) {
	var zero T
	if loc.ID == nil {
		return zero, dao.ErrInvalidID
	}
	history, ok := f.all[loc.ID.Code()]
	if !ok {
		return zero, types.NewNotFoundError("uid", loc)
	}
	for _, item := range history {
		if item.Locator().Equal(loc) {
			return item, nil
		}
	}
	return zero, types.NewNotFoundError("locator", loc)
}

func (f *Simple[T]) copy() *Simple[T] {
	ret := &Simple[T]{all: make(map[string][]T, len(f.all)+1)}
	for code, history := range f.all {
		ret.all[code] = append(make([]T, 0, len(history)+1), history...)
	}
	return ret
}
