package finder

import (
	"sync"
	"sync/atomic"

	"github.com/viant/versionary/model/versioned"
)

// Ref publishes successive Simple snapshots. Readers load the current
// snapshot without locking; writers are serialized so that no update derived
// from a stale snapshot is lost.
type Ref[T versioned.Versioned] struct {
	mu      sync.Mutex
	current atomic.Pointer[Simple[T]]
}

// NewRef creates a reference to initial, or to an empty finder when nil.
func NewRef[T versioned.Versioned](initial *Simple[T]) *Ref[T] {
	if initial == nil {
		initial = NewSimple[T]()
	}
	ret := &Ref[T]{}
	ret.current.Store(initial)
	return ret
}

// Load returns the current snapshot.
func (r *Ref[T]) Load() *Simple[T] {
	return r.current.Load()
}

// Update derives the next snapshot from the current one and publishes it.
// When fn fails nothing is published.
func (r *Ref[T]) Update(fn func(current *Simple[T]) (*Simple[T], error)) (*Simple[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := fn(r.current.Load())
	if err != nil {
		return nil, err
	}
	r.current.Store(next)
	return next, nil
}
