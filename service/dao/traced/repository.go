// Package traced wraps a dao.Repository so that every call is recorded as an
// OpenTelemetry span.
package traced

import (
	"context"
	"strconv"
	"time"

	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/uid"
	"github.com/viant/versionary/model/versioned"
	"github.com/viant/versionary/service/dao"
	"github.com/viant/versionary/tracing"
)

const spanPrefix = "versionary.repository."

// Repository decorates a dao.Repository with tracing spans.
type Repository[T versioned.Versioned] struct {
	dao.Repository[T]
}

// New wraps repo.
func New[T versioned.Versioned](repo dao.Repository[T]) *Repository[T] {
	return &Repository[T]{Repository: repo}
}

func start(ctx context.Context, op string, attrs map[string]string) (context.Context, *tracing.Span) {
	ctx, span := tracing.StartSpan(ctx, spanPrefix+op)
	return ctx, span.WithAttributes(attrs)
}

func idAttrs(id uid.UID) map[string]string {
	if id == nil {
		return nil
	}
	return map[string]string{"uid": id.Code(), "uid.kind": id.Kind().String()}
}

func locatorAttrs(loc locator.Locator) map[string]string {
	ret := idAttrs(loc.ID)
	if ret == nil {
		ret = map[string]string{}
	}
	ret["version"] = strconv.Itoa(loc.Version)
	return ret
}

func (r *Repository[T]) Save(ctx context.Context, item T) (ret T, err error) {
	var attrs map[string]string
	if !dao.IsNil(item) {
		attrs = locatorAttrs(item.Locator())
	}
	ctx, span := start(ctx, "Save", attrs)
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.Save(ctx, item)
}

func (r *Repository[T]) Expire(ctx context.Context, id uid.UID, timestamp time.Time) (found bool, err error) {
	ctx, span := start(ctx, "Expire", idAttrs(id))
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.Expire(ctx, id, timestamp)
}

func (r *Repository[T]) Delete(ctx context.Context, id uid.UID) (found bool, err error) {
	ctx, span := start(ctx, "Delete", idAttrs(id))
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.Delete(ctx, id)
}

func (r *Repository[T]) FindAll(ctx context.Context, id uid.UID) (ret []T, err error) {
	ctx, span := start(ctx, "FindAll", idAttrs(id))
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.FindAll(ctx, id)
}

func (r *Repository[T]) FindVersions(ctx context.Context, id uid.UID) (ret []T, err error) {
	ctx, span := start(ctx, "FindVersions", idAttrs(id))
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.FindVersions(ctx, id)
}

func (r *Repository[T]) FindActive(ctx context.Context, id uid.UID) (ret T, ok bool, err error) {
	ctx, span := start(ctx, "FindActive", idAttrs(id))
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.FindActive(ctx, id)
}

func (r *Repository[T]) Find(ctx context.Context, loc locator.Locator) (ret T, err error) {
	ctx, span := start(ctx, "Find", locatorAttrs(loc))
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.Find(ctx, loc)
}

func (r *Repository[T]) FindAt(ctx context.Context, id uid.UID, timestamp time.Time) (ret T, ok bool, err error) {
	attrs := idAttrs(id)
	if attrs != nil {
		attrs["at"] = timestamp.Format(time.RFC3339Nano)
	}
	ctx, span := start(ctx, "FindAt", attrs)
	defer func() { tracing.EndSpan(span, err) }()
	return r.Repository.FindAt(ctx, id, timestamp)
}

// AllActive delegates when the wrapped repository implements dao.ActiveLister.
func (r *Repository[T]) AllActive(ctx context.Context) (ret []T, err error) {
	ctx, span := start(ctx, "AllActive", nil)
	defer func() { tracing.EndSpan(span, err) }()
	lister, ok := r.Repository.(dao.ActiveLister[T])
	if !ok {
		return nil, dao.ErrUnsupported
	}
	return lister.AllActive(ctx)
}
