package dao

import (
	"fmt"
	"reflect"
	"time"

	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/versioned"
)

// IsNil reports whether v is a nil interface or a nil pointer.
func IsNil(v interface{}) bool {
	if v == nil {
		return true
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return value.IsNil()
	}
	return false
}

// ValidateNext checks that item may be appended to history, the stored
// versions of the same id. It enforces the version chain and the single
// active version rule on write.
func ValidateNext[T versioned.Versioned](history []T, item T) error {
	if IsNil(item) {
		return ErrNilEntity
	}
	loc := item.Locator()
	if loc.ID == nil {
		return ErrInvalidID
	}
	if expired := item.Expired(); expired != nil && !expired.After(item.Created()) {
		return fmt.Errorf("%w: %v expired %v not after created %v", ErrVersionConflict, loc, *expired, item.Created())
	}
	expected := locator.FirstVersion
	for _, prior := range history {
		if v := prior.Locator().Version; v >= expected {
			expected = v + 1
		}
		if versioned.IsActive(prior) {
			return fmt.Errorf("%w: %v is still active", ErrVersionConflict, prior.Locator())
		}
	}
	if loc.Version != expected {
		return fmt.Errorf("%w: expected version %d, got %v", ErrVersionConflict, expected, loc)
	}
	return nil
}

// ValidateExpiry checks that active may be expired at timestamp.
func ValidateExpiry(active versioned.Versioned, timestamp time.Time) error {
	if !timestamp.After(active.Created()) {
		return fmt.Errorf("%w: %v expiry %v not after created %v", ErrVersionConflict, active.Locator(), timestamp, active.Created())
	}
	return nil
}
