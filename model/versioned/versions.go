package versioned

import (
	"slices"
	"time"

	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
)

// FindActive returns the unexpired version of id with the highest version.
func FindActive[T Versioned](id uid.UID, items []T) (T, bool) {
	return latest(items, func(item T) bool {
		return uid.Equal(item.Locator().ID, id) && IsActive(item)
	})
}

// FindAt returns the version of id active at timestamp with the highest version.
func FindAt[T Versioned](id uid.UID, timestamp time.Time, items []T) (T, bool) {
	return latest(items, func(item T) bool {
		return uid.Equal(item.Locator().ID, id) && IsActiveAt(timestamp, item)
	})
}

// FindAllVersions returns every version of id in ascending version order.
func FindAllVersions[T Versioned](id uid.UID, items []T) []T {
	var ret []T
	for _, item := range items {
		if uid.Equal(item.Locator().ID, id) {
			ret = append(ret, item)
		}
	}
	slices.SortStableFunc(ret, func(a, b T) int {
		return a.Locator().Version - b.Locator().Version
	})
	return ret
}

// AllActive returns the unexpired versions across all ids.
func AllActive[T Versioned](items []T) []T {
	var ret []T
	for _, item := range items {
		if IsActive(item) {
			ret = append(ret, item)
		}
	}
	return ret
}

// ValidateForExpiry returns item when ok, otherwise an invalid argument error
// naming elementType and id. Call it before expiring an element.
func ValidateForExpiry[T any](item T, ok bool, id uid.UID, elementType string) (T, error) {
	if !ok {
		var zero T
		return zero, types.NewNotFoundError(elementType, id)
	}
	return item, nil
}

func latest[T Versioned](items []T, matches func(T) bool) (T, bool) {
	var ret T
	found := false
	for _, item := range items {
		if !matches(item) {
			continue
		}
		if !found || item.Locator().Version > ret.Locator().Version {
			ret = item
			found = true
		}
	}
	return ret, found
}
