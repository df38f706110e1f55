package versioned

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time { return t0.Add(offset) }

func expiredAt(offset time.Duration) *time.Time {
	ts := at(offset)
	return &ts
}

func record(id uid.UID, version int, created time.Time, expired *time.Time) *Record[string] {
	return &Record[string]{Loc: locator.Locator{ID: id, Version: version}, CreatedAt: created, ExpiredAt: expired}
}

func TestIsActiveAt(t *testing.T) {
	v := record(uid.NewRandom(), 1, at(0), expiredAt(time.Hour))

	testCases := []struct {
		description string
		at          time.Time
		expected    bool
	}{
		{description: "at creation", at: at(0), expected: true},
		{description: "before creation", at: at(-time.Millisecond), expected: false},
		{description: "just before expiry", at: at(time.Hour - time.Millisecond), expected: true},
		{description: "at expiry", at: at(time.Hour), expected: false},
		{description: "after expiry", at: at(2 * time.Hour), expected: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, IsActiveAt(testCase.at, v), testCase.description)
	}

	open := record(uid.NewRandom(), 1, at(0), nil)
	assert.True(t, IsActiveAt(at(1000*time.Hour), open))
	assert.False(t, IsActiveAt(at(-time.Millisecond), open))
}

func TestEqualAndKey(t *testing.T) {
	id := uid.NewRandom()
	a := record(id, 1, at(0), nil)
	b := record(id, 1, at(time.Minute), expiredAt(time.Hour))
	c := record(id, 2, at(0), nil)
	d := record(uid.NewRandom(), 1, at(0), nil)

	assert.True(t, Equal(a, b))
	assert.True(t, Equal(a, a))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, d))
	assert.Equal(t, Key(a), Key(b))
	assert.NotEqual(t, Key(a), Key(c))

	set := map[string]Versioned{}
	for _, v := range []Versioned{a, b, c, d} {
		set[Key(v)] = v
	}
	assert.Len(t, set, 3)
}

func TestFindActive(t *testing.T) {
	id := uid.NewRandom()
	other := uid.NewRandom()
	v1 := record(id, 1, at(0), expiredAt(time.Hour))
	v2 := record(id, 2, at(time.Hour), expiredAt(2*time.Hour))
	v3 := record(id, 3, at(2*time.Hour), nil)
	o1 := record(other, 1, at(0), nil)

	actual, ok := FindActive(id, []*Record[string]{v2, o1, v3, v1})
	assert.True(t, ok)
	assert.Same(t, v3, actual)

	_, ok = FindActive(id, []*Record[string]{v1, v2, o1})
	assert.False(t, ok, "all versions expired")

	_, ok = FindActive(uid.NewRandom(), []*Record[string]{v1, v2, v3, o1})
	assert.False(t, ok, "unknown id")

	_, ok = FindActive[*Record[string]](id, nil)
	assert.False(t, ok)
}

func TestFindActive_PrefersHighestVersion(t *testing.T) {
	id := uid.NewRandom()
	v1 := record(id, 1, at(0), nil)
	v2 := record(id, 2, at(time.Hour), nil)

	actual, ok := FindActive(id, []*Record[string]{v2, v1})
	assert.True(t, ok)
	assert.Same(t, v2, actual)

	actual, ok = FindAt(id, at(3*time.Hour), []*Record[string]{v1, v2})
	assert.True(t, ok)
	assert.Same(t, v2, actual)
}

func TestFindAt(t *testing.T) {
	id := uid.NewRandom()
	v1 := record(id, 1, at(0), expiredAt(time.Hour))
	v2 := record(id, 2, at(time.Hour), expiredAt(2*time.Hour))
	v3 := record(id, 3, at(2*time.Hour), nil)
	items := []*Record[string]{v3, v1, v2}

	testCases := []struct {
		description string
		at          time.Time
		expected    *Record[string]
	}{
		{description: "before history", at: at(-time.Second)},
		{description: "first version", at: at(30 * time.Minute), expected: v1},
		{description: "boundary switches to v2", at: at(time.Hour), expected: v2},
		{description: "last instant of v2", at: at(2*time.Hour - time.Millisecond), expected: v2},
		{description: "current", at: at(10 * time.Hour), expected: v3},
	}
	for _, testCase := range testCases {
		actual, ok := FindAt(id, testCase.at, items)
		if testCase.expected == nil {
			assert.False(t, ok, testCase.description)
			continue
		}
		assert.True(t, ok, testCase.description)
		assert.Same(t, testCase.expected, actual, testCase.description)
	}
}

func TestFindAllVersions(t *testing.T) {
	id := uid.NewRandom()
	v1 := record(id, 1, at(0), expiredAt(time.Hour))
	v2 := record(id, 2, at(time.Hour), expiredAt(2*time.Hour))
	v3 := record(id, 3, at(2*time.Hour), nil)
	o1 := record(uid.NewRandom(), 1, at(0), nil)

	actual := FindAllVersions(id, []*Record[string]{v3, o1, v1, v2})
	assert.Equal(t, []*Record[string]{v1, v2, v3}, actual)
	assert.Empty(t, FindAllVersions(uid.NewRandom(), actual))
}

func TestAllActive(t *testing.T) {
	a1 := record(uid.NewRandom(), 1, at(0), expiredAt(time.Hour))
	a2 := record(a1.Loc.ID, 2, at(time.Hour), nil)
	b1 := record(uid.NewRandom(), 1, at(0), nil)
	c1 := record(uid.NewRandom(), 1, at(0), expiredAt(time.Minute))

	assert.Equal(t, []*Record[string]{a2, b1}, AllActive([]*Record[string]{a1, a2, b1, c1}))
	assert.Empty(t, AllActive([]*Record[string]{a1, c1}))
}

func TestValidateForExpiry(t *testing.T) {
	id := uid.NewRandom()
	v := record(id, 1, at(0), nil)

	actual, err := ValidateForExpiry(v, true, id, "node")
	assert.NoError(t, err)
	assert.Same(t, v, actual)

	actual, err = ValidateForExpiry[*Record[string]](nil, false, id, "node")
	assert.Nil(t, actual)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "node")
	assert.Contains(t, err.Error(), id.Code())
}
