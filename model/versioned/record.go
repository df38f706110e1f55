package versioned

import (
	"time"

	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/types"
)

// Record is a generic Versioned value carrying an arbitrary payload.
type Record[P any] struct {
	Loc       locator.Locator `json:"locator" yaml:"locator"`
	CreatedAt time.Time       `json:"createdAt" yaml:"createdAt"`
	ExpiredAt *time.Time      `json:"expiredAt,omitempty" yaml:"expiredAt,omitempty"`
	Value     P               `json:"value" yaml:"value"`
}

var _ Expirable[*Record[string]] = (*Record[string])(nil)

// NewRecord creates an active record.
func NewRecord[P any](loc locator.Locator, created time.Time, value P) *Record[P] {
	return &Record[P]{Loc: loc, CreatedAt: created, Value: value}
}

func (r *Record[P]) Locator() locator.Locator { return r.Loc }

func (r *Record[P]) Created() time.Time { return r.CreatedAt }

func (r *Record[P]) Expired() *time.Time { return r.ExpiredAt }

// WithExpired returns a copy of r expiring at the given instant.
func (r *Record[P]) WithExpired(at time.Time) *Record[P] {
	ret := *r
	ret.ExpiredAt = &at
	return &ret
}

// Validate checks the record's own invariants.
func (r *Record[P]) Validate() error {
	if r == nil {
		return types.NewNilArgumentError("record")
	}
	if r.Loc.ID == nil {
		return types.NewNilArgumentError("record locator id")
	}
	if r.Loc.Version < locator.FirstVersion {
		return types.NewInvalidArgumentError("record %v: version < %d", r.Loc, locator.FirstVersion)
	}
	if r.ExpiredAt != nil && !r.ExpiredAt.After(r.CreatedAt) {
		return types.NewInvalidArgumentError("record %v: expired %v not after created %v", r.Loc, *r.ExpiredAt, r.CreatedAt)
	}
	return nil
}
