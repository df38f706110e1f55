package event

import (
	"time"

	"github.com/viant/versionary/model/locator"
)

// Type names a version lifecycle transition
type Type string

const (
	TypeCreated Type = "created"
	TypeUpdated Type = "updated"
	TypeExpired Type = "expired"
	TypeDeleted Type = "deleted"
)

// Change describes one committed transition. Locator addresses the version
// the transition produced (or, for expired and deleted, the last one).
type Change struct {
	Type     Type            `json:"type" yaml:"type"`
	Locator  locator.Locator `json:"locator" yaml:"locator"`
	At       time.Time       `json:"at" yaml:"at"`
	Metadata map[string]any  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func NewChange(kind Type, loc locator.Locator, at time.Time) *Change {
	return &Change{Type: kind, Locator: loc, At: at}
}
