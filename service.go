package versionary

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/viant/versionary/internal/clock"
	"github.com/viant/versionary/internal/idgen"
	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
	"github.com/viant/versionary/model/versioned"
	"github.com/viant/versionary/service/dao"
	"github.com/viant/versionary/service/dao/record/fs"
	"github.com/viant/versionary/service/dao/store"
	"github.com/viant/versionary/service/dao/traced"
	"github.com/viant/versionary/service/event"
	"github.com/viant/versionary/service/messaging"
	"github.com/viant/versionary/service/messaging/memory"
	"github.com/viant/versionary/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const elementType = "record"

// Service manages versioned records of P
type Service[P any] struct {
	config     *Config
	repository dao.Repository[*versioned.Record[P]]
	exporter   sdktrace.SpanExporter
	changes    messaging.Queue[event.Change]
	publisher  *event.Publisher
	idKind     uid.Kind
	mux        sync.Mutex
}

// Config returns the effective configuration
func (s *Service[P]) Config() *Config {
	return s.config
}

// Repository returns the underlying repository
func (s *Service[P]) Repository() dao.Repository[*versioned.Record[P]] {
	return s.repository
}

// Create stores value as version 1 of a new entity.
func (s *Service[P]) Create(ctx context.Context, value P) (*versioned.Record[P], error) {
	loc := locator.First(idgen.New(s.idKind))
	ret, err := s.repository.Save(ctx, versioned.NewRecord(loc, clock.Now(), value))
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, event.NewChange(event.TypeCreated, ret.Loc, ret.CreatedAt))
	return ret, nil
}

// Update expires the active version of id and saves value as its successor.
// The expiry of the old version equals the creation of the new one, so FindAt
// never sees a gap or an overlap.
func (s *Service[P]) Update(ctx context.Context, id uid.UID, value P) (*versioned.Record[P], error) {
	ret, err := s.update(ctx, id, value)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, event.NewChange(event.TypeUpdated, ret.Loc, ret.CreatedAt))
	return ret, nil
}

func (s *Service[P]) update(ctx context.Context, id uid.UID, value P) (*versioned.Record[P], error) {
	if id == nil {
		return nil, dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	current, now, err := s.expireActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repository.Save(ctx, versioned.NewRecord(current.Loc.Increment(), now, value))
}

// Expire ends the active version of id without a successor and returns the
// expired record.
func (s *Service[P]) Expire(ctx context.Context, id uid.UID) (*versioned.Record[P], error) {
	ret, err := s.expire(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, event.NewChange(event.TypeExpired, ret.Loc, *ret.ExpiredAt))
	return ret, nil
}

func (s *Service[P]) expire(ctx context.Context, id uid.UID) (*versioned.Record[P], error) {
	if id == nil {
		return nil, dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	current, now, err := s.expireActive(ctx, id)
	if err != nil {
		return nil, err
	}
	ret, err := s.repository.Find(ctx, current.Loc)
	if err != nil {
		return nil, err
	}
	if ret.ExpiredAt == nil {
		return ret.WithExpired(now), nil
	}
	return ret, nil
}

// expireActive expires the active version of id and returns it with the
// expiry instant. Callers hold s.mux.
func (s *Service[P]) expireActive(ctx context.Context, id uid.UID) (*versioned.Record[P], time.Time, error) {
	current, ok, err := s.repository.FindActive(ctx, id)
	if err != nil {
		return nil, time.Time{}, err
	}
	if current, err = versioned.ValidateForExpiry(current, ok, id, elementType); err != nil {
		return nil, time.Time{}, err
	}
	now := nextInstant(current.CreatedAt)
	found, err := s.repository.Expire(ctx, id, now)
	if err != nil {
		return nil, time.Time{}, err
	}
	if !found {
		return nil, time.Time{}, types.NewNotFoundError(elementType, id)
	}
	return current, now, nil
}

// Delete removes the whole history of id
func (s *Service[P]) Delete(ctx context.Context, id uid.UID) (bool, error) {
	last, deleted, err := s.delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	if last != nil {
		s.publisher.Publish(ctx, event.NewChange(event.TypeDeleted, last.Loc, clock.Now()))
	}
	return true, nil
}

func (s *Service[P]) delete(ctx context.Context, id uid.UID) (*versioned.Record[P], bool, error) {
	if id == nil {
		return nil, false, dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	history, err := s.repository.FindVersions(ctx, id)
	if err != nil {
		return nil, false, err
	}
	deleted, err := s.repository.Delete(ctx, id)
	if err != nil || !deleted {
		return nil, deleted, err
	}
	if len(history) == 0 {
		return nil, true, nil
	}
	return history[len(history)-1], true, nil
}

// Listen starts delivering committed changes to handler. Call Stop on the
// returned listener to end delivery.
func (s *Service[P]) Listen(handler func(*event.Change)) (*event.Listener, error) {
	if s.publisher == nil {
		return nil, fmt.Errorf("change feed disabled: %w", dao.ErrUnsupported)
	}
	listener := event.NewListener(s.publisher, handler)
	listener.Start()
	return listener, nil
}

// Active returns the currently active version of id
func (s *Service[P]) Active(ctx context.Context, id uid.UID) (*versioned.Record[P], bool, error) {
	return s.repository.FindActive(ctx, id)
}

// At returns the version of id that was active at timestamp
func (s *Service[P]) At(ctx context.Context, id uid.UID, timestamp time.Time) (*versioned.Record[P], bool, error) {
	return s.repository.FindAt(ctx, id, timestamp)
}

// History returns every version of id, oldest first
func (s *Service[P]) History(ctx context.Context, id uid.UID) ([]*versioned.Record[P], error) {
	return s.repository.FindVersions(ctx, id)
}

// Get returns the exact version addressed by loc
func (s *Service[P]) Get(ctx context.Context, loc locator.Locator) (*versioned.Record[P], error) {
	return s.repository.Find(ctx, loc)
}

// Current returns the active version of every entity, when the repository
// supports listing.
func (s *Service[P]) Current(ctx context.Context) ([]*versioned.Record[P], error) {
	lister, ok := s.repository.(dao.ActiveLister[*versioned.Record[P]])
	if !ok {
		return nil, fmt.Errorf("%T: %w", s.repository, dao.ErrUnsupported)
	}
	return lister.AllActive(ctx)
}

// Diff returns a unified diff between two versions of id; empty when the
// values render identically.
func (s *Service[P]) Diff(ctx context.Context, id uid.UID, fromVersion, toVersion int) (string, error) {
	fromLoc, err := locator.New(id, fromVersion)
	if err != nil {
		return "", err
	}
	toLoc, err := locator.New(id, toVersion)
	if err != nil {
		return "", err
	}
	from, err := s.repository.Find(ctx, fromLoc)
	if err != nil {
		return "", err
	}
	to, err := s.repository.Find(ctx, toLoc)
	if err != nil {
		return "", err
	}
	return versioned.Diff(from, to)
}

// DiffStats returns line statistics of Diff(ctx, id, fromVersion, toVersion)
func (s *Service[P]) DiffStats(ctx context.Context, id uid.UID, fromVersion, toVersion int) (versioned.DiffStats, error) {
	patch, err := s.Diff(ctx, id, fromVersion, toVersion)
	if err != nil {
		return versioned.DiffStats{}, err
	}
	return versioned.Stats(patch)
}

// nextInstant returns clock.Now(), moved past created when the clock has not
// advanced since.
func nextInstant(created time.Time) time.Time {
	now := clock.Now()
	if !now.After(created) {
		now = created.Add(time.Nanosecond)
	}
	return now
}

func (s *Service[P]) ensureBaseSetup() error {
	kind, err := uid.KindOf(s.config.ID.Kind)
	if err != nil {
		return err
	}
	s.idKind = kind
	if s.repository == nil {
		switch s.config.Store.Kind {
		case StoreFs:
			repo, err := fs.New[P](s.config.Store.BaseURL)
			if err != nil {
				return err
			}
			s.repository = repo
		default:
			s.repository = store.NewMemoryStore[*versioned.Record[P]]()
		}
	}
	if s.changes == nil && s.config.Events.Enabled {
		queueConfig := memory.DefaultConfig()
		if s.config.Events.Buffer > 0 {
			queueConfig.QueueBuffer = s.config.Events.Buffer
		}
		s.changes = memory.NewQueue[event.Change](queueConfig)
	}
	if s.changes != nil {
		s.publisher = event.NewPublisher(s.changes)
	}
	if s.config.Tracing.Enabled {
		cfg := s.config.Tracing
		if s.exporter != nil {
			err = tracing.InitWithExporter(cfg.ServiceName, cfg.ServiceVersion, s.exporter)
		} else {
			err = tracing.Init(cfg.ServiceName, cfg.ServiceVersion, cfg.OutputFile)
		}
		if err != nil {
			log.Printf("failed to initialize tracing: %v", err)
		}
		s.repository = traced.New[*versioned.Record[P]](s.repository)
	}
	return nil
}

// New creates a Service with the supplied options
func New[P any](options ...Option[P]) (*Service[P], error) {
	ret := &Service[P]{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	if err := ret.config.Validate(); err != nil {
		return nil, err
	}
	if err := ret.ensureBaseSetup(); err != nil {
		return nil, err
	}
	return ret, nil
}
