package versionary_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/versionary"
	"github.com/viant/versionary/internal/clock"
	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
	"github.com/viant/versionary/model/versioned"
	"github.com/viant/versionary/service/dao"
	"github.com/viant/versionary/service/dao/store"
	"github.com/viant/versionary/service/event"
	"github.com/viant/versionary/service/messaging/memory"
)

type note struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

func stubClock(t *testing.T, start time.Time) func(d time.Duration) {
	now := start
	clock.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { clock.NowFunc = time.Now })
	return func(d time.Duration) { now = now.Add(d) }
}

func TestService_Lifecycle(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	advance := stubClock(t, t0)
	ctx := context.Background()

	srv, err := versionary.New[note]()
	if !assert.NoError(t, err) {
		return
	}
	v1, err := srv.Create(ctx, note{Title: "draft"})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, locator.FirstVersion, v1.Loc.Version)
	assert.Equal(t, uid.KindMonotonic, v1.Loc.ID.Kind())
	assert.Equal(t, t0, v1.CreatedAt)

	advance(time.Minute)
	v2, err := srv.Update(ctx, v1.Loc.ID, note{Title: "final", Body: "done"})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 2, v2.Loc.Version)
	assert.Equal(t, t0.Add(time.Minute), v2.CreatedAt)

	active, ok, err := srv.Active(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "final", active.Value.Title)

	past, ok, err := srv.At(ctx, v1.Loc.ID, t0.Add(30*time.Second))
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "draft", past.Value.Title)

	boundary, ok, err := srv.At(ctx, v1.Loc.ID, t0.Add(time.Minute))
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, boundary.Loc.Version)

	history, err := srv.History(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	if assert.Len(t, history, 2) {
		assert.NotNil(t, history[0].ExpiredAt)
		assert.Nil(t, history[1].ExpiredAt)
	}

	first, err := srv.Get(ctx, v1.Loc)
	assert.NoError(t, err)
	assert.Equal(t, "draft", first.Value.Title)

	diff, err := srv.Diff(ctx, v1.Loc.ID, 1, 2)
	assert.NoError(t, err)
	assert.Contains(t, diff, "-title: draft")
	assert.Contains(t, diff, "+title: final")
	stats, err := srv.DiffStats(ctx, v1.Loc.ID, 1, 2)
	assert.NoError(t, err)
	assert.True(t, stats.Changed())

	current, err := srv.Current(ctx)
	assert.NoError(t, err)
	assert.Len(t, current, 1)

	advance(time.Minute)
	expired, err := srv.Expire(ctx, v1.Loc.ID)
	if assert.NoError(t, err) && assert.NotNil(t, expired.ExpiredAt) {
		assert.Equal(t, t0.Add(2*time.Minute), *expired.ExpiredAt)
	}
	_, ok, err = srv.Active(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = srv.Update(ctx, v1.Loc.ID, note{Title: "again"})
	assert.True(t, errors.Is(err, types.ErrNotFound))

	deleted, err := srv.Delete(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)
	history, err = srv.History(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	srv, err := versionary.New[note]()
	if !assert.NoError(t, err) {
		return
	}
	var testCases = []struct {
		description string
		id          uid.UID
		expectErr   error
	}{
		{description: "nil id", id: nil, expectErr: dao.ErrInvalidID},
		{description: "unknown id", id: uid.NewMonotonic(), expectErr: types.ErrNotFound},
		{description: "unknown random id", id: uid.NewRandom(), expectErr: types.ErrInvalidArgument},
	}
	for _, testCase := range testCases {
		_, err := srv.Update(ctx, testCase.id, note{})
		assert.True(t, errors.Is(err, testCase.expectErr), testCase.description)
	}
}

func TestService_SameInstantUpdate(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stubClock(t, t0)
	ctx := context.Background()
	srv, err := versionary.New[note]()
	if !assert.NoError(t, err) {
		return
	}
	v1, err := srv.Create(ctx, note{Title: "a"})
	if !assert.NoError(t, err) {
		return
	}
	v2, err := srv.Update(ctx, v1.Loc.ID, note{Title: "b"})
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, v2.CreatedAt.After(v1.CreatedAt))
	active, ok, err := srv.Active(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, active.Loc.Version)
}

func TestService_RandomIDs(t *testing.T) {
	cfg := versionary.DefaultConfig()
	cfg.ID.Kind = "random"
	srv, err := versionary.New[note](versionary.WithConfig[note](cfg))
	if !assert.NoError(t, err) {
		return
	}
	v1, err := srv.Create(context.Background(), note{Title: "a"})
	assert.NoError(t, err)
	assert.Equal(t, uid.KindRandom, v1.Loc.ID.Kind())
	assert.Len(t, v1.Loc.ID.Code(), uid.RandomLength)
}

func TestService_FsStore(t *testing.T) {
	ctx := context.Background()
	cfg := versionary.DefaultConfig()
	cfg.Store = versionary.StoreConfig{Kind: versionary.StoreFs, BaseURL: t.TempDir()}
	srv, err := versionary.New[note](versionary.WithConfig[note](cfg))
	if !assert.NoError(t, err) {
		return
	}
	v1, err := srv.Create(ctx, note{Title: "a"})
	if !assert.NoError(t, err) {
		return
	}
	v2, err := srv.Update(ctx, v1.Loc.ID, note{Title: "b"})
	if !assert.NoError(t, err) {
		return
	}
	reopened, err := versionary.New[note](versionary.WithConfig[note](cfg))
	if !assert.NoError(t, err) {
		return
	}
	active, ok, err := reopened.Active(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, v2.Loc, active.Loc)
	assert.Equal(t, "b", active.Value.Title)
}

type findOnly struct {
	dao.Repository[*versioned.Record[note]]
}

func TestService_CurrentUnsupported(t *testing.T) {
	repo := findOnly{Repository: store.NewMemoryStore[*versioned.Record[note]]()}
	srv, err := versionary.New[note](versionary.WithRepository[note](repo))
	if !assert.NoError(t, err) {
		return
	}
	_, err = srv.Current(context.Background())
	assert.True(t, errors.Is(err, dao.ErrUnsupported))
}

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *versionary.Config)
		expectErr   bool
	}{
		{description: "default", mutate: func(c *versionary.Config) {}},
		{description: "fs without base url", mutate: func(c *versionary.Config) { c.Store.Kind = versionary.StoreFs }, expectErr: true},
		{description: "fs", mutate: func(c *versionary.Config) {
			c.Store.Kind = versionary.StoreFs
			c.Store.BaseURL = "mem://localhost/records"
		}},
		{description: "unknown store", mutate: func(c *versionary.Config) { c.Store.Kind = "sql" }, expectErr: true},
		{description: "unknown id kind", mutate: func(c *versionary.Config) { c.ID.Kind = "uuid" }, expectErr: true},
		{description: "tracing without name", mutate: func(c *versionary.Config) {
			c.Tracing.Enabled = true
			c.Tracing.ServiceName = ""
		}, expectErr: true},
	}
	for _, testCase := range testCases {
		cfg := versionary.DefaultConfig()
		testCase.mutate(cfg)
		err := cfg.Validate()
		assert.Equal(t, testCase.expectErr, err != nil, testCase.description)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	URL := filepath.Join(dir, "config.yaml")
	content := strings.Join([]string{
		"store:",
		"  kind: fs",
		"  baseURL: " + filepath.Join(dir, "records"),
		"id:",
		"  kind: random",
	}, "\n")
	if !assert.NoError(t, os.WriteFile(URL, []byte(content), 0o644)) {
		return
	}
	cfg, err := versionary.LoadConfig(context.Background(), URL)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, versionary.StoreFs, cfg.Store.Kind)
	assert.Equal(t, "random", cfg.ID.Kind)
	assert.Equal(t, "versionary", cfg.Tracing.ServiceName)

	_, err = versionary.LoadConfig(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestService_ChangeFeed(t *testing.T) {
	ctx := context.Background()
	queue := memory.NewQueue[event.Change](memory.DefaultConfig())
	srv, err := versionary.New[note](versionary.WithChangeQueue[note](queue))
	if !assert.NoError(t, err) {
		return
	}
	v1, err := srv.Create(ctx, note{Title: "a"})
	if !assert.NoError(t, err) {
		return
	}
	_, err = srv.Update(ctx, v1.Loc.ID, note{Title: "b"})
	assert.NoError(t, err)
	_, err = srv.Expire(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	_, err = srv.Delete(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.Equal(t, 4, queue.Size())

	var received []string
	done := make(chan struct{})
	listener, err := srv.Listen(func(change *event.Change) {
		received = append(received, string(change.Type)+" "+change.Locator.String())
		if len(received) == 4 {
			close(done)
		}
	})
	if !assert.NoError(t, err) {
		return
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("change feed timed out")
	}
	listener.Stop()
	v2 := v1.Loc.Increment()
	assert.Equal(t, []string{
		"created " + v1.Loc.String(),
		"updated " + v2.String(),
		"expired " + v2.String(),
		"deleted " + v2.String(),
	}, received)

	plain, err := versionary.New[note]()
	if !assert.NoError(t, err) {
		return
	}
	_, err = plain.Listen(func(*event.Change) {})
	assert.True(t, errors.Is(err, dao.ErrUnsupported))
}

type lostExpiry struct {
	*store.MemoryStore[*versioned.Record[note]]
}

func (r lostExpiry) Expire(context.Context, uid.UID, time.Time) (bool, error) {
	return false, nil
}

func TestService_ExpireNotApplied(t *testing.T) {
	ctx := context.Background()
	queue := memory.NewQueue[event.Change](memory.DefaultConfig())
	repo := lostExpiry{MemoryStore: store.NewMemoryStore[*versioned.Record[note]]()}
	srv, err := versionary.New[note](versionary.WithRepository[note](repo), versionary.WithChangeQueue[note](queue))
	if !assert.NoError(t, err) {
		return
	}
	v1, err := srv.Create(ctx, note{Title: "a"})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 1, queue.Size())

	_, err = srv.Expire(ctx, v1.Loc.ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))
	_, err = srv.Update(ctx, v1.Loc.ID, note{Title: "b"})
	assert.True(t, errors.Is(err, types.ErrNotFound))
	assert.Equal(t, 1, queue.Size())

	active, ok, err := srv.Active(ctx, v1.Loc.ID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, active.Loc.Version)
}

func TestService_StalledFeedDoesNotBlockWriters(t *testing.T) {
	ctx := context.Background()
	queue := memory.NewQueue[event.Change](memory.Config{QueueBuffer: 2})
	srv, err := versionary.New[note](versionary.WithChangeQueue[note](queue))
	if !assert.NoError(t, err) {
		return
	}
	a, err := srv.Create(ctx, note{Title: "a"})
	if !assert.NoError(t, err) {
		return
	}
	b, err := srv.Create(ctx, note{Title: "b"})
	if !assert.NoError(t, err) {
		return
	}

	updated := make(chan error, 1)
	go func() {
		_, err := srv.Update(ctx, a.Loc.ID, note{Title: "a2"})
		updated <- err
	}()
	assert.Eventually(t, func() bool {
		history, err := srv.History(ctx, a.Loc.ID)
		return err == nil && len(history) == 2
	}, time.Second, 5*time.Millisecond)

	expired := make(chan error, 1)
	go func() {
		timeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := srv.Expire(timeout, b.Loc.ID)
		expired <- err
	}()
	select {
	case err := <-expired:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("writer blocked by a stalled change feed")
	}
	_, ok, err := srv.Active(ctx, b.Loc.ID)
	assert.NoError(t, err)
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		message, err := queue.Consume(ctx)
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, message.Ack())
	}
	select {
	case err := <-updated:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("update did not complete after the feed drained")
	}
}
