package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/versionary/model/locator"
	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
	"github.com/viant/versionary/model/versioned"
	"github.com/viant/versionary/service/dao"
)

const extension = ".json"

// Service implements a file-system backed repository of versioned records.
// The history of every id is kept as one JSON document under the base URL;
// any afs scheme (file, mem, cloud storage) can be used.
type Service[P any] struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ dao.Repository[*versioned.Record[string]] = (*Service[string])(nil)
var _ dao.ActiveLister[*versioned.Record[string]] = (*Service[string])(nil)

// Save appends a new version to its id history
func (s *Service[P]) Save(ctx context.Context, record *versioned.Record[P]) (*versioned.Record[P], error) {
	if record == nil {
		return nil, dao.ErrNilEntity
	}
	if err := checkID(record.Loc.ID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load(ctx, record.Loc.ID)
	if err != nil {
		return nil, err
	}
	if err = dao.ValidateNext(history, record); err != nil {
		return nil, err
	}
	if err = s.store(ctx, record.Loc.ID, append(history, record)); err != nil {
		return nil, err
	}
	return record, nil
}

// Expire stamps the active version of id as expired at timestamp
func (s *Service[P]) Expire(ctx context.Context, id uid.UID, timestamp time.Time) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load(ctx, id)
	if err != nil {
		return false, err
	}
	active, ok := versioned.FindActive(id, history)
	if !ok {
		return false, nil
	}
	if err = dao.ValidateExpiry(active, timestamp); err != nil {
		return false, err
	}
	for i := range history {
		if history[i].Loc.Equal(active.Loc) {
			history[i] = active.WithExpired(timestamp)
		}
	}
	if err = s.store(ctx, id, history); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the history file of id
func (s *Service[P]) Delete(ctx context.Context, id uid.UID) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.historyPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return false, fmt.Errorf("failed to check if history exists: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := s.fs.Delete(ctx, filePath); err != nil {
		return false, fmt.Errorf("failed to delete history file: %w", err)
	}
	return true, nil
}

func (s *Service[P]) FindAll(ctx context.Context, id uid.UID) ([]*versioned.Record[P], error) {
	return s.FindVersions(ctx, id)
}

func (s *Service[P]) FindVersions(ctx context.Context, id uid.UID) ([]*versioned.Record[P], error) {
	history, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	ret := versioned.FindAllVersions(id, history)
	if ret == nil {
		ret = []*versioned.Record[P]{}
	}
	return ret, nil
}

func (s *Service[P]) FindActive(ctx context.Context, id uid.UID) (*versioned.Record[P], bool, error) {
	history, err := s.read(ctx, id)
	if err != nil {
		return nil, false, err
	}
	ret, ok := versioned.FindActive(id, history)
	return ret, ok, nil
}

func (s *Service[P]) FindAt(ctx context.Context, id uid.UID, timestamp time.Time) (*versioned.Record[P], bool, error) {
	history, err := s.read(ctx, id)
	if err != nil {
		return nil, false, err
	}
	ret, ok := versioned.FindAt(id, timestamp, history)
	return ret, ok, nil
}

func (s *Service[P]) Find(ctx context.Context, loc locator.Locator) (*versioned.Record[P], error) {
	history, err := s.read(ctx, loc.ID)
	if err != nil {
		return nil, err
	}
	for _, record := range history {
		if record.Loc.Equal(loc) {
			return record, nil
		}
	}
	return nil, types.NewNotFoundError("locator", loc)
}

// AllActive scans every history file and returns the active versions.
// Unreadable files are logged and skipped.
func (s *Service[P]) AllActive(ctx context.Context) ([]*versioned.Record[P], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list history files: %w", err)
	}

	var ret []*versioned.Record[P]
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), extension) {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Printf("error reading history file %s: %v", object.URL(), err)
			continue
		}
		var history []*versioned.Record[P]
		if err := json.Unmarshal(data, &history); err != nil {
			log.Printf("error unmarshaling history from %s: %v", object.URL(), err)
			continue
		}
		ret = append(ret, versioned.AllActive(history)...)
	}
	return ret, nil
}

func (s *Service[P]) read(ctx context.Context, id uid.UID) ([]*versioned.Record[P], error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, id)
}

// load returns the stored history of id, or nil when there is none.
func (s *Service[P]) load(ctx context.Context, id uid.UID) ([]*versioned.Record[P], error) {
	filePath := s.historyPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if history exists: %w", err)
	}
	if !exists {
		return nil, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var history []*versioned.Record[P]
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history of %v: %w", id, err)
	}
	return history, nil
}

func (s *Service[P]) store(ctx context.Context, id uid.UID, history []*versioned.Record[P]) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal history of %v: %w", id, err)
	}
	filePath := s.historyPath(id)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save history to file %s: %w", filePath, err)
	}
	return nil
}

// checkID accepts only ids that map to a file name inside the base URL and
// that decode back to themselves with uid.Parse.
func checkID(id uid.UID) error {
	if id == nil {
		return dao.ErrInvalidID
	}
	code := id.Code()
	if id.Kind() == uid.KindRandom && !uid.ValidRandom(code) {
		return fmt.Errorf("%w: %q is not a %v code", dao.ErrInvalidID, code, uid.KindRandom)
	}
	parsed, err := uid.Parse(code)
	if err != nil {
		return fmt.Errorf("%w: %v", dao.ErrInvalidID, err)
	}
	if !uid.Equal(parsed, id) || parsed.Kind() != id.Kind() {
		return fmt.Errorf("%w: %q does not round trip", dao.ErrInvalidID, code)
	}
	return nil
}

func (s *Service[P]) historyPath(id uid.UID) string {
	return url.Join(s.baseURL, id.Code()+extension)
}

// New creates a file-system backed repository rooted at baseURL
func New[P any](baseURL string) (*Service[P], error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	fs := afs.New()

	ctx := context.Background()
	exists, _ := fs.Exists(ctx, baseURL)
	if !exists {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}

	if url.Scheme(baseURL, "") == "" {
		baseURL = url.Normalize(path.Clean(baseURL), file.Scheme)
	}

	return &Service[P]{
		baseURL: baseURL,
		fs:      fs,
	}, nil
}
