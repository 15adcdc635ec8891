package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/repository"

	"github.com/sirupsen/logrus"
)

// maxPageSize bounds how much of a page is read for tag extraction
const maxPageSize = 2 << 20

// TagService generates and stores bookmark tags
type TagService struct {
	store  repository.KVStore
	client *http.Client
	log    logrus.FieldLogger

	// mu serializes read-modify-write of the bookmarkTags entry
	mu sync.Mutex
}

// NewTagService creates a new tag service over the local store
func NewTagService(store repository.KVStore, client *http.Client, log logrus.FieldLogger) *TagService {
	if client == nil {
		client = http.DefaultClient
	}
	return &TagService{
		store:  store,
		client: client,
		log:    log.WithField("component", "tags"),
	}
}

// Extract fetches url and returns its keywords
func (s *TagService) Extract(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", "tabmarks/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &models.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, &models.FetchError{URL: url, Err: err}
	}
	return Keywords(KeyText(string(body)), models.MaxTags), nil
}

// Generate extracts tags for the bookmark and replaces its stored tags.
// Extraction failures are logged and produce an empty tag list; only a
// storage failure is returned.
func (s *TagService) Generate(ctx context.Context, url, bookmarkID string) ([]string, error) {
	log := s.log.WithFields(logrus.Fields{"url": url, "bookmark_id": bookmarkID})

	tags, err := s.Extract(ctx, url)
	if err != nil {
		log.WithError(err).Warn("Tag extraction failed")
		tags = []string{}
	}

	if err := s.Save(ctx, bookmarkID, tags); err != nil {
		log.WithError(err).Error("Saving tags failed")
		return nil, err
	}
	log.WithField("tags", tags).Debug("Generated tags")
	return tags, nil
}

// Save replaces the tags stored for one bookmark
func (s *TagService) Save(ctx context.Context, bookmarkID string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.All(ctx)
	if err != nil {
		return err
	}
	all[bookmarkID] = tags

	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	return s.store.Set(ctx, repository.KeyBookmarkTags, data)
}

// Tags returns the stored tags of one bookmark
func (s *TagService) Tags(ctx context.Context, bookmarkID string) ([]string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return []string{}, err
	}
	if tags, ok := all[bookmarkID]; ok {
		return tags, nil
	}
	return []string{}, nil
}

// All returns every stored tag list keyed by bookmark id
func (s *TagService) All(ctx context.Context) (models.TagSet, error) {
	data, ok, err := s.store.Get(ctx, repository.KeyBookmarkTags)
	if err != nil {
		return models.TagSet{}, err
	}
	set := models.TagSet{}
	if !ok {
		return set, nil
	}
	if err := json.Unmarshal(data, &set); err != nil {
		return models.TagSet{}, &models.StorageError{Op: "decode", Key: repository.KeyBookmarkTags, Err: err}
	}
	return set, nil
}

// Unique returns the distinct non-empty tags across all bookmarks, ordered
// by bookmark id and then by tag position. Numeric ids compare as numbers
// and come before any other id.
func (s *TagService) Unique(ctx context.Context) ([]string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return []string{}, err
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return lessID(ids[i], ids[j])
	})

	seen := make(map[string]struct{})
	unique := []string{}
	for _, id := range ids {
		for _, tag := range all[id] {
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			unique = append(unique, tag)
		}
	}
	return unique, nil
}

// lessID orders integer ids numerically ahead of all other ids, which
// compare as strings
func lessID(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
