package service

import (
	"context"

	"github.com/dastanaron/tabmarks/internal/browser"
	"github.com/dastanaron/tabmarks/internal/models"

	"github.com/sirupsen/logrus"
)

// BookmarkService provides business logic for bookmarks
type BookmarkService struct {
	api   browser.BookmarkAPI
	tags  *TagService
	barID string
	log   logrus.FieldLogger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(api browser.BookmarkAPI, tags *TagService, barID string, log logrus.FieldLogger) *BookmarkService {
	if barID == "" {
		barID = models.BookmarkBarID
	}
	return &BookmarkService{
		api:   api,
		tags:  tags,
		barID: barID,
		log:   log.WithField("component", "bookmarks"),
	}
}

// Tree returns the raw bookmark tree
func (s *BookmarkService) Tree(ctx context.Context) ([]models.BookmarkNode, error) {
	return s.api.GetTree(ctx)
}

// WithTags flattens the tree and attaches stored tags to every link. A tag
// store failure leaves every link with no tags.
func (s *BookmarkService) WithTags(ctx context.Context, roots []models.BookmarkNode) []models.BookmarkWithTags {
	flat := Flatten(roots)

	all, err := s.tags.All(ctx)
	if err != nil {
		s.log.WithError(err).Warn("Reading tags failed")
	}

	out := make([]models.BookmarkWithTags, 0, len(flat))
	for _, b := range flat {
		tags := all[b.ID]
		if tags == nil {
			tags = []string{}
		}
		out = append(out, models.BookmarkWithTags{BookmarkNode: b, Tags: tags})
	}
	return out
}

// Folders returns the grouped bookmark bar
func (s *BookmarkService) Folders(ctx context.Context) ([]models.Folder, error) {
	roots, err := s.api.GetTree(ctx)
	if err != nil {
		return nil, err
	}
	return GroupRoots(roots, s.barID)
}

// GroupRoots locates the bookmark bar in roots and groups it
func GroupRoots(roots []models.BookmarkNode, barID string) ([]models.Folder, error) {
	bar, err := FindBookmarkBar(roots, barID)
	if err != nil {
		return nil, err
	}
	return GroupBookmarkBar(*bar), nil
}

// ListAll returns all links of the tree
func (s *BookmarkService) ListAll(ctx context.Context) ([]models.BookmarkNode, error) {
	roots, err := s.api.GetTree(ctx)
	if err != nil {
		return nil, err
	}
	return Flatten(roots), nil
}
