package messaging

import (
	"context"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/service"
	"github.com/dastanaron/tabmarks/internal/settings"

	"github.com/sirupsen/logrus"
)

// Background answers page requests the way the extension background
// script does
type Background struct {
	bookmarks *service.BookmarkService
	tags      *service.TagService
	settings  *settings.Store
	picker    *settings.Picker
	log       logrus.FieldLogger
}

// NewBackground creates the request handlers
func NewBackground(
	bookmarks *service.BookmarkService,
	tags *service.TagService,
	store *settings.Store,
	picker *settings.Picker,
	log logrus.FieldLogger,
) *Background {
	return &Background{
		bookmarks: bookmarks,
		tags:      tags,
		settings:  store,
		picker:    picker,
		log:       log.WithField("component", "background"),
	}
}

// Register installs all handlers on d
func (b *Background) Register(d *Dispatcher) {
	d.Handle(ActionGetBookmarks, b.getBookmarks)
	d.Handle(ActionGenerateTags, b.generateTags)
	d.Handle(ActionGetAllTags, b.getAllTags)
	d.Handle(ActionGetSettings, b.getSettings)
	d.Handle(ActionSaveSettings, b.saveSettings)
	d.Handle(ActionRefreshBackground, b.refreshBackground)
}

// NewDispatcherFor is a dispatcher with all Background handlers registered
func NewDispatcherFor(b *Background, log logrus.FieldLogger) *Dispatcher {
	d := NewDispatcher(log)
	b.Register(d)
	return d
}

func (b *Background) getBookmarks(ctx context.Context, req Request) Response {
	roots, err := b.bookmarks.Tree(ctx)
	if err != nil {
		b.log.WithError(err).Error("Error processing bookmarks")
		return Response{
			Bookmarks:         []models.BookmarkNode{},
			BookmarksWithTags: []models.BookmarkWithTags{},
		}
	}

	withTags := b.bookmarks.WithTags(ctx, roots)
	b.log.WithField("count", len(withTags)).Debug("Processed bookmarks with tags")
	return Response{Bookmarks: roots, BookmarksWithTags: withTags}
}

func (b *Background) generateTags(ctx context.Context, req Request) Response {
	if req.URL == "" || req.BookmarkID == "" {
		b.log.WithField("request", req).Warn("Missing parameters")
		return ErrorResponse(ErrMissingParameters)
	}

	tags, err := b.tags.Generate(ctx, req.URL, req.BookmarkID)
	if err != nil {
		return ErrorResponse(err.Error())
	}
	return Response{Tags: tags}
}

func (b *Background) getAllTags(ctx context.Context, req Request) Response {
	tags, err := b.tags.Unique(ctx)
	if err != nil {
		b.log.WithError(err).Error("Error getting all tags")
		return Response{Tags: []string{}}
	}
	return Response{Tags: tags}
}

func (b *Background) getSettings(ctx context.Context, req Request) Response {
	s := b.settings.Load(ctx)
	return Response{Settings: &s}
}

func (b *Background) saveSettings(ctx context.Context, req Request) Response {
	if req.Settings == nil {
		return ErrorResponse(ErrMissingParameters)
	}
	if err := b.settings.Save(ctx, *req.Settings); err != nil {
		b.log.WithError(err).Error("Error saving settings")
		return ErrorResponse(err.Error())
	}
	return Response{Settings: req.Settings}
}

// refreshBackground picks a new background for the settings the page holds.
// The result is not persisted until the page saves its settings.
func (b *Background) refreshBackground(ctx context.Context, req Request) Response {
	var current models.AppSettings
	if req.Settings != nil {
		current = *req.Settings
	} else {
		current = b.settings.Load(ctx)
	}

	next, err := b.picker.Refresh(ctx, current)
	if err != nil {
		return Response{Settings: &current, Error: err.Error()}
	}
	return Response{Settings: &next}
}
