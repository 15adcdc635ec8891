package ui

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dastanaron/tabmarks/internal/browser"
	"github.com/dastanaron/tabmarks/internal/logging"
	"github.com/dastanaron/tabmarks/internal/messaging"
	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/render"
	"github.com/dastanaron/tabmarks/internal/repository"
	"github.com/dastanaron/tabmarks/internal/service"
	"github.com/dastanaron/tabmarks/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLoader struct{}

func (noopLoader) Load(ctx context.Context, url string) error { return nil }

func testTree() []models.BookmarkNode {
	return []models.BookmarkNode{{
		ID: models.RootID,
		Children: []models.BookmarkNode{{
			ID: models.BookmarkBarID, Title: "Bar",
			Children: []models.BookmarkNode{
				{ID: "10", Title: "Foo News", URL: "https://news.example/"},
				{ID: "11", Title: "Work", Children: []models.BookmarkNode{
					{ID: "12", Title: "Bar", URL: "https://bar.example/"},
					{ID: "13", Title: "Foobar", URL: "https://foobar.example/"},
				}},
			},
		}},
	}}
}

func newDispatcher(t *testing.T, api browser.BookmarkAPI, tags models.TagSet) *messaging.Dispatcher {
	t.Helper()
	log := logging.Discard()
	tagSvc := service.NewTagService(repository.NewMemoryStore(), http.DefaultClient, log)
	for id, ts := range tags {
		require.NoError(t, tagSvc.Save(context.Background(), id, ts))
	}
	store := settings.NewStore(repository.NewMemoryStore(), log)
	picker := settings.NewPicker(noopLoader{}, log)
	bg := messaging.NewBackground(service.NewBookmarkService(api, tagSvc, "", log), tagSvc, store, picker, log)
	d := messaging.NewDispatcherFor(bg, log)
	t.Cleanup(d.Wait)
	return d
}

func TestLoadPage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d := newDispatcher(t, browser.StaticAPI{Roots: testTree()}, models.TagSet{"12": {"drinks"}})
	p := loadPage(ctx, d, models.BookmarkBarID)

	require.Empty(t, p.Error)
	require.Len(t, p.Sections, 2)
	assert.Equal(t, models.UncategorizedTitle, p.Sections[0].Title)
	assert.Equal(t, "Work", p.Sections[1].Title)
	assert.Equal(t, []string{"drinks"}, p.Sections[1].Links[0].Tags)
	assert.True(t, p.HasClass("theme-original"))
}

func TestLoadPageTreeError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d := newDispatcher(t, browser.StaticAPI{Err: errors.New("no file")}, nil)
	p := loadPage(ctx, d, models.BookmarkBarID)

	assert.Equal(t, render.LoadErrorMessage, p.Error)
	assert.Empty(t, p.Sections)
}

func TestModelFilterAndSelection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d := newDispatcher(t, browser.StaticAPI{Roots: testTree()}, nil)
	m := newModel(loadPage(ctx, d, models.BookmarkBarID))

	assert.Equal(t, []int{0, 1}, m.sections())
	assert.Len(t, m.links(), 3)

	m.selected = 1
	assert.Len(t, m.links(), 2)

	m.filter("foo")
	assert.Equal(t, []int{0, 1}, m.sections())
	require.Len(t, m.links(), 1)
	assert.Equal(t, "Foobar", m.links()[0].Title)

	// the selected section disappears, the view falls back to all sections
	m.filter("news")
	assert.Equal(t, []int{0}, m.sections())
	assert.Equal(t, allSections, m.selected)
	require.Len(t, m.links(), 1)
	assert.Equal(t, "Foo News", m.links()[0].Title)

	m.filter("")
	assert.Len(t, m.links(), 3)
}

func TestModelSetTags(t *testing.T) {
	m := newModel(render.BuildPage([]models.Folder{{
		Title:     "Work",
		Bookmarks: []models.BookmarkNode{{ID: "12", Title: "Bar", URL: "https://bar.example/"}},
	}}, nil, models.DefaultSettings()))

	m.setTags("12", []string{"alpha", "beta"})
	assert.Equal(t, []string{"alpha", "beta"}, m.links()[0].Tags)
}
