package commands

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dastanaron/tabmarks/internal/browser"
	"github.com/dastanaron/tabmarks/internal/logging"
	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/parser"
	"github.com/dastanaron/tabmarks/internal/repository"
	"github.com/dastanaron/tabmarks/internal/service"
	"github.com/dastanaron/tabmarks/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func tree(base string) []models.BookmarkNode {
	return []models.BookmarkNode{{
		ID: models.RootID,
		Children: []models.BookmarkNode{{
			ID: models.BookmarkBarID, Title: "Bookmarks bar",
			Children: []models.BookmarkNode{
				{ID: "10", Title: "Alpha & Co", URL: base + "/alpha"},
				{ID: "11", Title: "Work", Children: []models.BookmarkNode{
					{ID: "12", Title: "Beta", URL: base + "/beta"},
					{ID: "13", Title: "Alpha again", URL: base + "/alpha"},
				}},
				{ID: "14", Title: "Empty", Children: []models.BookmarkNode{}},
			},
		}},
	}}
}

func newServices(api browser.BookmarkAPI, client *http.Client) (*service.BookmarkService, *service.TagService) {
	log := logging.Discard()
	tags := service.NewTagService(repository.NewMemoryStore(), client, log)
	return service.NewBookmarkService(api, tags, "", log), tags
}

func TestExportWrite(t *testing.T) {
	bookmarks, _ := newServices(browser.StaticAPI{Roots: tree("https://example.com")}, http.DefaultClient)

	var buf bytes.Buffer
	count, err := NewExportCommand(bookmarks, &buf).Write(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>")
	assert.Contains(t, out, `<A HREF="https://example.com/alpha">Alpha &amp; Co</A>`)
	assert.Contains(t, out, "<DT><H3>Work</H3>")
	assert.NotContains(t, out, "Empty")
	assert.NotContains(t, out, models.UncategorizedTitle)
}

func TestExportKeepsFolderNamedUncategorized(t *testing.T) {
	roots := []models.BookmarkNode{{
		ID: models.RootID,
		Children: []models.BookmarkNode{{
			ID: models.BookmarkBarID,
			Children: []models.BookmarkNode{
				{ID: "11", Title: models.UncategorizedTitle, Children: []models.BookmarkNode{
					{ID: "12", Title: "Beta", URL: "https://example.com/beta"},
				}},
			},
		}},
	}}
	bookmarks, _ := newServices(browser.StaticAPI{Roots: roots}, http.DefaultClient)

	var buf bytes.Buffer
	count, err := NewExportCommand(bookmarks, &buf).Write(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, buf.String(), "<DT><H3>"+models.UncategorizedTitle+"</H3>")
}

func TestExportRoundTrip(t *testing.T) {
	bookmarks, _ := newServices(browser.StaticAPI{Roots: tree("https://example.com")}, http.DefaultClient)
	path := filepath.Join(t.TempDir(), "bookmarks.html")

	var out bytes.Buffer
	require.NoError(t, NewExportCommand(bookmarks, &out).Execute(context.Background(), path))
	assert.Contains(t, out.String(), "Exported 3 bookmarks")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	roots, err := parser.ParseNetscape(f)
	require.NoError(t, err)

	folders, err := service.GroupRoots(roots, models.BookmarkBarID)
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, models.UncategorizedTitle, folders[0].Title)
	assert.Equal(t, "Work", folders[1].Title)
	assert.Len(t, folders[1].Bookmarks, 2)
}

func TestDoublesFind(t *testing.T) {
	bookmarks, _ := newServices(browser.StaticAPI{Roots: tree("https://example.com")}, http.DefaultClient)

	var out bytes.Buffer
	cmd := NewDoublesCommand(bookmarks, &out)
	dups, err := cmd.Find(context.Background())
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "13", dups[0].Bookmark.ID)
	assert.Equal(t, "10", dups[0].KeptID)

	require.NoError(t, cmd.Execute(context.Background()))
	assert.Contains(t, out.String(), "Found 1 duplicate bookmark(s).")
}

func TestTagsCommandAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><head><title>Page %s</title></head></html>", strings.TrimPrefix(r.URL.Path, "/"))
	}))
	defer srv.Close()

	bookmarks, tags := newServices(browser.StaticAPI{Roots: tree(srv.URL)}, srv.Client())

	var out bytes.Buffer
	require.NoError(t, NewTagsCommand(bookmarks, tags, 2, &out).Execute(context.Background(), ""))
	assert.Contains(t, out.String(), "Tagged 3 bookmarks.")

	all, err := tags.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"page", "alpha"}, all["10"])
	assert.Equal(t, []string{"page", "beta"}, all["12"])
	assert.Equal(t, []string{"page", "alpha"}, all["13"])
}

func TestTagsCommandOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<title>Alpha Beta</title>")
	}))
	defer srv.Close()

	bookmarks, tags := newServices(browser.StaticAPI{Roots: tree(srv.URL)}, srv.Client())
	cmd := NewTagsCommand(bookmarks, tags, 0, &bytes.Buffer{})

	require.NoError(t, cmd.Execute(context.Background(), "12"))
	all, err := tags.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, []string{"alpha", "beta"}, all["12"])

	assert.Error(t, cmd.Execute(context.Background(), "404"))
}

func TestSettingsCommand(t *testing.T) {
	kv := repository.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), repository.KeyAppSettings, []byte(`{"theme":"dark"}`)))

	var out bytes.Buffer
	store := settings.NewStore(kv, logging.Discard())
	require.NoError(t, NewSettingsCommand(store, &out).Execute(context.Background()))

	var got models.AppSettings
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, models.Theme("dark"), got.Theme)
	assert.Equal(t, models.WidthAuto, got.Width)
	assert.False(t, got.Background.Enabled)
}
