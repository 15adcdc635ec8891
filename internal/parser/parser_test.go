package parser

import (
	"strings"
	"testing"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netscapeExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks bar</H3>
    <DL><p>
        <DT><A HREF="https://go.dev/">Go</A>
        <DT><H3>Work</H3>
        <DL><p>
            <DT><A HREF="https://github.com/">GitHub</A>
            <DT><H3>Deep</H3>
            <DL><p>
                <DT><A HREF="https://pkg.go.dev/">Packages</A>
            </DL><p>
        </DL><p>
        <DT><A HREF="https://news.ycombinator.com/">HN</A>
    </DL><p>
    <DT><A HREF="https://example.com/">Loose</A>
</DL><p>
`

func TestParseNetscapeToolbar(t *testing.T) {
	roots, err := ParseNetscape(strings.NewReader(netscapeExport))
	require.NoError(t, err)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, models.RootID, root.ID)
	require.Len(t, root.Children, 2)

	bar := root.Children[0]
	assert.Equal(t, models.BookmarkBarID, bar.ID)
	require.Len(t, bar.Children, 3)
	assert.Equal(t, "Go", bar.Children[0].Title)
	assert.Equal(t, "https://go.dev/", bar.Children[0].URL)
	assert.Equal(t, models.BookmarkBarID, bar.Children[0].ParentID)

	work := bar.Children[1]
	assert.Equal(t, "Work", work.Title)
	assert.True(t, work.IsFolder())
	require.Len(t, work.Children, 2)
	assert.Equal(t, "GitHub", work.Children[0].Title)
	assert.Equal(t, "Deep", work.Children[1].Title)
	require.Len(t, work.Children[1].Children, 1)
	assert.Equal(t, work.ID, work.Children[0].ParentID)

	assert.Equal(t, "HN", bar.Children[2].Title)

	other := root.Children[1]
	assert.Equal(t, models.OtherID, other.ID)
	require.Len(t, other.Children, 1)
	assert.Equal(t, "Loose", other.Children[0].Title)
}

func TestParseNetscapeWithoutToolbar(t *testing.T) {
	doc := `<DL><p>
<DT><A HREF="https://a.example/">A</A>
<DT><H3>Folder</H3>
<DL><p><DT><A HREF="https://b.example/">B</A></DL><p>
</DL>`
	roots, err := ParseNetscape(strings.NewReader(doc))
	require.NoError(t, err)

	bar := roots[0].Children[0]
	require.Len(t, bar.Children, 2)
	assert.Equal(t, "A", bar.Children[0].Title)
	assert.Equal(t, "Folder", bar.Children[1].Title)
	assert.Empty(t, roots[0].Children[1].Children)
}

func TestParseNetscapeNestedToolbar(t *testing.T) {
	doc := `<DL><p>
<DT><H3>Outer</H3>
<DL><p>
    <DT><H3 PERSONAL_TOOLBAR_FOLDER="true">Bar</H3>
    <DL><p><DT><A HREF="https://bar.example/">On bar</A></DL><p>
    <DT><A HREF="https://outer.example/">In outer</A>
</DL><p>
</DL>`
	roots, err := ParseNetscape(strings.NewReader(doc))
	require.NoError(t, err)

	bar := roots[0].Children[0]
	require.Len(t, bar.Children, 1)
	assert.Equal(t, "On bar", bar.Children[0].Title)
	assert.Equal(t, models.BookmarkBarID, bar.Children[0].ParentID)

	other := roots[0].Children[1]
	require.Len(t, other.Children, 1)
	outer := other.Children[0]
	assert.Equal(t, "Outer", outer.Title)
	require.Len(t, outer.Children, 1)
	assert.Equal(t, "In outer", outer.Children[0].Title)

	assert.Equal(t, 1, countLinks(roots, "https://bar.example/"))
}

func countLinks(nodes []models.BookmarkNode, url string) int {
	n := 0
	for _, node := range nodes {
		if node.URL == url {
			n++
		}
		n += countLinks(node.Children, url)
	}
	return n
}

const chromiumJSON = `{
  "checksum": "x",
  "roots": {
    "bookmark_bar": {
      "id": "1", "name": "Bookmarks bar", "type": "folder",
      "children": [
        {"id": "5", "name": "Go", "type": "url", "url": "https://go.dev/"},
        {"id": "6", "name": "Work", "type": "folder", "children": [
          {"id": "7", "name": "GitHub", "type": "url", "url": "https://github.com/"}
        ]},
        {"id": "8", "name": "Empty", "type": "folder"}
      ]
    },
    "other": {"id": "2", "name": "Other bookmarks", "type": "folder", "children": []},
    "synced": {"id": "3", "name": "", "type": "folder", "children": []}
  },
  "version": 1
}`

func TestParseChromium(t *testing.T) {
	roots, err := ParseChromium(strings.NewReader(chromiumJSON))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 3)

	bar := roots[0].Children[0]
	assert.Equal(t, models.BookmarkBarID, bar.ID)
	require.Len(t, bar.Children, 3)
	assert.True(t, bar.Children[0].IsLink())
	assert.Equal(t, "7", bar.Children[1].Children[0].ID)
	assert.Equal(t, "6", bar.Children[1].Children[0].ParentID)
	assert.True(t, bar.Children[2].IsFolder())
	assert.Empty(t, bar.Children[2].Children)

	assert.Equal(t, SyncedTitle, roots[0].Children[2].Title)
}

func TestParseChromiumErrors(t *testing.T) {
	_, err := ParseChromium(strings.NewReader(`{not json`))
	assert.Error(t, err)

	_, err = ParseChromium(strings.NewReader(`{"roots": {}}`))
	assert.Error(t, err)
}
