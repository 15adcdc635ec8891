package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func link(id, title string) models.BookmarkNode {
	return models.BookmarkNode{ID: id, Title: title, URL: "https://" + title + ".example/"}
}

func folder(id, title string, children ...models.BookmarkNode) models.BookmarkNode {
	if children == nil {
		children = []models.BookmarkNode{}
	}
	return models.BookmarkNode{ID: id, Title: title, Children: children}
}

func ids(nodes []models.BookmarkNode) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func sampleTree() []models.BookmarkNode {
	return []models.BookmarkNode{
		folder("0", "",
			folder("1", "Bar",
				link("10", "go"),
				folder("11", "Work",
					link("12", "github"),
					folder("13", "Deep", link("14", "pkg")),
					link("15", "jira"),
				),
				folder("16", "Empty", folder("17", "AlsoEmpty")),
				link("18", "news"),
			),
			folder("2", "Other", link("20", "misc")),
		),
	}
}

func TestFlattenPreOrder(t *testing.T) {
	flat := Flatten(sampleTree())
	assert.Equal(t, []string{"10", "12", "14", "15", "18", "20"}, ids(flat))
}

func TestFlattenIdempotent(t *testing.T) {
	flat := Flatten(sampleTree())
	assert.Equal(t, flat, Flatten(flat))
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
	assert.Empty(t, Flatten([]models.BookmarkNode{{ID: "0"}}))
}

func TestFlattenDeepTree(t *testing.T) {
	deep := link("leaf", "leaf")
	for i := 0; i < 100000; i++ {
		deep = folder(fmt.Sprint(i), "f", deep)
	}
	flat := Flatten([]models.BookmarkNode{deep})
	require.Len(t, flat, 1)
	assert.Equal(t, "leaf", flat[0].ID)
}

func TestFindBookmarkBar(t *testing.T) {
	bar, err := FindBookmarkBar(sampleTree(), models.BookmarkBarID)
	require.NoError(t, err)
	assert.Equal(t, "Bar", bar.Title)

	var treeErr *models.TreeError
	_, err = FindBookmarkBar(nil, models.BookmarkBarID)
	assert.True(t, errors.As(err, &treeErr))
	_, err = FindBookmarkBar(sampleTree(), "99")
	assert.True(t, errors.As(err, &treeErr))
	_, err = FindBookmarkBar([]models.BookmarkNode{{ID: "0"}}, models.BookmarkBarID)
	assert.True(t, errors.As(err, &treeErr))
}

func TestGroupBookmarkBar(t *testing.T) {
	bar, err := FindBookmarkBar(sampleTree(), models.BookmarkBarID)
	require.NoError(t, err)

	folders := GroupBookmarkBar(*bar)
	require.Len(t, folders, 2)

	assert.Equal(t, models.UncategorizedTitle, folders[0].Title)
	assert.True(t, folders[0].Uncategorized)
	assert.Equal(t, []string{"10", "18"}, ids(folders[0].Bookmarks))
	assert.False(t, folders[1].Uncategorized)

	// nested folders are merged into their top-level folder
	assert.Equal(t, "Work", folders[1].Title)
	assert.Equal(t, []string{"12", "14", "15"}, ids(folders[1].Bookmarks))
}

func TestGroupBookmarkBarPresenceRules(t *testing.T) {
	tests := []struct {
		name   string
		bar    models.BookmarkNode
		titles []string
	}{
		{
			name:   "only folders",
			bar:    folder("1", "Bar", folder("2", "A", link("3", "a"))),
			titles: []string{"A"},
		},
		{
			name:   "only links",
			bar:    folder("1", "Bar", link("2", "a"), link("3", "b")),
			titles: []string{models.UncategorizedTitle},
		},
		{
			name:   "empty folder omitted",
			bar:    folder("1", "Bar", folder("2", "A"), folder("3", "B", link("4", "b"))),
			titles: []string{"B"},
		},
		{
			name:   "folder order kept",
			bar:    folder("1", "Bar", folder("2", "Z", link("3", "z")), link("4", "x"), folder("5", "A", link("6", "a"))),
			titles: []string{models.UncategorizedTitle, "Z", "A"},
		},
		{
			name:   "empty bar",
			bar:    folder("1", "Bar"),
			titles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			titles := []string{}
			for _, f := range GroupBookmarkBar(tt.bar) {
				titles = append(titles, f.Title)
				assert.NotEmpty(t, f.Bookmarks)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}
