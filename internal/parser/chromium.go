package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dastanaron/tabmarks/internal/models"
)

// chromiumFile is the on-disk layout of a Chromium profile "Bookmarks" file
type chromiumFile struct {
	Roots struct {
		BookmarkBar *chromiumNode `json:"bookmark_bar"`
		Other       *chromiumNode `json:"other"`
		Synced      *chromiumNode `json:"synced"`
	} `json:"roots"`
}

type chromiumNode struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"` // "url" or "folder"
	URL      string         `json:"url"`
	Children []chromiumNode `json:"children"`
}

// ParseChromium reads a Chromium "Bookmarks" JSON file into a tree shaped
// like the extension bookmarks API returns it: root "0" holding the bar "1",
// other bookmarks "2" and mobile bookmarks "3".
func ParseChromium(r io.Reader) ([]models.BookmarkNode, error) {
	var f chromiumFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode chromium bookmarks: %w", err)
	}
	if f.Roots.BookmarkBar == nil {
		return nil, fmt.Errorf("chromium bookmarks: missing bookmark_bar root")
	}

	root := models.BookmarkNode{ID: models.RootID, Children: []models.BookmarkNode{}}
	roots := []struct {
		node  *chromiumNode
		id    string
		title string
	}{
		{f.Roots.BookmarkBar, models.BookmarkBarID, BookmarkBarTitle},
		{f.Roots.Other, models.OtherID, OtherTitle},
		{f.Roots.Synced, models.SyncedID, SyncedTitle},
	}
	for _, r := range roots {
		if r.node == nil {
			continue
		}
		n := convertChromium(*r.node, models.RootID)
		// the browser numbers its roots itself; the API ids are fixed
		n.ID = r.id
		if n.Title == "" {
			n.Title = r.title
		}
		for i := range n.Children {
			n.Children[i].ParentID = r.id
		}
		root.Children = append(root.Children, n)
	}
	return []models.BookmarkNode{root}, nil
}

func convertChromium(c chromiumNode, parentID string) models.BookmarkNode {
	n := models.BookmarkNode{ID: c.ID, ParentID: parentID, Title: c.Name}
	if c.Type == "url" {
		n.URL = c.URL
		return n
	}
	n.Children = make([]models.BookmarkNode, 0, len(c.Children))
	for _, child := range c.Children {
		n.Children = append(n.Children, convertChromium(child, c.ID))
	}
	return n
}
