package service

import (
	"github.com/dastanaron/tabmarks/internal/models"
)

// Flatten returns every link of the given trees in depth-first pre-order.
// Folders contribute only their descendants. The walk uses an explicit stack
// so deep trees cannot exhaust the goroutine stack.
func Flatten(nodes []models.BookmarkNode) []models.BookmarkNode {
	out := make([]models.BookmarkNode, 0, len(nodes))

	stack := make([]*models.BookmarkNode, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, &nodes[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.URL != "" {
			out = append(out, *n)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, &n.Children[i])
		}
	}
	return out
}

// FindBookmarkBar returns the child of the first root whose id is barID
func FindBookmarkBar(roots []models.BookmarkNode, barID string) (*models.BookmarkNode, error) {
	if len(roots) == 0 {
		return nil, &models.TreeError{Reason: "empty tree"}
	}
	root := roots[0]
	if root.Children == nil {
		return nil, &models.TreeError{Reason: "root has no children"}
	}
	for i := range root.Children {
		if root.Children[i].ID == barID {
			return &root.Children[i], nil
		}
	}
	return nil, &models.TreeError{Reason: "bookmark bar " + barID + " not found"}
}

// GroupBookmarkBar splits the bar into folders. Links placed directly on the
// bar form the Uncategorized folder, which comes first. Every direct
// sub-folder becomes one folder holding all links anywhere beneath it;
// deeper folder structure is merged into it. Empty folders are dropped.
func GroupBookmarkBar(bar models.BookmarkNode) []models.Folder {
	var uncategorized []models.BookmarkNode
	var folders []models.Folder

	for _, item := range bar.Children {
		switch {
		case item.URL != "":
			uncategorized = append(uncategorized, item)
		case item.Children != nil:
			bookmarks := Flatten(item.Children)
			if len(bookmarks) > 0 {
				folders = append(folders, models.Folder{Title: item.Title, Bookmarks: bookmarks})
			}
		}
	}

	if len(uncategorized) == 0 {
		return folders
	}
	return append([]models.Folder{{Title: models.UncategorizedTitle, Bookmarks: uncategorized, Uncategorized: true}}, folders...)
}
