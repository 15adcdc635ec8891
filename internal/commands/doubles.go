package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/service"
)

// Duplicate is a bookmark whose URL was already seen earlier in the tree
type Duplicate struct {
	Bookmark models.BookmarkNode
	KeptID   string
}

// DoublesCommand reports bookmarks that share a URL. The bookmark file
// belongs to the browser, so duplicates are listed, not removed.
type DoublesCommand struct {
	bookmarkSvc *service.BookmarkService
	out         io.Writer
}

// NewDoublesCommand creates a new duplicates command
func NewDoublesCommand(bookmarkSvc *service.BookmarkService, out io.Writer) *DoublesCommand {
	return &DoublesCommand{bookmarkSvc: bookmarkSvc, out: out}
}

// Find returns every bookmark after the first one with the same URL
func (c *DoublesCommand) Find(ctx context.Context) ([]Duplicate, error) {
	allBookmarks, err := c.bookmarkSvc.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	seenURLs := make(map[string]string) // URL -> ID of the first bookmark
	var duplicates []Duplicate

	for _, bookmark := range allBookmarks {
		if existingID, exists := seenURLs[bookmark.URL]; exists {
			duplicates = append(duplicates, Duplicate{Bookmark: bookmark, KeptID: existingID})
		} else {
			seenURLs[bookmark.URL] = bookmark.ID
		}
	}
	return duplicates, nil
}

// Execute prints the duplicates
func (c *DoublesCommand) Execute(ctx context.Context) error {
	duplicates, err := c.Find(ctx)
	if err != nil {
		return err
	}

	if len(duplicates) == 0 {
		fmt.Fprintln(c.out, "No duplicate bookmarks found.")
		return nil
	}

	for _, d := range duplicates {
		fmt.Fprintf(c.out, "Found duplicate: '%s' (ID: %s, first ID: %s) %s\n",
			d.Bookmark.Title, d.Bookmark.ID, d.KeptID, d.Bookmark.URL)
	}
	fmt.Fprintf(c.out, "Found %d duplicate bookmark(s).\n", len(duplicates))
	return nil
}
