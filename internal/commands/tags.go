package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/service"
)

// TagsCommand regenerates bookmark tags from the command line
type TagsCommand struct {
	bookmarkSvc *service.BookmarkService
	tagSvc      *service.TagService
	workers     int
	out         io.Writer
}

// NewTagsCommand creates a new tags command running at most workers fetches at once
func NewTagsCommand(bookmarkSvc *service.BookmarkService, tagSvc *service.TagService, workers int, out io.Writer) *TagsCommand {
	if workers < 1 {
		workers = 1
	}
	return &TagsCommand{bookmarkSvc: bookmarkSvc, tagSvc: tagSvc, workers: workers, out: out}
}

type tagResult struct {
	bookmark models.BookmarkNode
	tags     []string
	err      error
}

// Execute generates tags for the bookmark with the given id, or for every
// bookmark when id is empty.
func (c *TagsCommand) Execute(ctx context.Context, id string) error {
	all, err := c.bookmarkSvc.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bookmarks: %w", err)
	}

	targets := all
	if id != "" {
		targets = nil
		for _, b := range all {
			if b.ID == id {
				targets = append(targets, b)
			}
		}
		if len(targets) == 0 {
			return fmt.Errorf("bookmark %s not found", id)
		}
	}

	jobs := make(chan models.BookmarkNode)
	results := make(chan tagResult)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				tags, err := c.tagSvc.Generate(ctx, b.URL, b.ID)
				results <- tagResult{bookmark: b, tags: tags, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, b := range targets {
			select {
			case jobs <- b:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	tagged, failed := 0, 0
	for r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(c.out, "Warning: failed to tag '%s': %v\n", r.bookmark.Title, r.err)
			continue
		}
		tagged++
		fmt.Fprintf(c.out, "%s: %s\n", r.bookmark.Title, strings.Join(r.tags, ", "))
	}

	fmt.Fprintf(c.out, "Tagged %d bookmarks.\n", tagged)
	if failed > 0 {
		return fmt.Errorf("%d bookmarks could not be tagged", failed)
	}
	return ctx.Err()
}
