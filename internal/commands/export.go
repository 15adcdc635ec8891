package commands

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/service"
)

// ExportCommand writes the grouped bookmark bar as a Netscape bookmark file
type ExportCommand struct {
	bookmarkSvc *service.BookmarkService
	out         io.Writer
}

// NewExportCommand creates a new export command
func NewExportCommand(bookmarkSvc *service.BookmarkService, out io.Writer) *ExportCommand {
	return &ExportCommand{bookmarkSvc: bookmarkSvc, out: out}
}

// Execute exports bookmarks to HTML file
func (c *ExportCommand) Execute(ctx context.Context, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer file.Close()

	count, err := c.Write(ctx, file)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filePath, err)
	}

	fmt.Fprintf(c.out, "Exported %d bookmarks to %s\n", count, filePath)
	return nil
}

// Write renders the grouped folders and returns the number of bookmarks
func (c *ExportCommand) Write(ctx context.Context, w io.Writer) (int, error) {
	folders, err := c.bookmarkSvc.Folders(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	// Write HTML header
	fmt.Fprintf(w, "<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	fmt.Fprintf(w, "<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(w, "<TITLE>Bookmarks</TITLE>\n")
	fmt.Fprintf(w, "<H1>Bookmarks</H1>\n")
	fmt.Fprintf(w, "<DL><p>\n")
	fmt.Fprintf(w, "    <DT><H3 PERSONAL_TOOLBAR_FOLDER=\"true\">Bookmarks bar</H3>\n")
	fmt.Fprintf(w, "    <DL><p>\n")

	count := 0
	for _, folder := range folders {
		// uncategorized links live directly on the bar
		if folder.Uncategorized {
			for _, b := range folder.Bookmarks {
				writeBookmark(w, b, 2)
				count++
			}
			continue
		}
		fmt.Fprintf(w, "        <DT><H3>%s</H3>\n", html.EscapeString(folder.Title))
		fmt.Fprintf(w, "        <DL><p>\n")
		for _, b := range folder.Bookmarks {
			writeBookmark(w, b, 3)
			count++
		}
		fmt.Fprintf(w, "        </DL><p>\n")
	}

	fmt.Fprintf(w, "    </DL><p>\n")
	_, err = fmt.Fprintf(w, "</DL><p>\n")
	return count, err
}

// writeBookmark writes a single bookmark
func writeBookmark(w io.Writer, b models.BookmarkNode, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "    "
	}
	fmt.Fprintf(w, "%s<DT><A HREF=\"%s\">%s</A>\n", indent, html.EscapeString(b.URL), html.EscapeString(b.Title))
}
