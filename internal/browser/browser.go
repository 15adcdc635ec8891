package browser

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/dastanaron/tabmarks/internal/config"
	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/parser"

	"github.com/spf13/afero"
)

// BookmarkAPI gives read access to the browser bookmark tree
type BookmarkAPI interface {
	GetTree(ctx context.Context) ([]models.BookmarkNode, error)
}

// FileAPI reads the bookmark tree from the browser's bookmark file on every
// call, so edits made in the browser show up on the next page load.
type FileAPI struct {
	fs     afero.Fs
	path   string
	format string
}

// NewFileAPI creates a reader for the bookmark file at path
func NewFileAPI(fs afero.Fs, path, format string) *FileAPI {
	if format == "" {
		format = config.FormatAuto
	}
	return &FileAPI{fs: fs, path: path, format: format}
}

// GetTree parses the bookmark file. Any failure is a TreeError.
func (a *FileAPI) GetTree(ctx context.Context) ([]models.BookmarkNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, &models.TreeError{Reason: "cancelled", Err: err}
	}

	f, err := a.fs.Open(a.path)
	if err != nil {
		return nil, &models.TreeError{Reason: "open " + a.path, Err: err}
	}
	defer f.Close()

	parse := parser.ParseChromium
	if a.detectFormat() == config.FormatNetscape {
		parse = parser.ParseNetscape
	}

	roots, err := parse(io.Reader(f))
	if err != nil {
		return nil, &models.TreeError{Reason: "parse " + a.path, Err: err}
	}
	return roots, nil
}

func (a *FileAPI) detectFormat() string {
	if a.format != config.FormatAuto {
		return a.format
	}
	switch strings.ToLower(filepath.Ext(a.path)) {
	case ".html", ".htm":
		return config.FormatNetscape
	default:
		return config.FormatChromium
	}
}

// StaticAPI serves a fixed tree
type StaticAPI struct {
	Roots []models.BookmarkNode
	Err   error
}

// GetTree returns the fixed tree or error
func (a StaticAPI) GetTree(ctx context.Context) ([]models.BookmarkNode, error) {
	return a.Roots, a.Err
}
