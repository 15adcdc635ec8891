package messaging

import (
	"encoding/json"

	"github.com/dastanaron/tabmarks/internal/models"
)

// Request actions
const (
	ActionGetBookmarks      = "getBookmarks"
	ActionGenerateTags      = "generateTags"
	ActionGetAllTags        = "getAllTags"
	ActionGetSettings       = "getSettings"
	ActionSaveSettings      = "saveSettings"
	ActionRefreshBackground = "refreshBackground"
)

// ErrMissingParameters is the error text for incomplete requests
const ErrMissingParameters = "Missing required parameters"

// Request is a tagged message sent by a page to the background
type Request struct {
	ID         string              `json:"id,omitempty"`
	Action     string              `json:"action"`
	URL        string              `json:"url,omitempty"`
	BookmarkID string              `json:"bookmarkId,omitempty"`
	Settings   *models.AppSettings `json:"settings,omitempty"`
}

// Response answers one Request. A nil slice is left out of the encoded
// message, an empty one is sent as [].
type Response struct {
	ID                string                    `json:"id,omitempty"`
	Bookmarks         []models.BookmarkNode     `json:"bookmarks,omitempty"`
	BookmarksWithTags []models.BookmarkWithTags `json:"bookmarksWithTags,omitempty"`
	Tags              []string                  `json:"tags,omitempty"`
	Settings          *models.AppSettings       `json:"settings,omitempty"`
	Error             string                    `json:"error,omitempty"`
}

// MarshalJSON encodes only the fields the action filled in
func (r Response) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)
	if r.ID != "" {
		m["id"] = r.ID
	}
	if r.Bookmarks != nil {
		m["bookmarks"] = r.Bookmarks
	}
	if r.BookmarksWithTags != nil {
		m["bookmarksWithTags"] = r.BookmarksWithTags
	}
	if r.Tags != nil {
		m["tags"] = r.Tags
	}
	if r.Settings != nil {
		m["settings"] = r.Settings
	}
	if r.Error != "" {
		m["error"] = r.Error
	}
	return json.Marshal(m)
}

// ErrorResponse is a response carrying only an error
func ErrorResponse(msg string) Response {
	return Response{Error: msg}
}
