package web

import (
	"encoding/json"
	"net/http"

	"github.com/dastanaron/tabmarks/internal/messaging"
	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/render"

	"github.com/google/uuid"
)

// maxMessageSize bounds a single request message
const maxMessageSize = 64 << 10

func (s *Server) handleNewTab(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	appSettings := s.settings.Load(ctx)

	var page render.Page
	folders, err := s.bookmarks.Folders(ctx)
	if err != nil {
		s.log.WithError(err).Error("Loading bookmarks failed")
		page = render.ErrorPage(render.LoadErrorMessage, appSettings)
	} else {
		tags, err := s.tags.All(ctx)
		if err != nil {
			s.log.WithError(err).Warn("Loading tags failed")
			tags = models.TagSet{}
		}
		page = render.BuildPage(folders, tags, appSettings)
		render.Filter(&page, r.URL.Query().Get("q"))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.Render(w, page); err != nil {
		s.log.WithError(err).Error("Rendering page failed")
	}
}

// handleMessage serves one request of the message protocol
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messaging.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messaging.ErrorResponse("invalid request: "+err.Error()))
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	resp, err := s.dispatcher.Call(r.Context(), req)
	if err != nil {
		// client went away
		s.log.WithError(err).WithField("action", req.Action).Debug("Request abandoned")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
