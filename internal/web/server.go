package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dastanaron/tabmarks/internal/messaging"
	"github.com/dastanaron/tabmarks/internal/service"
	"github.com/dastanaron/tabmarks/internal/settings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Server serves the new-tab page and the message channel
type Server struct {
	mux        *http.ServeMux
	dispatcher *messaging.Dispatcher
	bookmarks  *service.BookmarkService
	tags       *service.TagService
	settings   *settings.Store
	upgrader   websocket.Upgrader
	log        logrus.FieldLogger
}

// NewServer wires the HTTP routes
func NewServer(
	dispatcher *messaging.Dispatcher,
	bookmarks *service.BookmarkService,
	tags *service.TagService,
	store *settings.Store,
	log logrus.FieldLogger,
) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		dispatcher: dispatcher,
		bookmarks:  bookmarks,
		tags:       tags,
		settings:   store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		log: log.WithField("component", "web"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleNewTab)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("POST /api/message", s.handleMessage)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("Serving new tab page")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.dispatcher.Wait()
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}
