package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kibria30/Mini-Gomoku/internal/config"
	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

// Server is the HTTP surface over the engine: move selection, static
// evaluation, transposition table inspection and websocket telemetry.
type Server struct {
	cfg      config.Config
	hub      *Hub
	sessions *sessionStore
	router   chi.Router
}

func NewServer(cfg config.Config) *Server {
	s := &Server{cfg: cfg, hub: NewHub()}
	s.sessions = newSessionStore(cfg.EngineOptions(), s.hub.publishProgress)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/choose", s.handleChoose)
	r.Post("/api/evaluate", s.handleEvaluate)
	r.Get("/api/tt", s.handleTTStatus)
	r.Delete("/api/tt", s.handleTTClear)
	r.Get("/ws/search", func(w http.ResponseWriter, r *http.Request) {
		serveSearchWS(s.hub, w, r)
	})

	s.router = r
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then drains connections with
// a bounded graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go s.hub.Run(hubCtx.Done())

	server := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.router,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Printf("[api] listening on %s", s.cfg.Listen)
	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("[api] shutdown requested: %v", ctx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[api] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[api] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[api] forced close failed: %v", closeErr)
		}
	}
	return runErr
}

func statusForEngineErr(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidBoard), errors.Is(err, engine.ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNoLegalMoves):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
