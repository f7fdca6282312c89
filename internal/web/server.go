// Package web serves the browser dashboard and its JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/soccerboard/internal/contract"
)

// shutdownTimeout bounds how long in-flight requests may run after the context ends.
const shutdownTimeout = 5 * time.Second

// Server renders every page and API response from a fresh LoadMatches call,
// so the feed cache alone decides how current the data is.
type Server struct {
	cfg    *contract.Config
	mgr    contract.CacheManager
	router *mux.Router
	logOut io.Writer
}

// NewServer builds the dashboard router for the given base config and cache.
func NewServer(cfg *contract.Config, mgr contract.CacheManager) *Server {
	s := &Server{cfg: cfg, mgr: mgr, logOut: os.Stderr}
	s.router = s.routes()
	return s
}

// SetLogOutput redirects request logs, mainly for tests.
func (s *Server) SetLogOutput(w io.Writer) {
	s.logOut = w
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, s.loggingMiddleware)

	// Pages
	r.Handle("/", s.pageHandler(s.standingsPage)).Methods(http.MethodGet)
	r.Handle("/team/{id:.+}", s.pageHandler(s.teamPage)).Methods(http.MethodGet)
	r.Handle("/competition", s.pageHandler(s.competitionPage)).Methods(http.MethodGet)

	// JSON API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/standings", s.handleStandings).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:.+}/results", s.handleTeamResults).Methods(http.MethodGet)
	api.HandleFunc("/competition", s.handleCompetition).Methods(http.MethodGet)

	r.NotFoundHandler = requestIDMiddleware(s.loggingMiddleware(http.HandlerFunc(http.NotFound)))
	return r
}

// ListenAndServe runs the dashboard on cfg.Addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		contract.LogInfo("Serving dashboard on %s", displayAddr(s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dashboard: %w", err)
		}
		return nil
	}
}

// displayAddr turns ":8080" into a clickable local URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
