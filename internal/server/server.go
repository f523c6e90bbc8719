// Package server exposes the game engine and leaderboard over HTTP: a JSON
// API for session start, score submission and leaderboard queries, plus a
// websocket endpoint for live play.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tushaaaaaarr/SnakeRush/internal/config"
	"github.com/tushaaaaaarr/SnakeRush/internal/leaderboard"
)

// sessionMaxIdle is how long an untouched session survives before the
// sweeper drops it.
const sessionMaxIdle = 30 * time.Minute

// Server is the SnakeRush HTTP server.
type Server struct {
	cfg      config.Config
	store    *leaderboard.Store
	sessions *sessionManager
	logger   *log.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New creates a server backed by the given leaderboard store.
func New(cfg config.Config, store *leaderboard.Store) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snakerush",
	})

	s := &Server{
		cfg:      cfg,
		store:    store,
		sessions: newSessionManager(),
		logger:   logger,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return s.originAllowed(r.Header.Get("Origin"))
		},
	}
	s.httpSrv = &http.Server{
		Addr:    cfg.Server.Address,
		Handler: s.Handler(),
	}

	return s
}

// Handler builds the route table wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /game/start", s.handleStartGame)
	mux.HandleFunc("POST /scores/submit", s.handleSubmitScore)
	mux.HandleFunc("GET /leaderboard/top", s.handleTop)
	mux.HandleFunc("GET /leaderboard/all", s.handleAll)
	mux.HandleFunc("GET /leaderboard/player/{name}", s.handlePlayer)
	mux.HandleFunc("GET /ws", s.handleWS)

	return s.corsMiddleware(mux)
}

// corsMiddleware answers preflight requests and stamps the allow headers on
// every response.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// ListenAndServe starts the server and blocks until SIGINT/SIGTERM, then
// shuts down gracefully.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server",
		"address", s.cfg.Server.Address,
		"grid", s.cfg.Game,
		"leaderboard", s.store.Path(),
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Periodically drop sessions nobody is driving anymore.
	sweeper := time.NewTicker(time.Minute)
	defer sweeper.Stop()

	for {
		select {
		case err := <-errCh:
			return err
		case <-sweeper.C:
			if removed := s.sessions.sweep(sessionMaxIdle); removed > 0 {
				s.logger.Info("swept idle sessions", "removed", removed, "active", s.sessions.count())
			}
		case <-done:
			s.logger.Info("shutting down...")
			return s.Shutdown()
		}
	}
}

// Shutdown stops the server, allowing in-flight requests to finish.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpSrv.Shutdown(ctx)
}
