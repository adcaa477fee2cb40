package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/1broseidon/stacker/internal/command"
	"github.com/1broseidon/stacker/internal/platform"
	"github.com/1broseidon/stacker/internal/wm"
)

// Backend executes commands and reads state. *daemon.Loop satisfies it.
type Backend interface {
	Exec(ctx context.Context, ev wm.Event) error
	Snapshot(ctx context.Context) (wm.Snapshot, error)
	Uptime() time.Duration
}

// StateFeed streams snapshots. *daemon.StateSynchronizer satisfies it.
type StateFeed interface {
	Subscribe() (<-chan wm.Snapshot, func())
}

// CommandRequest is the body of POST /api/commands.
type CommandRequest struct {
	Command string            `json:"command"`
	Window  platform.WindowID `json:"window,omitempty"`
}

// Server represents the HTTP API server
type Server struct {
	router   *mux.Router
	backend  Backend
	feed     StateFeed
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewServer creates a new API server
func NewServer(backend Backend, feed StateFeed, logger *zerolog.Logger) *Server {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	s := &Server{
		router:  mux.NewRouter(),
		backend: backend,
		feed:    feed,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: l,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/commands", s.handleCommand).Methods("POST")
	api.HandleFunc("/events", s.handleEvents)
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the router, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http api: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.backend.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ev, err := command.Parse(req.Command)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if command.IsGrab(ev) {
		http.Error(w, "grab commands need a pointer", http.StatusBadRequest)
		return
	}
	ev = command.Target(ev, req.Window)

	if err := s.backend.Exec(r.Context(), ev); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := s.feed.Subscribe()
	defer cancel()

	// The client never sends anything; reading notices when it goes away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				s.logger.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"uptime_seconds": int64(s.backend.Uptime().Seconds()),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wm.ErrInvalidWorkspace):
		return http.StatusBadRequest
	case errors.Is(err, wm.ErrUnknownHandle), errors.Is(err, wm.ErrNoWindow):
		return http.StatusNotFound
	case errors.Is(err, wm.ErrGrabActive), errors.Is(err, wm.ErrMaximized), errors.Is(err, wm.ErrNoWorkArea):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
