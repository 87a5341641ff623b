// Package admin exposes a small HTTP API for inspecting and controlling a
// running simulation.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"lightseek-sim/internal/logging"
	"lightseek-sim/internal/sim"
)

type Server struct {
	Sim *sim.Simulator
	mux *http.ServeMux
}

func NewServer(simulator *sim.Simulator) *Server {
	s := &Server{Sim: simulator, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /status", s.handleStatus)
	s.mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	s.mux.HandleFunc("POST /pause", s.handlePause)
	s.mux.HandleFunc("POST /resume", s.handleResume)
}

// ServeHTTP makes the server usable as a handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start serves the API on addr until the context is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("admin API listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

type statusResponse struct {
	RunID      string `json:"run_id"`
	Tick       int64  `json:"tick"`
	State      string `json:"state"`
	Paused     bool   `json:"paused"`
	Terminated bool   `json:"terminated"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		RunID:      s.Sim.RunID(),
		Tick:       s.Sim.Ticks(),
		State:      s.Sim.State(),
		Paused:     s.Sim.Paused(),
		Terminated: s.Sim.Terminated(),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Snapshot())
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if !s.Sim.Paused() {
		s.Sim.TogglePause()
	}
	s.writePauseState(w)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if s.Sim.Paused() {
		s.Sim.TogglePause()
	}
	s.writePauseState(w)
}

func (s *Server) writePauseState(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"paused": s.Sim.Paused()})
}
