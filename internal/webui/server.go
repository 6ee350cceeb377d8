// Package webui serves the setup form and reports structured run outcomes
// to it.
package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/spurintel/spursetup/domain/model"
	"github.com/spurintel/spursetup/internal/logging"
	"github.com/spurintel/spursetup/usecase/setup"
)

// Server is the serve-mode display surface for the setup flow.
type Server struct {
	setup    *setup.UseCase
	hub      *hub
	upgrader websocket.Upgrader
}

// NewServer wires the orchestrator to the web surface. The returned server
// installs itself as the use case notifier.
func NewServer(u *setup.UseCase) *Server {
	s := &Server{
		setup: u,
		hub:   newHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	u.Notifier = s.hub
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/setup/state", s.handleState)
	mux.HandleFunc("/api/setup/complete", s.handleComplete)
	mux.HandleFunc("/api/setup/events", s.handleEvents)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(setupPageHTML))
}

type featureJSON struct {
	Availability string `json:"availability"`
	Value        string `json:"value,omitempty"`
}

type stateResponse struct {
	Threshold    featureJSON `json:"threshold"`
	ContextURL   featureJSON `json:"context_url"`
	SecretExists bool        `json:"secret_exists"`
	Configured   bool        `json:"configured"`
	SkipSetup    bool        `json:"skip_setup"`
	Warnings     []string    `json:"warnings,omitempty"`
}

// handleState runs the availability probe and reports the snapshot the form
// renders from.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	probe, err := s.setup.Probe(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{
		Threshold:    featureJSON{Availability: probe.Threshold.Availability.String(), Value: probe.Threshold.Value},
		ContextURL:   featureJSON{Availability: probe.ContextURL.Availability.String(), Value: probe.ContextURL.Value},
		SecretExists: probe.SecretExists,
		Configured:   probe.Configured,
		SkipSetup:    probe.SkipSetup,
		Warnings:     probe.Warnings,
	})
}

type completeRequest struct {
	Token      string `json:"token"`
	Threshold  string `json:"threshold"`
	ContextURL string `json:"context_url"`
}

type redirectJSON struct {
	Path    string `json:"path"`
	DelayMS int64  `json:"delay_ms"`
}

type completeResponse struct {
	RunID    string        `json:"run_id"`
	Status   string        `json:"status"`
	Warnings []string      `json:"warnings,omitempty"`
	Stage    string        `json:"stage,omitempty"`
	Error    string        `json:"error,omitempty"`
	Redirect *redirectJSON `json:"redirect,omitempty"`
}

// handleComplete triggers the bootstrap run. Re-entrant triggers answer 409
// while a run is in flight.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	out, err := s.setup.Run(r.Context(), &setup.RunInput{Input: model.Input{
		Token:      req.Token,
		Threshold:  req.Threshold,
		ContextURL: req.ContextURL,
	}})
	if err != nil && errors.Is(err, model.ErrRunInProgress) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	resp := completeResponse{
		RunID:    out.RunID,
		Status:   statusOf(out),
		Warnings: out.Warnings,
		Stage:    string(out.Stage),
		Error:    out.Err,
	}
	if out.Redirect != nil {
		resp.Redirect = &redirectJSON{
			Path:    out.Redirect.Path,
			DelayMS: out.Redirect.Delay.Milliseconds(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEvents upgrades to a websocket carrying run progress events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.FromContext(r.Context()).Warn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	s.hub.add(conn)
	// Drain the read side so pings and closes are processed.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ListenAndServe blocks serving the surface on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
