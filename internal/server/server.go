// Package server provides the HTTP surface: state and media endpoints fed
// by the pipeline's published output, plus the REST API over the store.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// State is the part of the application the server reads and toggles. The
// pipeline publishes frames and snapshots; the server never touches the
// camera itself.
type State interface {
	Snapshot() app.Snapshot
	LatestJPEG() []byte
	SetHUDEnabled(bool)
	SetGesturesEnabled(bool)
	SetDebugEnabled(bool)
	ResetTracking()
	LoadBindings() error
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       State
	Plugins   *plugin.Manager
}

// Server is the HTTP server for the overlay application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		eventsHandler := api.NewEventsHandler(s.config.Store)
		s.mux.Handle("/api/events", eventsHandler)
		s.mux.Handle("/api/events/", eventsHandler)

		// Binding writes must reach the running pipeline, not just the
		// database.
		bindingsHandler := api.NewBindingsHandler(s.config.Store, s.reloadBindings)
		s.mux.Handle("/api/bindings", bindingsHandler)
		s.mux.Handle("/api/bindings/", bindingsHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings", settingsHandler)
		s.mux.Handle("/api/settings/", settingsHandler)
	}

	if s.config.Plugins != nil {
		s.mux.Handle("/api/plugins", api.NewPluginsHandler(s.config.Plugins))
	}

	if s.config.App != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App))
		s.mux.Handle("/api/ws", NewStateSocketHandler(s.config.App))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// reloadBindings refreshes the app's in-memory binding table after a write
// through the API.
func (s *Server) reloadBindings() {
	if s.config.App == nil {
		return
	}
	if err := s.config.App.LoadBindings(); err != nil {
		log.Printf("Failed to reload bindings: %v", err)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

type stateUpdateRequest struct {
	HUDOn         *bool `json:"hudOn"`
	GesturesOn    *bool `json:"gesturesOn"`
	DebugOn       *bool `json:"debugOn"`
	ResetTracking bool  `json:"resetTracking"`
}

// handleState serves the current pipeline snapshot on GET and applies
// toggle updates on PATCH.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// fall through to the snapshot below
	case http.MethodPatch:
		var req stateUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.HUDOn != nil {
			s.config.App.SetHUDEnabled(*req.HUDOn)
		}
		if req.GesturesOn != nil {
			s.config.App.SetGesturesEnabled(*req.GesturesOn)
		}
		if req.DebugOn != nil {
			s.config.App.SetDebugEnabled(*req.DebugOn)
		}
		if req.ResetTracking {
			s.config.App.ResetTracking()
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.config.App.Snapshot())
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
