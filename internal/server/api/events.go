// Package api provides the REST handlers over the store: the gesture event
// log, action bindings and persisted settings.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

// EventsHandler handles HTTP requests for the gesture event log.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

// ServeHTTP routes event requests.
// Expected paths: /api/events and /api/events/stats
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/events")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodDelete:
			h.clear(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case path == "stats" && r.Method == http.MethodGet:
		h.stats(w, r)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

type eventResponse struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Handedness string  `json:"handedness"`
	Score      float64 `json:"score"`
	Rotation   float64 `json:"rotation"`
	Openness   float64 `json:"openness"`
	DetectedAt string  `json:"detected_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/events?limit=N, newest first.
func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.Events().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:         e.ID,
			Label:      e.Label,
			Handedness: e.Handedness,
			Score:      e.Score,
			Rotation:   e.Rotation,
			Openness:   e.Openness,
			DetectedAt: e.DetectedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// stats handles GET /api/events/stats and returns counts per label.
func (h *EventsHandler) stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Events().CountByLabel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"counts": counts})
}

// clear handles DELETE /api/events and empties the log.
func (h *EventsHandler) clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.Events().Clear()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear events")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
