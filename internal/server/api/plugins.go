package api

import (
	"net/http"

	"github.com/ayusman/mudra/internal/plugin"
)

// PluginsHandler serves the list of discovered plugins.
type PluginsHandler struct {
	manager *plugin.Manager
}

// NewPluginsHandler creates a new PluginsHandler over the given manager.
func NewPluginsHandler(m *plugin.Manager) *PluginsHandler {
	return &PluginsHandler{manager: m}
}

type pluginResponse struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// ServeHTTP handles GET /api/plugins.
func (h *PluginsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plugins := h.manager.List()
	response := make([]pluginResponse, 0, len(plugins))
	for _, p := range plugins {
		response = append(response, pluginResponse{
			Name:        p.Manifest.Name,
			Version:     p.Manifest.Version,
			Description: p.Manifest.Description,
			Actions:     p.Manifest.Actions,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"plugins": response})
}
