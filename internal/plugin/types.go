// Package plugin provides discovery and execution of the external action
// plugins that gesture bindings invoke.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities, read from its
// plugin.json file.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request is sent to a plugin on stdin when a bound gesture fires. Besides
// the action and binding config it carries the hand state at the moment of
// recognition, so plugins can scale their effect (e.g. openness as volume).
type Request struct {
	Action   string          `json:"action"`
	Gesture  string          `json:"gesture"`
	Openness float64         `json:"openness"`
	Rotation float64         `json:"rotation"`
	Config   json.RawMessage `json:"config"`
	Params   json.RawMessage `json:"params,omitempty"`
}

// Response is read from a plugin's stdout after execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
