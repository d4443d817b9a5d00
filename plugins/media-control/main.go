// Package main provides a media control plugin for macOS.
// It drives playback via the media keys using AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action   string          `json:"action"`
	Gesture  string          `json:"gesture"`
	Openness float64         `json:"openness"`
	Rotation float64         `json:"rotation"`
	Config   json.RawMessage `json:"config"`
	Params   json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// mediaKeyCodes maps actions to macOS media key codes.
var mediaKeyCodes = map[string]int{
	"play_pause": 100, // F8
	"next_track": 101, // F9
	"prev_track": 98,  // F7
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	keyCode, ok := mediaKeyCodes[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := pressMediaKey(keyCode); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// pressMediaKey sends a media key press via AppleScript.
func pressMediaKey(code int) error {
	script := fmt.Sprintf("tell application \"System Events\"\n\tkey code %d\nend tell", code)
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}
