// Package main provides a system control plugin for macOS.
// It handles volume and brightness via AppleScript. The set_volume action
// uses the hand openness carried in the request, so an open palm means
// full volume and a fist means mute.
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

// actionHandler defines a function type for handling specific actions.
type actionHandler func(req *Request) error

// actionHandlers maps action names to their handler functions.
var actionHandlers = map[string]actionHandler{
	"set_volume":      setVolume,
	"volume_up":       volumeUp,
	"volume_down":     volumeDown,
	"volume_mute":     volumeMute,
	"brightness_up":   brightnessUp,
	"brightness_down": brightnessDown,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := handler(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// setVolume maps the hand openness percentage directly to output volume.
func setVolume(req *Request) error {
	volume := int(req.Openness)
	if volume < 0 {
		volume = 0
	} else if volume > 100 {
		volume = 100
	}
	return runAppleScript(fmt.Sprintf("set volume output volume %d", volume))
}

// volumeUp increases the system volume by 10%.
func volumeUp(*Request) error {
	return runAppleScript(`set volume output volume ((output volume of (get volume settings)) + 10)`)
}

// volumeDown decreases the system volume by 10%.
func volumeDown(*Request) error {
	return runAppleScript(`set volume output volume ((output volume of (get volume settings)) - 10)`)
}

// volumeMute toggles the system mute state.
func volumeMute(*Request) error {
	return runAppleScript(`set volume output muted (not (output muted of (get volume settings)))`)
}

// brightnessUp increases the screen brightness.
func brightnessUp(*Request) error {
	return runAppleScript("tell application \"System Events\"\n\tkey code 144\nend tell")
}

// brightnessDown decreases the screen brightness.
func brightnessDown(*Request) error {
	return runAppleScript("tell application \"System Events\"\n\tkey code 145\nend tell")
}
