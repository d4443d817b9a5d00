package server

import (
	"fmt"
	"net/http"
	"time"
)

// streamInterval paces the MJPEG stream at roughly the active pipeline
// frame rate.
const streamInterval = 66 * time.Millisecond

// StreamHandler serves the rendered frames as an MJPEG stream. Frames come
// from the pipeline's published JPEG, so every client sees the same output
// the HUD produced and the camera stays single-reader.
type StreamHandler struct {
	state State
}

// NewStreamHandler creates a StreamHandler over the given state source.
func NewStreamHandler(state State) *StreamHandler {
	return &StreamHandler{state: state}
}

// ServeHTTP streams frames until the client disconnects.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "close")

	flusher, _ := w.(http.Flusher)

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			jpeg := h.state.LatestJPEG()
			if jpeg == nil {
				continue
			}

			fmt.Fprintf(w, "--frame\r\n")
			fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
			fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(jpeg))
			if _, err := w.Write(jpeg); err != nil {
				return
			}
			fmt.Fprintf(w, "\r\n")

			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
