package app

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// runPipeline is the main loop processing frames from the camera.
//
// Pipeline per tick:
//  1. Read and mirror a frame.
//  2. Motion detection gates the frame rate: idle (5 FPS) until pixels
//     change, active (15 FPS) while they do, back to idle after 2s quiet.
//  3. In active mode, detect hand landmarks.
//  4. Smooth the palm anchor, pointing direction and openness, classify
//     the pose and debounce the label.
//  5. On a debounced label change, record an event and fire the bound
//     plugin action.
//  6. Render the HUD onto the frame and publish it as JPEG together with
//     a state snapshot.
func (a *App) runPipeline(stopCh chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()
	handPresent := false

	// FPS measured over a sliding one second window.
	frameCount := 0
	windowStart := time.Now()
	measuredFPS := 0.0

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if a.resetRequested.CompareAndSwap(true, false) {
				a.resetHandState()
				a.motion.Reset()
				handPresent = false
			}

			// The camera can be swapped via SetCamera, so go through the
			// guarded accessor rather than reading the field directly.
			cam := a.Camera()

			frame, err := cam.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			capture.Mirror(frame)

			frameCount++
			if elapsed := time.Since(windowStart); elapsed >= time.Second {
				measuredFPS = float64(frameCount) / elapsed.Seconds()
				frameCount = 0
				windowStart = time.Now()
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					cam.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > IdleTimeout {
				activeMode = false
				cam.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			var hands []detector.HandLandmarks
			if activeMode && a.GesturesEnabled() {
				hands, err = a.Detector().Detect(frame)
				if err != nil {
					log.Printf("Error detecting hands: %v", err)
					hands = nil
				}
			}

			if len(hands) > 0 {
				handPresent = true
				a.processHand(frame, &hands[0], measuredFPS)
			} else {
				if handPresent {
					a.resetHandState()
					handPresent = false
				}
				a.renderer.DrawStatus(frame, measuredFPS, a.HUDEnabled(), a.GesturesEnabled())
				a.publish(frame, Snapshot{
					FPS:        measuredFPS,
					HUDOn:      a.HUDEnabled(),
					GesturesOn: a.GesturesEnabled(),
					Timestamp:  time.Now(),
				})
			}

			frame.Close()
		}
	}
}

// processHand runs geometry, classification and rendering for one hand and
// publishes the result.
func (a *App) processHand(frame *gocv.Mat, hand *detector.HandLandmarks, fps float64) {
	width := frame.Cols()
	height := frame.Rows()

	anchor := a.anchorSmooth.Update(geometry.PalmAnchor(hand, width, height))

	// The rotation angle wraps at 360, so the raw angle cannot be fed to
	// an EMA. Smooth the wrist-to-middle-MCP direction vector instead and
	// derive the angle from the filtered vector.
	wrist := geometry.Point2D{
		X: hand.Points[detector.Wrist].X * float64(width),
		Y: hand.Points[detector.Wrist].Y * float64(height),
	}
	mcp := geometry.Point2D{
		X: hand.Points[detector.MiddleMCP].X * float64(width),
		Y: hand.Points[detector.MiddleMCP].Y * float64(height),
	}
	dir := a.dirSmooth.Update(geometry.Point2D{X: mcp.X - wrist.X, Y: mcp.Y - wrist.Y})
	rotation := geometry.RotationDegrees(geometry.Point2D{}, dir)

	openness := a.openSmooth.Update(geometry.OpennessWithRange(
		hand, anchor, width, height, a.config.ClosedFraction, a.config.OpenFraction))

	raw := a.classifier.Classify(hand)
	label, changed := a.debouncer.Observe(raw)

	if changed && label != gesture.LabelNone {
		a.onGesture(label, hand, rotation, openness)
	}

	if a.HUDEnabled() {
		a.renderer.Draw(frame, hand, anchor, rotation, openness, label, a.DebugEnabled())
	}
	a.renderer.DrawStatus(frame, fps, a.HUDEnabled(), a.GesturesEnabled())

	a.publish(frame, Snapshot{
		HandPresent: true,
		Gesture:     string(label),
		Handedness:  hand.Handedness,
		Score:       hand.Score,
		Rotation:    rotation,
		Openness:    openness,
		FPS:         fps,
		HUDOn:       a.HUDEnabled(),
		GesturesOn:  a.GesturesEnabled(),
		Timestamp:   time.Now(),
	})
}

// onGesture records the recognition event and fires the bound plugin
// action, if any. Plugin execution runs off the pipeline goroutine so a
// slow plugin cannot stall frame processing.
func (a *App) onGesture(label gesture.Label, hand *detector.HandLandmarks, rotation, openness float64) {
	log.Printf("Gesture recognized: %s", label.DisplayName())

	if a.config.Store != nil {
		err := a.config.Store.Events().Create(&store.Event{
			ID:         uuid.NewString(),
			Label:      string(label),
			Handedness: hand.Handedness,
			Score:      hand.Score,
			Rotation:   rotation,
			Openness:   openness,
		})
		if err != nil {
			log.Printf("Failed to record gesture event: %v", err)
		}
	}

	a.mu.RLock()
	binding, ok := a.bindings[string(label)]
	notify := a.gestureChanged
	a.mu.RUnlock()

	if notify != nil {
		notify(label)
	}
	if !ok {
		return
	}

	go a.executeBinding(binding, label, rotation, openness)
}

// executeBinding resolves the bound plugin and runs its action.
func (a *App) executeBinding(binding store.Binding, label gesture.Label, rotation, openness float64) {
	p, err := a.pluginMgr.Get(binding.PluginName)
	if err != nil {
		log.Printf("Binding for %s references unknown plugin %s", label, binding.PluginName)
		return
	}

	resp, err := a.pluginExec.Execute(p, &plugin.Request{
		Action:   binding.ActionName,
		Gesture:  string(label),
		Openness: openness,
		Rotation: rotation,
		Config:   binding.Config,
	})
	if err != nil {
		log.Printf("Plugin %s action %s failed: %v", binding.PluginName, binding.ActionName, err)
		return
	}
	if !resp.Success {
		log.Printf("Plugin %s action %s reported error: %s", binding.PluginName, binding.ActionName, resp.Error)
	}
}

// publish encodes the rendered frame as JPEG and stores it with the
// snapshot for the HTTP stream and websocket consumers.
func (a *App) publish(frame *gocv.Mat, snap Snapshot) {
	var jpeg []byte
	if buf, err := gocv.IMEncode(".jpg", *frame); err == nil {
		jpeg = make([]byte, buf.Len())
		copy(jpeg, buf.GetBytes())
		buf.Close()
	} else {
		log.Printf("Failed to encode frame: %v", err)
	}

	a.mu.Lock()
	a.snapshot = snap
	if jpeg != nil {
		a.latestJPEG = jpeg
	}
	a.mu.Unlock()
}
