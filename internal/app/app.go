// Package app wires the capture, detection, geometry, gesture and HUD
// layers into the per-frame pipeline and publishes its output for the
// HTTP server and the tray.
package app

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hud"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeout is how long without motion before dropping back to idle.
	IdleTimeout = 2 * time.Second
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	PluginDir      string
	CameraID       int
	FrameWidth     int
	FrameHeight    int
	MotionThresh   float64
	SmoothFactor   float64
	PinchThreshold float64
	DebounceCount  int
	ClosedFraction float64
	OpenFraction   float64
	Detector       detector.Config
	Style          hud.Style
}

// Snapshot is the published state of the most recent processed frame. The
// HTTP API and the websocket broadcaster serve it verbatim.
type Snapshot struct {
	HandPresent bool      `json:"handPresent"`
	Gesture     string    `json:"gesture"`
	Handedness  string    `json:"handedness,omitempty"`
	Score       float64   `json:"score"`
	Rotation    float64   `json:"rotation"`
	Openness    float64   `json:"openness"`
	FPS         float64   `json:"fps"`
	HUDOn       bool      `json:"hudOn"`
	GesturesOn  bool      `json:"gesturesOn"`
	Timestamp   time.Time `json:"timestamp"`
}

// App orchestrates the detection pipeline and owns its moving parts.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	debouncer  *gesture.Debouncer
	renderer   *hud.Renderer
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	anchorSmooth *geometry.PointSmoother
	dirSmooth    *geometry.PointSmoother
	openSmooth   *geometry.ScalarSmoother

	resetRequested atomic.Bool

	mu              sync.RWMutex
	hudEnabled      bool
	gesturesEnabled bool
	debugEnabled    bool
	bindings        map[string]store.Binding
	snapshot        Snapshot
	latestJPEG      []byte
	gestureChanged  func(gesture.Label)
	stopCh          chan struct{}
	wg              sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.MotionThresh <= 0 {
		config.MotionThresh = 1.0 // percent of changed pixels
	}
	if config.FrameWidth <= 0 {
		config.FrameWidth = capture.DefaultWidth
	}
	if config.FrameHeight <= 0 {
		config.FrameHeight = capture.DefaultHeight
	}

	a := &App{
		config:          config,
		camera:          capture.NewCamera(config.CameraID, config.FrameWidth, config.FrameHeight),
		motion:          capture.NewMotionDetector(config.MotionThresh),
		classifier:      gesture.NewClassifier(config.PinchThreshold),
		debouncer:       gesture.NewDebouncer(config.DebounceCount),
		renderer:        hud.NewRenderer(config.Style),
		pluginMgr:       plugin.NewManager(config.PluginDir),
		pluginExec:      plugin.NewExecutor(plugin.DefaultTimeout),
		anchorSmooth:    geometry.NewPointSmoother(config.SmoothFactor),
		dirSmooth:       geometry.NewPointSmoother(config.SmoothFactor),
		openSmooth:      geometry.NewScalarSmoother(config.SmoothFactor),
		hudEnabled:      true,
		gesturesEnabled: true,
		bindings:        make(map[string]store.Binding),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetHUDEnabled toggles the overlay without stopping the pipeline.
func (a *App) SetHUDEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hudEnabled = enabled
}

// HUDEnabled reports whether the overlay is drawn.
func (a *App) HUDEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hudEnabled
}

// SetGesturesEnabled toggles gesture recognition. While disabled, frames
// still flow but no detection, classification or actions run.
func (a *App) SetGesturesEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gesturesEnabled = enabled
}

// GesturesEnabled reports whether gesture recognition is active.
func (a *App) GesturesEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.gesturesEnabled
}

// SetDebugEnabled toggles the raw landmark skeleton overlay.
func (a *App) SetDebugEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.debugEnabled = enabled
}

// DebugEnabled reports whether the skeleton overlay is drawn.
func (a *App) DebugEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.debugEnabled
}

// ResetTracking asks the pipeline to drop its smoother and debouncer state
// on the next frame, so tracking restarts clean.
func (a *App) ResetTracking() {
	a.resetRequested.Store(true)
}

// OnGestureChange registers a callback invoked whenever the debounced
// gesture changes to a recognized label. The callback runs on the pipeline
// goroutine, so it must return quickly.
func (a *App) OnGestureChange(fn func(gesture.Label)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gestureChanged = fn
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera, primarily for tests.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// LoadBindings loads enabled gesture bindings from the database into the
// in-memory lookup used by the pipeline.
func (a *App) LoadBindings() error {
	if a.config.Store == nil {
		return nil
	}

	bindings, err := a.config.Store.Bindings().List()
	if err != nil {
		return err
	}

	loaded := make(map[string]store.Binding)
	for _, b := range bindings {
		if b.Enabled {
			loaded[b.Gesture] = b
		}
	}

	a.mu.Lock()
	a.bindings = loaded
	a.mu.Unlock()

	log.Printf("Loaded %d gesture bindings from database", len(loaded))
	return nil
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start opens the camera and begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	cam := a.camera
	a.mu.Unlock()

	a.wg.Wait()

	if err := cam.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Snapshot returns the published state of the last processed frame.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// LatestJPEG returns a copy of the most recent rendered frame, JPEG
// encoded, or nil if no frame has been published yet.
func (a *App) LatestJPEG() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.latestJPEG == nil {
		return nil
	}
	out := make([]byte, len(a.latestJPEG))
	copy(out, a.latestJPEG)
	return out
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Store returns the backing store, which may be nil.
func (a *App) Store() *store.Store {
	return a.config.Store
}

// resetHandState clears the smoothers and the debouncer so a hand that
// reappears later does not inherit stale filter state. Only the pipeline
// goroutine calls this.
func (a *App) resetHandState() {
	a.anchorSmooth.Reset()
	a.dirSmooth.Reset()
	a.openSmooth.Reset()
	a.debouncer.Reset()
}
