package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Hand Gesture HUD")

	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:          st,
		PluginDir:      cfg.PluginDir,
		CameraID:       cfg.CameraID,
		FrameWidth:     cfg.FrameWidth,
		FrameHeight:    cfg.FrameHeight,
		MotionThresh:   cfg.MotionThreshold,
		SmoothFactor:   cfg.SmoothFactor,
		PinchThreshold: cfg.PinchThreshold,
		DebounceCount:  cfg.DebounceCount,
		ClosedFraction: cfg.ClosedFraction,
		OpenFraction:   cfg.OpenFraction,
		Detector:       cfg.DetectorConfig(),
		Style:          cfg.HUDStyle(),
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}
	if err := a.LoadBindings(); err != nil {
		log.Printf("Failed to load bindings: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	srv := server.New(server.Config{
		StaticDir: cfg.StaticDir,
		Store:     st,
		App:       a,
		Plugins:   a.PluginManager(),
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	switch {
	case cfg.ShowTray:
		runTray(a, cfg.ListenAddr)
	case cfg.ShowWindow:
		runWindow(a)
	default:
		// Headless mode: block until interrupted.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	}
}

// runTray wires the tray menu to the app toggles and blocks until quit.
func runTray(a *app.App, addr string) {
	t := tray.New()
	t.OnToggleHUD(a.SetHUDEnabled)
	t.OnToggleGestures(a.SetGesturesEnabled)
	t.OnToggleDebug(a.SetDebugEnabled)
	t.OnResetTracking(a.ResetTracking)
	a.OnGestureChange(func(label gesture.Label) {
		t.SetLastGesture(label.DisplayName())
	})
	t.OnDashboard(func() {
		openBrowser("http://localhost" + addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})
	t.Run()
}

// runWindow shows the rendered frames in a local preview window until the
// user presses ESC.
func runWindow(a *app.App) {
	window := gocv.NewWindow("Mudra")
	defer window.Close()

	for {
		jpeg := a.LatestJPEG()
		if jpeg != nil {
			frame, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
			if err == nil {
				if !frame.Empty() {
					window.IMShow(frame)
				}
				frame.Close()
			}
		}

		if window.WaitKey(66) == 27 { // ESC
			return
		}
	}
}

// openBrowser opens the given URL with the platform opener.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		log.Printf("Open %s in your browser", url)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
