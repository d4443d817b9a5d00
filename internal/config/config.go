// Package config loads application settings from a .env file and the
// process environment, with sensible defaults for everything.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hud"
)

// Config holds all runtime configuration.
type Config struct {
	// Capture
	CameraID    int
	FrameWidth  int
	FrameHeight int

	// Detection
	MaxHands        int
	MinConfidence   float64
	MinTrackingConf float64
	MotionThreshold float64

	// Geometry and classification
	SmoothFactor   float64
	ClosedFraction float64
	OpenFraction   float64
	PinchThreshold float64
	DebounceCount  int

	// Server
	ListenAddr string
	StaticDir  string

	// Paths
	DataDir   string
	PluginDir string

	// HUD style
	HUDThickness int
	HUDGlowAlpha float64
	HUDFontScale float64

	// UI
	ShowTray   bool
	ShowWindow bool
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dataDir := getEnv("MUDRA_DATA_DIR", defaultDataDir())

	return &Config{
		CameraID:    getEnvInt("MUDRA_CAMERA_ID", 0),
		FrameWidth:  getEnvInt("MUDRA_FRAME_WIDTH", capture.DefaultWidth),
		FrameHeight: getEnvInt("MUDRA_FRAME_HEIGHT", capture.DefaultHeight),

		MaxHands:        getEnvInt("MUDRA_MAX_HANDS", 1),
		MinConfidence:   getEnvFloat("MUDRA_MIN_CONFIDENCE", 0.7),
		MinTrackingConf: getEnvFloat("MUDRA_MIN_TRACKING_CONFIDENCE", 0.7),
		MotionThreshold: getEnvFloat("MUDRA_MOTION_THRESHOLD", 1.0),

		SmoothFactor:   getEnvFloat("MUDRA_SMOOTH_FACTOR", geometry.DefaultAlpha),
		ClosedFraction: getEnvFloat("MUDRA_CLOSED_FRACTION", geometry.DefaultClosedFraction),
		OpenFraction:   getEnvFloat("MUDRA_OPEN_FRACTION", geometry.DefaultOpenFraction),
		PinchThreshold: getEnvFloat("MUDRA_PINCH_THRESHOLD", gesture.DefaultPinchThreshold),
		DebounceCount:  getEnvInt("MUDRA_DEBOUNCE_COUNT", gesture.DefaultDebounceCount),

		HUDThickness: getEnvInt("MUDRA_HUD_THICKNESS", 2),
		HUDGlowAlpha: getEnvFloat("MUDRA_HUD_GLOW_ALPHA", 0.45),
		HUDFontScale: getEnvFloat("MUDRA_HUD_FONT_SCALE", 0.6),

		ListenAddr: getEnv("MUDRA_LISTEN_ADDR", ":8080"),
		StaticDir:  getEnv("MUDRA_STATIC_DIR", ""),

		DataDir:   dataDir,
		PluginDir: getEnv("MUDRA_PLUGIN_DIR", filepath.Join(dataDir, "plugins")),

		ShowTray:   getEnvBool("MUDRA_TRAY", true),
		ShowWindow: getEnvBool("MUDRA_WINDOW", false),
	}
}

// DBPath returns the SQLite database path inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "mudra.db")
}

// HUDStyle returns the default HUD look with the configured overrides
// applied.
func (c *Config) HUDStyle() hud.Style {
	style := hud.DefaultStyle()
	if c.HUDThickness > 0 {
		style.Thickness = c.HUDThickness
	}
	if c.HUDGlowAlpha >= 0 && c.HUDGlowAlpha <= 1 {
		style.GlowAlpha = c.HUDGlowAlpha
	}
	if c.HUDFontScale > 0 {
		style.FontScale = c.HUDFontScale
	}
	return style
}

// DetectorConfig maps the relevant fields onto a detector configuration.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		MaxHands:        c.MaxHands,
		MinConfidence:   c.MinConfidence,
		MinTrackingConf: c.MinTrackingConf,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
