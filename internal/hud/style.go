package hud

import "image/color"

// Style holds the visual parameters for the HUD overlay. It is built once
// and injected into the Renderer; drawing routines take no implicit global
// state.
type Style struct {
	// Color is the primary line color for dial, skeleton and cube.
	Color color.RGBA

	// AccentColor is used for the rotation arrow and openness arc.
	AccentColor color.RGBA

	// LabelColor is used for the gesture label text.
	LabelColor color.RGBA

	// Thickness is the line thickness in pixels for solid strokes.
	Thickness int

	// GlowAlpha is the blend weight in (0, 1] for the translucent glow
	// layer composited over the base shapes.
	GlowAlpha float64

	// DialRadii are the radii of the concentric dial circles, inner first.
	DialRadii [3]int

	// TickCount is the number of radial tick marks around the dial.
	TickCount int

	// FontScale is the base scale for HUD text.
	FontScale float64
}

// DefaultStyle returns the stock white-on-video HUD look.
func DefaultStyle() Style {
	return Style{
		Color:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		AccentColor: color.RGBA{R: 0, G: 255, B: 255, A: 255},
		LabelColor:  color.RGBA{R: 0, G: 255, B: 0, A: 255},
		Thickness:   2,
		GlowAlpha:   0.45,
		DialRadii:   [3]int{40, 70, 100},
		TickCount:   12,
		FontScale:   0.6,
	}
}
