// Package hud paints the AR overlay onto video frames: a radial dial
// anchored on the palm, the finger skeleton, a rotation arrow, an openness
// arc, a floating cube and text labels.
package hud

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/geometry"
	"github.com/ayusman/mudra/internal/gesture"
)

// fingerChains lists the landmark indices of each finger from the wrist
// outward, used to draw the skeleton.
var fingerChains = [5][5]int{
	{0, 1, 2, 3, 4},
	{0, 5, 6, 7, 8},
	{0, 9, 10, 11, 12},
	{0, 13, 14, 15, 16},
	{0, 17, 18, 19, 20},
}

// cubeVertices are the unit-cube corners scaled at draw time.
var cubeVertices = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// cubeEdges are index pairs into cubeVertices.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

const cubeSize = 25

// Renderer paints HUD elements onto frames using a fixed Style. All drawing
// mutates the frame in place; coordinates outside the frame are clipped by
// the raster routines, never an error.
type Renderer struct {
	style Style
}

// NewRenderer creates a Renderer with the given style.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style}
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style {
	return r.style
}

// Draw composes the full HUD for one hand. The layer order is fixed so
// output is reproducible: base shapes (dial, skeleton, cube), then the
// translucent glow/arc overlay, then text (rotation readout, gesture label).
// Passing debug=true also draws the raw landmark skeleton.
func (r *Renderer) Draw(frame *gocv.Mat, hand *detector.HandLandmarks, anchor geometry.Point2D, rotation, openness float64, label gesture.Label, debug bool) {
	if frame == nil || frame.Empty() {
		return
	}

	center := image.Pt(int(anchor.X), int(anchor.Y))

	// Base shapes
	r.DrawDial(frame, center)
	if debug && hand != nil {
		r.DrawSkeleton(frame, hand, frame.Cols(), frame.Rows())
	}
	r.DrawCube(frame, center)
	r.DrawRotationArrow(frame, center, rotation)

	// Glow overlay: additive, order-dependent, always after base shapes.
	r.drawGlow(frame, center, openness)

	// Text on top of everything.
	r.drawRotationText(frame, center, rotation)
	r.DrawLabel(frame, label.DisplayName(), center)
}

// DrawDial paints the radial dial: concentric circles, tick marks and a
// center cross.
func (r *Renderer) DrawDial(frame *gocv.Mat, center image.Point) {
	if frame == nil || frame.Empty() {
		return
	}

	for _, radius := range r.style.DialRadii {
		gocv.Circle(frame, center, radius, r.style.Color, r.style.Thickness)
	}

	outer := r.style.DialRadii[2]
	for i := 0; i < r.style.TickCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(r.style.TickCount)
		p1 := image.Pt(
			center.X+int(float64(outer)*math.Cos(angle)),
			center.Y+int(float64(outer)*math.Sin(angle)),
		)
		p2 := image.Pt(
			center.X+int(float64(outer+15)*math.Cos(angle)),
			center.Y+int(float64(outer+15)*math.Sin(angle)),
		)
		gocv.Line(frame, p1, p2, r.style.Color, r.style.Thickness)
	}

	gocv.Line(frame, image.Pt(center.X-10, center.Y), image.Pt(center.X+10, center.Y), r.style.Color, r.style.Thickness)
	gocv.Line(frame, image.Pt(center.X, center.Y-10), image.Pt(center.X, center.Y+10), r.style.Color, r.style.Thickness)
}

// DrawSkeleton paints finger bone segments and joint dots for a hand whose
// landmarks are in normalized coordinates.
func (r *Renderer) DrawSkeleton(frame *gocv.Mat, hand *detector.HandLandmarks, width, height int) {
	if frame == nil || frame.Empty() || hand == nil {
		return
	}

	for _, chain := range fingerChains {
		for i := 0; i < len(chain)-1; i++ {
			a := hand.Points[chain[i]]
			b := hand.Points[chain[i+1]]
			p1 := image.Pt(int(a.X*float64(width)), int(a.Y*float64(height)))
			p2 := image.Pt(int(b.X*float64(width)), int(b.Y*float64(height)))
			gocv.Line(frame, p1, p2, r.style.Color, r.style.Thickness)
			gocv.Circle(frame, p1, 4, r.style.Color, -1)
		}
	}
}

// DrawRotationArrow paints an arrow from the anchor in the direction of the
// hand rotation.
func (r *Renderer) DrawRotationArrow(frame *gocv.Mat, center image.Point, rotation float64) {
	if frame == nil || frame.Empty() {
		return
	}

	rad := rotation * math.Pi / 180
	end := image.Pt(
		center.X+int(80*math.Cos(rad)),
		center.Y+int(80*math.Sin(rad)),
	)
	gocv.ArrowedLine(frame, center, end, r.style.AccentColor, r.style.Thickness)
}

// DrawOpennessArc paints an arc around the middle dial ring whose sweep is
// proportional to the openness percentage, starting at twelve o'clock.
func (r *Renderer) DrawOpennessArc(frame *gocv.Mat, center image.Point, openness float64) {
	if frame == nil || frame.Empty() {
		return
	}
	if openness < 0 {
		openness = 0
	} else if openness > 100 {
		openness = 100
	}

	sweep := openness / 100 * 360
	if sweep <= 0 {
		return
	}

	radius := r.style.DialRadii[1]
	axes := image.Pt(radius, radius)
	gocv.Ellipse(frame, center, axes, 0, -90, -90+sweep, r.style.AccentColor, r.style.Thickness+2)
}

// DrawLabel paints the gesture label above the dial.
func (r *Renderer) DrawLabel(frame *gocv.Mat, text string, center image.Point) {
	if frame == nil || frame.Empty() || text == "" {
		return
	}

	origin := image.Pt(center.X-50, center.Y-150)
	gocv.PutText(frame, text, origin, gocv.FontHersheySimplex, 1.0, r.style.LabelColor, r.style.Thickness)
}

// DrawCube paints a small pseudo-3D wireframe cube beside the anchor, a
// purely cosmetic depth cue.
func (r *Renderer) DrawCube(frame *gocv.Mat, center image.Point) {
	if frame == nil || frame.Empty() {
		return
	}

	var projected [8]image.Point
	for i, v := range cubeVertices {
		// Oblique projection: z leaks half into both screen axes.
		projected[i] = image.Pt(
			center.X+int(v[0]*cubeSize+v[2]*cubeSize*0.5),
			center.Y+int(v[1]*cubeSize+v[2]*cubeSize*0.5),
		)
	}

	for _, e := range cubeEdges {
		gocv.Line(frame, projected[e[0]], projected[e[1]], r.style.Color, 1)
	}
}

// DrawStatus paints the status line: FPS and toggle states in the top-left
// corner.
func (r *Renderer) DrawStatus(frame *gocv.Mat, fps float64, hudOn, gesturesOn bool) {
	if frame == nil || frame.Empty() {
		return
	}

	gocv.PutText(frame, fmt.Sprintf("FPS: %d", int(fps)), image.Pt(20, 40),
		gocv.FontHersheySimplex, 1.0, r.style.LabelColor, r.style.Thickness)
	gocv.PutText(frame, "HUD: "+onOff(hudOn), image.Pt(20, 80),
		gocv.FontHersheySimplex, r.style.FontScale, r.style.Color, r.style.Thickness)
	gocv.PutText(frame, "Gestures: "+onOff(gesturesOn), image.Pt(20, 110),
		gocv.FontHersheySimplex, r.style.FontScale, r.style.Color, r.style.Thickness)
}

// drawGlow composites the translucent layer: a soft ring and the openness
// arc blended over the frame with GlowAlpha.
func (r *Renderer) drawGlow(frame *gocv.Mat, center image.Point, openness float64) {
	if r.style.GlowAlpha <= 0 {
		return
	}

	overlay := frame.Clone()
	defer overlay.Close()

	gocv.Circle(&overlay, center, r.style.DialRadii[1], r.style.AccentColor, r.style.Thickness+4)
	r.DrawOpennessArc(&overlay, center, openness)

	gocv.AddWeighted(overlay, r.style.GlowAlpha, *frame, 1-r.style.GlowAlpha, 0, frame)
}

func (r *Renderer) drawRotationText(frame *gocv.Mat, center image.Point, rotation float64) {
	origin := image.Pt(center.X+20, center.Y-120)
	gocv.PutText(frame, fmt.Sprintf("%ddeg", int(rotation)), origin,
		gocv.FontHersheySimplex, r.style.FontScale, r.style.Color, r.style.Thickness)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
