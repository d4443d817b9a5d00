package geometry

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Openness reference distances as fractions of the smaller frame dimension.
// A mean fingertip-to-anchor distance at or below the closed fraction reads
// as 0%, at or above the open fraction as 100%. Tuning constants, not
// calibration.
const (
	DefaultClosedFraction = 0.12
	DefaultOpenFraction   = 0.40
)

// Point2D is a point in pixel coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PalmAnchor returns the HUD anchor point for a hand in pixel coordinates:
// the midpoint of the wrist and the middle-finger MCP.
func PalmAnchor(hand *detector.HandLandmarks, width, height int) Point2D {
	wrist := hand.Points[detector.Wrist]
	middle := hand.Points[detector.MiddleMCP]
	return Point2D{
		X: (wrist.X + middle.X) / 2 * float64(width),
		Y: (wrist.Y + middle.Y) / 2 * float64(height),
	}
}

// RotationDegrees computes the hand rotation from the wrist toward the
// middle-finger MCP, both in pixel coordinates, as degrees in [0, 360).
// Coincident points yield an arbitrary angle; this is unspecified, not an
// error.
func RotationDegrees(wrist, middleMCP Point2D) float64 {
	deg := math.Atan2(middleMCP.Y-wrist.Y, middleMCP.X-wrist.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Openness estimates how extended the fingers are as a percentage in
// [0, 100], from the mean fingertip-to-anchor pixel distance rescaled
// between the default closed and open reference distances.
func Openness(hand *detector.HandLandmarks, anchor Point2D, width, height int) float64 {
	return OpennessWithRange(hand, anchor, width, height, DefaultClosedFraction, DefaultOpenFraction)
}

// OpennessWithRange is Openness with explicit closed/open reference
// fractions of the smaller frame dimension. Returns 0 when the fractions do
// not describe a usable range.
func OpennessWithRange(hand *detector.HandLandmarks, anchor Point2D, width, height int, closedFrac, openFrac float64) float64 {
	minDim := float64(width)
	if float64(height) < minDim {
		minDim = float64(height)
	}

	closedRef := closedFrac * minDim
	openRef := openFrac * minDim
	if openRef <= closedRef {
		return 0
	}

	var total float64
	for _, idx := range detector.FingertipIndices {
		tip := hand.Points[idx]
		dx := tip.X*float64(width) - anchor.X
		dy := tip.Y*float64(height) - anchor.Y
		total += math.Hypot(dx, dy)
	}
	mean := total / float64(len(detector.FingertipIndices))

	pct := (mean - closedRef) / (openRef - closedRef) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// AngleBetween returns the unsigned angle in radians between two vectors.
// The cosine is clamped to [-1, 1] before acos so floating-point overshoot
// cannot produce NaN. Zero-length vectors yield 0.
func AngleBetween(a, b detector.Point3D) float64 {
	la := math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
	lb := math.Sqrt(b.X*b.X + b.Y*b.Y + b.Z*b.Z)
	if la == 0 || lb == 0 {
		return 0
	}

	cos := (a.X*b.X + a.Y*b.Y + a.Z*b.Z) / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}
