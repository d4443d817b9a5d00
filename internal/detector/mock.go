package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Synthetic pose fixtures. All poses share an upright right hand with the
// wrist at (0.5, 0.8) and the palm facing the camera; Y grows downward, so
// extended fingers have tip Y below (less than) PIP Y, and an extended thumb
// has tip X less than IP X.

// OpenPalmLandmarks returns a hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb extended to the side
	h.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.76, Z: 0.01}
	h.Points[ThumbMCP] = Point3D{X: 0.38, Y: 0.72, Z: 0.02}
	h.Points[ThumbIP] = Point3D{X: 0.33, Y: 0.68, Z: 0.02}
	h.Points[ThumbTip] = Point3D{X: 0.28, Y: 0.64, Z: 0.02}

	// Index finger extended upward
	h.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.62, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.43, Y: 0.52, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.42, Y: 0.44, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.41, Y: 0.36, Z: 0.0}

	// Middle finger extended upward
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.62, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.50, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.41, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.32, Z: 0.0}

	// Ring finger extended upward
	h.Points[RingMCP] = Point3D{X: 0.56, Y: 0.63, Z: 0.0}
	h.Points[RingPIP] = Point3D{X: 0.57, Y: 0.52, Z: 0.0}
	h.Points[RingDIP] = Point3D{X: 0.58, Y: 0.44, Z: 0.0}
	h.Points[RingTip] = Point3D{X: 0.59, Y: 0.36, Z: 0.0}

	// Pinky finger extended upward
	h.Points[PinkyMCP] = Point3D{X: 0.62, Y: 0.66, Z: 0.0}
	h.Points[PinkyPIP] = Point3D{X: 0.64, Y: 0.57, Z: 0.0}
	h.Points[PinkyDIP] = Point3D{X: 0.65, Y: 0.50, Z: 0.0}
	h.Points[PinkyTip] = Point3D{X: 0.66, Y: 0.44, Z: 0.0}

	return h
}

// FistLandmarks returns a hand with all fingers curled into the palm.
func FistLandmarks() HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb folded across the curled fingers
	h.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.76, Z: 0.01}
	h.Points[ThumbMCP] = Point3D{X: 0.41, Y: 0.72, Z: 0.01}
	h.Points[ThumbIP] = Point3D{X: 0.40, Y: 0.69, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.43, Y: 0.67, Z: -0.02}

	// Index finger curled, tip below PIP
	h.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.64, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.44, Y: 0.60, Z: -0.03}
	h.Points[IndexDIP] = Point3D{X: 0.45, Y: 0.64, Z: -0.04}
	h.Points[IndexTip] = Point3D{X: 0.46, Y: 0.68, Z: -0.03}

	// Middle finger curled
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.63, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.58, Z: -0.03}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.63, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.68, Z: -0.03}

	// Ring finger curled
	h.Points[RingMCP] = Point3D{X: 0.55, Y: 0.64, Z: 0.0}
	h.Points[RingPIP] = Point3D{X: 0.55, Y: 0.60, Z: -0.03}
	h.Points[RingDIP] = Point3D{X: 0.55, Y: 0.64, Z: -0.04}
	h.Points[RingTip] = Point3D{X: 0.54, Y: 0.68, Z: -0.03}

	// Pinky finger curled
	h.Points[PinkyMCP] = Point3D{X: 0.60, Y: 0.66, Z: 0.0}
	h.Points[PinkyPIP] = Point3D{X: 0.60, Y: 0.62, Z: -0.02}
	h.Points[PinkyDIP] = Point3D{X: 0.59, Y: 0.66, Z: -0.03}
	h.Points[PinkyTip] = Point3D{X: 0.58, Y: 0.69, Z: -0.02}

	return h
}

// PointingLandmarks returns a fist with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	h := FistLandmarks()

	h.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.62, Z: 0.0}
	h.Points[IndexPIP] = Point3D{X: 0.43, Y: 0.52, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.42, Y: 0.44, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.41, Y: 0.36, Z: 0.0}

	return h
}

// PeaceLandmarks returns a hand with index and middle fingers extended.
func PeaceLandmarks() HandLandmarks {
	h := PointingLandmarks()

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.62, Z: 0.0}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.50, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.41, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.32, Z: 0.0}

	return h
}

// ThumbsUpLandmarks returns a fist with the thumb extended upward.
func ThumbsUpLandmarks() HandLandmarks {
	h := FistLandmarks()

	h.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.74, Z: 0.01}
	h.Points[ThumbMCP] = Point3D{X: 0.40, Y: 0.68, Z: 0.02}
	h.Points[ThumbIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.02}
	h.Points[ThumbTip] = Point3D{X: 0.35, Y: 0.52, Z: 0.02}

	return h
}

// PinchLandmarks returns an OK-sign pose: thumb and index tips touching,
// middle, ring and pinky fingers extended.
func PinchLandmarks() HandLandmarks {
	h := OpenPalmLandmarks()

	// Thumb tucked in toward the index finger
	h.Points[ThumbMCP] = Point3D{X: 0.39, Y: 0.70, Z: 0.02}
	h.Points[ThumbIP] = Point3D{X: 0.36, Y: 0.64, Z: 0.01}
	h.Points[ThumbTip] = Point3D{X: 0.40, Y: 0.58, Z: 0.0}

	// Index finger curled down to meet the thumb tip
	h.Points[IndexPIP] = Point3D{X: 0.42, Y: 0.54, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.41, Y: 0.57, Z: -0.01}
	h.Points[IndexTip] = Point3D{X: 0.41, Y: 0.59, Z: -0.01}

	return h
}
