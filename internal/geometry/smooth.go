// Package geometry provides the per-frame math that turns raw hand landmarks
// into HUD inputs: exponential smoothing, palm anchoring, rotation and
// openness.
package geometry

// DefaultAlpha is the default smoothing factor. Higher values track new
// samples more closely; lower values smooth harder at the cost of lag.
const DefaultAlpha = 0.3

// ScalarSmoother is an exponential moving average over a single scalar.
// One instance smooths exactly one quantity for its lifetime; use
// PointSmoother for 2D values.
type ScalarSmoother struct {
	alpha float64
	value float64
	set   bool
}

// NewScalarSmoother creates a ScalarSmoother with the given alpha.
// Alpha values outside (0, 1] fall back to DefaultAlpha.
func NewScalarSmoother(alpha float64) *ScalarSmoother {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &ScalarSmoother{alpha: alpha}
}

// Update feeds a new sample and returns the smoothed value.
// The first sample is returned unchanged.
func (s *ScalarSmoother) Update(v float64) float64 {
	if !s.set {
		s.value = v
		s.set = true
		return v
	}
	s.value = s.alpha*v + (1-s.alpha)*s.value
	return s.value
}

// Value returns the current smoothed value and whether any sample has been
// seen yet.
func (s *ScalarSmoother) Value() (float64, bool) {
	return s.value, s.set
}

// Reset clears the smoother state. The next Update passes through unchanged.
func (s *ScalarSmoother) Reset() {
	s.value = 0
	s.set = false
}

// PointSmoother is an exponential moving average over a 2D point, applied
// element-wise.
type PointSmoother struct {
	alpha float64
	value Point2D
	set   bool
}

// NewPointSmoother creates a PointSmoother with the given alpha.
// Alpha values outside (0, 1] fall back to DefaultAlpha.
func NewPointSmoother(alpha float64) *PointSmoother {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &PointSmoother{alpha: alpha}
}

// Update feeds a new sample and returns the smoothed point.
// The first sample is returned unchanged.
func (s *PointSmoother) Update(p Point2D) Point2D {
	if !s.set {
		s.value = p
		s.set = true
		return p
	}
	s.value = Point2D{
		X: s.alpha*p.X + (1-s.alpha)*s.value.X,
		Y: s.alpha*p.Y + (1-s.alpha)*s.value.Y,
	}
	return s.value
}

// Value returns the current smoothed point and whether any sample has been
// seen yet.
func (s *PointSmoother) Value() (Point2D, bool) {
	return s.value, s.set
}

// Reset clears the smoother state. The next Update passes through unchanged.
func (s *PointSmoother) Reset() {
	s.value = Point2D{}
	s.set = false
}
