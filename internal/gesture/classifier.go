// Package gesture classifies hand poses into a fixed set of labels from
// landmark geometry.
package gesture

import (
	"github.com/ayusman/mudra/internal/detector"
)

// Label identifies a recognized gesture.
type Label string

const (
	LabelNone     Label = "none"
	LabelOpenHand Label = "open_hand"
	LabelFist     Label = "fist"
	LabelPointing Label = "pointing"
	LabelPeace    Label = "peace"
	LabelThumbsUp Label = "thumbs_up"
	LabelPinch    Label = "pinch"
)

// DisplayName returns the label formatted for the HUD.
func (l Label) DisplayName() string {
	switch l {
	case LabelOpenHand:
		return "Open Hand"
	case LabelFist:
		return "Closed Fist"
	case LabelPointing:
		return "Pointing"
	case LabelPeace:
		return "Peace Sign"
	case LabelThumbsUp:
		return "Thumbs Up"
	case LabelPinch:
		return "Pinch"
	default:
		return "None"
	}
}

// DefaultPinchThreshold is the maximum thumb-to-index tip distance, in
// normalized coordinates, that counts as a pinch.
const DefaultPinchThreshold = 0.05

// pose captures the per-frame finger state the rule predicates evaluate.
type pose struct {
	thumb, index, middle, ring, pinky bool
	pinchDist                         float64
}

// rule pairs a predicate with the label it produces. Rules are evaluated in
// slice order; the first match wins.
type rule struct {
	label Label
	match func(p pose, c *Classifier) bool
}

// rules is the classification priority order. Pinch is checked first so an
// OK-sign is not swallowed by the finger-count rules; the remaining rules
// are mutually exclusive on finger state.
var rules = []rule{
	{LabelPinch, func(p pose, c *Classifier) bool {
		// The curled-finger guard keeps a fist (whose thumb and index tips
		// also sit close together) from reading as a pinch.
		return p.pinchDist < c.pinchThreshold && (p.middle || p.ring || p.pinky)
	}},
	{LabelOpenHand, func(p pose, c *Classifier) bool {
		return p.thumb && p.index && p.middle && p.ring && p.pinky
	}},
	{LabelFist, func(p pose, c *Classifier) bool {
		return !p.thumb && !p.index && !p.middle && !p.ring && !p.pinky
	}},
	{LabelPeace, func(p pose, c *Classifier) bool {
		return p.index && p.middle && !p.ring && !p.pinky
	}},
	{LabelPointing, func(p pose, c *Classifier) bool {
		return p.index && !p.middle && !p.ring && !p.pinky
	}},
	{LabelThumbsUp, func(p pose, c *Classifier) bool {
		return p.thumb && !p.index && !p.middle && !p.ring && !p.pinky
	}},
}

// Classifier maps one hand's landmarks to a Label. It is stateless per
// frame; pair it with a Debouncer when label flicker matters.
type Classifier struct {
	pinchThreshold float64
}

// NewClassifier creates a Classifier with the given pinch threshold.
// Thresholds <= 0 fall back to DefaultPinchThreshold.
func NewClassifier(pinchThreshold float64) *Classifier {
	if pinchThreshold <= 0 {
		pinchThreshold = DefaultPinchThreshold
	}
	return &Classifier{pinchThreshold: pinchThreshold}
}

// Classify returns the label for a hand pose, or LabelNone when no rule
// matches.
func (c *Classifier) Classify(hand *detector.HandLandmarks) Label {
	if hand == nil {
		return LabelNone
	}

	p := poseOf(hand)
	for _, r := range rules {
		if r.match(p, c) {
			return r.label
		}
	}
	return LabelNone
}

// poseOf derives the finger-extension state from landmark geometry.
// A finger is extended when its tip is above its PIP joint; the thumb is
// extended when its tip is outside its IP joint on the x axis.
func poseOf(hand *detector.HandLandmarks) pose {
	pts := hand.Points
	return pose{
		thumb:     pts[detector.ThumbTip].X < pts[detector.ThumbIP].X,
		index:     pts[detector.IndexTip].Y < pts[detector.IndexPIP].Y,
		middle:    pts[detector.MiddleTip].Y < pts[detector.MiddlePIP].Y,
		ring:      pts[detector.RingTip].Y < pts[detector.RingPIP].Y,
		pinky:     pts[detector.PinkyTip].Y < pts[detector.PinkyPIP].Y,
		pinchDist: detector.Distance(pts[detector.ThumbTip], pts[detector.IndexTip]),
	}
}
