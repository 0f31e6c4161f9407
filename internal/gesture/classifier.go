// Package gesture classifies a hand snapshot into the boolean gesture predicates
// the mode controllers consume.
package gesture

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ayusman/mudra/internal/detector"
)

// DefaultPinchThreshold is the thumb-to-index distance, in normalized frame
// units, below which a hand counts as pinching.
const DefaultPinchThreshold = 0.05

// Predicates is the per-frame gesture classification of one hand.
type Predicates struct {
	Pinching   bool
	FistClosed bool
	HandOpen   bool
	Pointing   bool
}

// Classifier maps landmark snapshots to Predicates. It holds no state.
type Classifier struct {
	pinchThreshold float64
}

// NewClassifier creates a Classifier. A non-positive threshold selects
// DefaultPinchThreshold.
func NewClassifier(pinchThreshold float64) *Classifier {
	if pinchThreshold <= 0 {
		pinchThreshold = DefaultPinchThreshold
	}
	return &Classifier{pinchThreshold: pinchThreshold}
}

// PinchThreshold returns the configured pinch distance.
func (c *Classifier) PinchThreshold() float64 {
	return c.pinchThreshold
}

// Classify computes the gesture predicates for one hand.
//
// The thumb is ignored for fist, open and pointing: only the four fingers whose
// flexion runs along the image's vertical axis are compared tip against PIP joint.
func (c *Classifier) Classify(s *detector.Snapshot) Predicates {
	var up [4]bool
	extended := 0
	for i, f := range detector.Fingers {
		up[i] = isExtended(s, f)
		if up[i] {
			extended++
		}
	}

	return Predicates{
		Pinching:   c.IsPinching(PinchDistance(s)),
		FistClosed: extended == 0,
		HandOpen:   extended == 4,
		Pointing:   up[0] && !up[1] && !up[2] && !up[3],
	}
}

// IsPinching reports whether a thumb-to-index distance is a pinch.
func (c *Classifier) IsPinching(distance float64) bool {
	return distance < c.pinchThreshold
}

// PinchDistance is the planar distance between the thumb tip and index tip.
func PinchDistance(s *detector.Snapshot) float64 {
	thumb := s.Points[detector.ThumbTip]
	index := s.Points[detector.IndexTip]
	return floats.Distance([]float64{thumb.X, thumb.Y}, []float64{index.X, index.Y}, 2)
}

// isExtended reports whether the fingertip is above its joint. Image Y grows
// downward, so tip.Y >= joint.Y means curled.
func isExtended(s *detector.Snapshot, f detector.Finger) bool {
	return s.Points[f.Tip].Y < s.Points[f.Joint].Y
}
