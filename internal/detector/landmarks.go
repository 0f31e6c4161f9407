// Package detector provides the hand landmark snapshot type and the pose estimator
// interface the interaction controller consumes.
package detector

import "image"

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger pairs a fingertip landmark with its proximal (PIP) joint.
type Finger struct {
	Tip   int
	Joint int
}

// Fingers lists the four non-thumb fingers, index first.
var Fingers = [4]Finger{
	{Tip: IndexTip, Joint: IndexPIP},
	{Tip: MiddleTip, Joint: MiddlePIP},
	{Tip: RingTip, Joint: RingPIP},
	{Tip: PinkyTip, Joint: PinkyPIP},
}

// Point3D is a landmark position. X and Y are normalized to the frame size
// (0..1, Y grows downward); Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Snapshot holds the 21 landmarks of one hand in one frame.
type Snapshot struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Pixel converts landmark i into a pixel position for a frame of the given size.
// Coordinates are truncated toward zero like the capture-side conversion in OpenCV.
func (s *Snapshot) Pixel(i int, frame image.Point) image.Point {
	p := s.Points[i]
	return image.Pt(int(p.X*float64(frame.X)), int(p.Y*float64(frame.Y)))
}

// Connections are the landmark pairs drawn for the skeleton overlay.
var Connections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}
