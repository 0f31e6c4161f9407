package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns either a fixed set of hands or a per-call sequence.
type MockDetector struct {
	mu       sync.Mutex
	hands    []Snapshot
	sequence [][]Snapshot
	calls    int
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands returned by every Detect call.
func (m *MockDetector) SetHands(hands []Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.sequence = nil
}

// SetSequence makes the n-th Detect call return sequence[n].
// Calls past the end of the sequence return no hands.
func (m *MockDetector) SetSequence(sequence [][]Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = sequence
	m.hands = nil
	m.calls = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.calls
	m.calls++

	if m.err != nil {
		return nil, m.err
	}
	if m.sequence != nil {
		if n < len(m.sequence) {
			return m.sequence[n], nil
		}
		return nil, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Finger shapes used by the pose presets, in normalized frame units.
const (
	mcpY      = 0.68
	extPIPY   = 0.55
	extDIPY   = 0.45
	extTipY   = 0.35
	curlPIPY  = 0.62
	curlDIPY  = 0.66
	curlTipY  = 0.70
	fingerGap = 0.05
)

// poseLandmarks builds a right hand at the given wrist position with each of the
// four non-thumb fingers either extended or curled. The thumb points sideways.
func poseLandmarks(wristX, wristY float64, extended [4]bool) Snapshot {
	s := Snapshot{Handedness: "Right", Score: 0.95}
	dy := wristY - 0.8

	s.Points[Wrist] = Point3D{X: wristX, Y: wristY}
	s.Points[ThumbCMC] = Point3D{X: wristX + 0.05, Y: 0.75 + dy}
	s.Points[ThumbMCP] = Point3D{X: wristX + 0.12, Y: 0.70 + dy}
	s.Points[ThumbIP] = Point3D{X: wristX + 0.18, Y: 0.65 + dy}
	s.Points[ThumbTip] = Point3D{X: wristX + 0.23, Y: 0.60 + dy}

	bases := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	for i, mcp := range bases {
		x := wristX + 0.05 - float64(i)*fingerGap
		s.Points[mcp] = Point3D{X: x, Y: mcpY + dy}
		if extended[i] {
			s.Points[mcp+1] = Point3D{X: x, Y: extPIPY + dy}
			s.Points[mcp+2] = Point3D{X: x, Y: extDIPY + dy}
			s.Points[mcp+3] = Point3D{X: x, Y: extTipY + dy}
		} else {
			s.Points[mcp+1] = Point3D{X: x, Y: curlPIPY + dy, Z: -0.05}
			s.Points[mcp+2] = Point3D{X: x - 0.02, Y: curlDIPY + dy, Z: -0.04}
			s.Points[mcp+3] = Point3D{X: x - 0.03, Y: curlTipY + dy, Z: -0.02}
		}
	}
	return s
}

// OpenPalmLandmarks returns a hand with all four fingers extended.
func OpenPalmLandmarks() Snapshot {
	return poseLandmarks(0.5, 0.8, [4]bool{true, true, true, true})
}

// FistLandmarks returns a hand with all four fingers curled.
func FistLandmarks() Snapshot {
	return poseLandmarks(0.5, 0.8, [4]bool{})
}

// PointingLandmarks returns a hand with only the index finger extended.
func PointingLandmarks() Snapshot {
	return poseLandmarks(0.5, 0.8, [4]bool{true, false, false, false})
}

// PinchLandmarks returns a pointing hand whose thumb tip touches the index tip.
func PinchLandmarks() Snapshot {
	s := PointingLandmarks()
	tip := s.Points[IndexTip]
	s.Points[ThumbIP] = Point3D{X: tip.X + 0.04, Y: tip.Y + 0.08}
	s.Points[ThumbTip] = Point3D{X: tip.X + 0.01, Y: tip.Y + 0.01}
	return s
}

// MoveTo returns a copy of s translated so its index fingertip sits at (x, y).
func MoveTo(s Snapshot, x, y float64) Snapshot {
	dx := x - s.Points[IndexTip].X
	dy := y - s.Points[IndexTip].Y
	for i := range s.Points {
		s.Points[i].X += dx
		s.Points[i].Y += dy
	}
	return s
}
