package detector

import "gocv.io/x/gocv"

// Detector defines the interface for pose estimator implementations.
type Detector interface {
	// Detect analyzes a video frame and returns one snapshot per visible hand,
	// in the order the estimator reports them.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]Snapshot, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// ScriptPath overrides the lookup of mediapipe_service.py.
	ScriptPath string
}

// DefaultConfig returns a Config with the confidence levels used for live drawing.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
	}
}
