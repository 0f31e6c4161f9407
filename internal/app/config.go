package app

import (
	"encoding/json"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/canvas"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/mode"
	"github.com/ayusman/mudra/internal/pointer"
)

// Interaction defaults.
const (
	// DefaultModeFrames is the on and off run length for the draw, erase and pointer modes.
	DefaultModeFrames = 3
	// DefaultCloseHold is how long a fist must be held before closing is proposed.
	DefaultCloseHold = 2 * time.Second
	// DefaultClickCooldown is the minimum interval between injected clicks.
	DefaultClickCooldown = 500 * time.Millisecond
	// DefaultConfirmMessage is the close confirmation question.
	DefaultConfirmMessage = "Close the focused window?"
	// MaxReadFailures is how many consecutive camera read errors end a session.
	MaxReadFailures = 30
)

// Surface backends.
const (
	SurfaceMat    = "mat"
	SurfaceVector = "vector"
)

// Config holds configuration options for the application.
type Config struct {
	// Draw enables strokes: pinch draws, an open hand erases.
	Draw bool
	// Pointer enables pointer injection, pinch clicks and fist-hold closing.
	Pointer bool

	MaxHands       int
	PinchThreshold float64

	// ModeOn and ModeOff debounce the draw, erase and pointer modes.
	ModeOn, ModeOff mode.Threshold
	// CloseOn is the fist threshold before a close is proposed.
	CloseOn mode.Threshold

	ClickCooldown  time.Duration
	// ConfirmTimeout, when positive, dismisses an unanswered close prompt.
	// Zero waits for the user.
	ConfirmTimeout time.Duration
	ConfirmMessage string

	Mapper pointer.Config
	Canvas canvas.Config
	// Surface selects the ink backend: SurfaceMat or SurfaceVector.
	Surface string

	Camera   capture.Config
	Detector detector.Config

	// Mirror flips frames horizontally before detection.
	Mirror bool
	// SnapshotPath, when set, receives the ink canvas at session end.
	SnapshotPath string
}

// DefaultConfig returns a two-hand drawing setup with a mirrored webcam.
func DefaultConfig() Config {
	return Config{
		Draw:           true,
		MaxHands:       2,
		PinchThreshold: gesture.DefaultPinchThreshold,
		ModeOn:         mode.Frames(DefaultModeFrames),
		ModeOff:        mode.Frames(DefaultModeFrames),
		CloseOn:        mode.Hold(DefaultCloseHold),
		ClickCooldown:  DefaultClickCooldown,
		ConfirmMessage: DefaultConfirmMessage,
		Mapper:         pointer.DefaultConfig(1920, 1080),
		Canvas:         canvas.DefaultConfig(),
		Surface:        SurfaceMat,
		Camera:         capture.DefaultConfig(),
		Detector:       detector.DefaultConfig(),
		Mirror:         true,
	}
}

// normalize applies safe values; configuration is never rejected.
func (c Config) normalize() Config {
	if c.MaxHands < 1 {
		c.MaxHands = 1
	}
	if c.ClickCooldown < 0 {
		c.ClickCooldown = 0
	}
	if c.ConfirmTimeout < 0 {
		c.ConfirmTimeout = 0
	}
	if c.ConfirmMessage == "" {
		c.ConfirmMessage = DefaultConfirmMessage
	}
	if c.Surface != SurfaceVector {
		c.Surface = SurfaceMat
	}
	return c
}

// Profile names the enabled features for the journal.
func (c Config) Profile() string {
	switch {
	case c.Draw && c.Pointer:
		return "both"
	case c.Pointer:
		return "pointer"
	default:
		return "draw"
	}
}

// settingsJSON is the journaled summary of the interaction settings.
func (c Config) settingsJSON() string {
	settings := struct {
		MaxHands       int     `json:"max_hands"`
		PinchThreshold float64 `json:"pinch_threshold"`
		ModeOnFrames   int     `json:"mode_on_frames"`
		ModeOffFrames  int     `json:"mode_off_frames"`
		CloseHoldMS    int64   `json:"close_hold_ms"`
		Policy         string  `json:"policy"`
		Surface        string  `json:"surface"`
		Thickness      int     `json:"thickness"`
		Smoothing      float64 `json:"smoothing,omitempty"`
		RegionRatio    float64 `json:"region_ratio,omitempty"`
	}{
		MaxHands:       c.MaxHands,
		PinchThreshold: c.PinchThreshold,
		ModeOnFrames:   c.ModeOn.Frames,
		ModeOffFrames:  c.ModeOff.Frames,
		CloseHoldMS:    c.CloseOn.Hold.Milliseconds(),
		Policy:         string(c.Canvas.Policy),
		Surface:        c.Surface,
		Thickness:      c.Canvas.Thickness,
	}
	if c.Pointer {
		settings.Smoothing = c.Mapper.Smoothing
		settings.RegionRatio = c.Mapper.RegionRatio
	}

	data, err := json.Marshal(settings)
	if err != nil {
		log.Printf("Failed to encode session settings: %v", err)
		return "{}"
	}
	return string(data)
}
