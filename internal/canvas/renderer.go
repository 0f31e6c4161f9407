package canvas

import (
	"image/color"
	"strings"
)

// Policy selects how samples become ink.
type Policy string

const (
	// PolicyStamp interpolates each new segment and stamps circles directly onto
	// the surface. Per-frame cost is independent of history.
	PolicyStamp Policy = "stamp"
	// PolicyReplay keeps every sample and redraws all segments on each Flush.
	PolicyReplay Policy = "replay"
)

// Default rendering settings.
const (
	DefaultThickness   = 5
	DefaultStep        = 2
	DefaultEraseRadius = 60
	DefaultEraseOffset = 20
)

var (
	// EraseColor is the ink value that removes strokes.
	EraseColor = color.RGBA{A: 255}

	// Palette holds the selectable ink colors.
	Palette = map[string]color.RGBA{
		"green": {G: 255, A: 255},
		"red":   {R: 255, A: 255},
		"blue":  {B: 255, A: 255},
	}
)

// Config holds configuration options for a Renderer.
type Config struct {
	Policy    Policy
	Thickness int
	Color     color.RGBA

	// Step is the interpolation spacing in pixels for PolicyStamp.
	Step int
	// EraseRadius is the stamp radius for erase samples under PolicyStamp.
	EraseRadius int
	// EraseOffset is added to Thickness for erase segments under PolicyReplay.
	EraseOffset int
	// MaxTrail bounds each slot's history under PolicyReplay; 0 is unbounded.
	MaxTrail int
}

// DefaultConfig returns the stamping renderer with green ink.
func DefaultConfig() Config {
	return Config{
		Policy:      PolicyStamp,
		Thickness:   DefaultThickness,
		Color:       Palette["green"],
		Step:        DefaultStep,
		EraseRadius: DefaultEraseRadius,
		EraseOffset: DefaultEraseOffset,
	}
}

// normalize clamps settings to values that are safe to draw with.
func (c Config) normalize() Config {
	if c.Thickness < 1 {
		c.Thickness = 1
	}
	if c.Step < 1 {
		c.Step = 1
	}
	if c.EraseRadius <= c.drawRadius() {
		c.EraseRadius = c.drawRadius() + 1
	}
	if c.EraseOffset < 1 {
		c.EraseOffset = 1
	}
	if c.MaxTrail < 0 {
		c.MaxTrail = 0
	}
	if c.Color == (color.RGBA{}) {
		c.Color = Palette["green"]
	}
	return c
}

func (c Config) drawRadius() int {
	r := c.Thickness / 2
	if r < 1 {
		r = 1
	}
	return r
}

// ParseColor looks up a palette color by name, falling back to green.
func ParseColor(name string) color.RGBA {
	if c, ok := Palette[strings.ToLower(name)]; ok {
		return c
	}
	return Palette["green"]
}

// Renderer turns per-slot samples into ink.
type Renderer interface {
	// Feed consumes one sample for a hand slot.
	Feed(slot int, s Sample)
	// Flush completes the frame's rendering.
	Flush()
	// Reset forgets a slot's continuity (and history, for replay).
	Reset(slot int)
	// Surface returns the ink surface.
	Surface() Surface
}

// NewRenderer creates the renderer selected by cfg.Policy.
func NewRenderer(cfg Config, surface Surface) Renderer {
	cfg = cfg.normalize()
	if cfg.Policy == PolicyReplay {
		return newReplayer(cfg, surface)
	}
	return newStamper(cfg, surface)
}
