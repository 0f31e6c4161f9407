// Package pointer maps a tracked landmark into smoothed output-space pointer
// coordinates.
package pointer

import (
	"image"
	"math"
)

// Default mapping settings.
const (
	// DefaultRegionRatio is the fraction of the frame that spans the whole screen.
	DefaultRegionRatio = 0.6
	// DefaultSmoothing is the weight kept from the previous smoothed position.
	DefaultSmoothing = 0.7
	// MaxSmoothing caps the smoothing factor; 1 would freeze the pointer.
	MaxSmoothing = 0.99
)

// Config holds configuration options for the Mapper.
type Config struct {
	// ScreenWidth and ScreenHeight are the output space in pixels.
	ScreenWidth  int
	ScreenHeight int

	// RegionRatio (0 < r <= 1) is the size of the centered input sub-rectangle
	// that maps onto the full output. Smaller values increase sensitivity.
	RegionRatio float64

	// InvertY flips the vertical axis.
	InvertY bool

	// Smoothing is the exponential smoothing factor k in [0, 1).
	Smoothing float64
}

// DefaultConfig returns a Config for the given screen size.
func DefaultConfig(screenWidth, screenHeight int) Config {
	return Config{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		RegionRatio:  DefaultRegionRatio,
		Smoothing:    DefaultSmoothing,
	}
}

// State is the smoothing memory of one pointer. The zero value is unset: the
// next mapped sample seeds it directly.
type State struct {
	X, Y   float64
	Seeded bool
}

// Mapper converts raw landmark positions into screen positions.
// It keeps no per-pointer memory; callers own State.
type Mapper struct {
	cfg Config
}

// NewMapper creates a Mapper, normalizing out-of-range settings.
func NewMapper(cfg Config) *Mapper {
	if cfg.ScreenWidth < 1 {
		cfg.ScreenWidth = 1
	}
	if cfg.ScreenHeight < 1 {
		cfg.ScreenHeight = 1
	}
	if cfg.RegionRatio <= 0 || cfg.RegionRatio > 1 {
		cfg.RegionRatio = 1
	}
	if cfg.Smoothing < 0 {
		cfg.Smoothing = 0
	}
	if cfg.Smoothing > MaxSmoothing {
		cfg.Smoothing = MaxSmoothing
	}
	return &Mapper{cfg: cfg}
}

// Config returns the normalized configuration.
func (m *Mapper) Config() Config {
	return m.cfg
}

// Target maps a normalized point through the region remap to unsmoothed screen
// coordinates.
func (m *Mapper) Target(nx, ny float64) (x, y float64) {
	u := remap(nx, m.cfg.RegionRatio)
	v := remap(ny, m.cfg.RegionRatio)
	if m.cfg.InvertY {
		v = 1 - v
	}
	return u * float64(m.cfg.ScreenWidth), v * float64(m.cfg.ScreenHeight)
}

// Map smooths the target for a normalized point and returns the pixel to move
// to along with the updated state.
func (m *Mapper) Map(st State, nx, ny float64) (image.Point, State) {
	tx, ty := m.Target(nx, ny)

	if !st.Seeded {
		st = State{X: tx, Y: ty, Seeded: true}
	} else {
		k := m.cfg.Smoothing
		st.X = st.X*k + tx*(1-k)
		st.Y = st.Y*k + ty*(1-k)
	}

	return m.pixel(st.X, st.Y), st
}

// MapPixel is Map for a raw pixel position in a frame of the given size.
func (m *Mapper) MapPixel(st State, px, py, frameWidth, frameHeight int) (image.Point, State) {
	if frameWidth < 1 || frameHeight < 1 {
		return m.pixel(st.X, st.Y), st
	}
	return m.Map(st, float64(px)/float64(frameWidth), float64(py)/float64(frameHeight))
}

func (m *Mapper) pixel(x, y float64) image.Point {
	return image.Pt(
		clampInt(int(math.Round(x)), 0, m.cfg.ScreenWidth-1),
		clampInt(int(math.Round(y)), 0, m.cfg.ScreenHeight-1),
	)
}

// remap stretches the centered band of width r onto [0, 1], clamping outside it.
// Written around the center so 0.5 maps to exactly 0.5 for every r.
func remap(n, r float64) float64 {
	u := 0.5 + (n-0.5)/r
	return math.Min(1, math.Max(0, u))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
