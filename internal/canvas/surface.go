// Package canvas renders fingertip samples into a persistent ink surface.
package canvas

import (
	"image"
	"image/color"
)

// Surface is a persistent raster the renderer draws ink onto.
// Implementations are not safe for concurrent use.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() image.Point

	// Circle stamps a filled circle.
	Circle(center image.Point, radius int, c color.RGBA)

	// Line draws a segment of the given thickness.
	Line(a, b image.Point, c color.RGBA, thickness int)

	// Clear erases all ink.
	Clear()

	// Close releases the surface's resources.
	Close() error
}

// Sample is one renderer input: an ink point tagged draw or erase, or a gap that
// breaks stroke continuity.
type Sample struct {
	Point image.Point
	Erase bool
	gap   bool
}

// Ink returns a drawable sample.
func Ink(p image.Point, erase bool) Sample {
	return Sample{Point: p, Erase: erase}
}

// Gap returns a continuity break.
func Gap() Sample {
	return Sample{gap: true}
}

// IsGap reports whether s is a continuity break.
func (s Sample) IsGap() bool {
	return s.gap
}
