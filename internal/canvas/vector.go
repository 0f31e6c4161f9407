package canvas

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// VectorSurface draws anti-aliased ink with gg. It renders without OpenCV,
// which makes it the surface used for headless runs and snapshot export.
type VectorSurface struct {
	dc   *gg.Context
	size image.Point
}

// NewVectorSurface creates a black vector surface.
func NewVectorSurface(width, height int) *VectorSurface {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.Black)
	return &VectorSurface{dc: dc, size: image.Pt(width, height)}
}

func (s *VectorSurface) Size() image.Point {
	return s.size
}

func (s *VectorSurface) Circle(center image.Point, radius int, c color.RGBA) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(float64(center.X), float64(center.Y), float64(radius))
	_ = s.dc.Fill()
}

func (s *VectorSurface) Line(a, b image.Point, c color.RGBA, thickness int) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(float64(thickness))
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
	_ = s.dc.Stroke()
}

func (s *VectorSurface) Clear() {
	s.dc.ClearWithColor(gg.Black)
}

// Image returns the current raster.
func (s *VectorSurface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the surface to path.
func (s *VectorSurface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

func (s *VectorSurface) Close() error {
	return s.dc.Close()
}
