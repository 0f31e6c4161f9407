package canvas

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// MatSurface is a BGR OpenCV raster sized to the camera frame.
type MatSurface struct {
	mat gocv.Mat
}

// NewMatSurface allocates a black surface of the given size.
func NewMatSurface(width, height int) *MatSurface {
	return &MatSurface{
		mat: gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3),
	}
}

func (s *MatSurface) Size() image.Point {
	return image.Pt(s.mat.Cols(), s.mat.Rows())
}

func (s *MatSurface) Circle(center image.Point, radius int, c color.RGBA) {
	gocv.Circle(&s.mat, center, radius, c, -1)
}

func (s *MatSurface) Line(a, b image.Point, c color.RGBA, thickness int) {
	gocv.Line(&s.mat, a, b, c, thickness)
}

func (s *MatSurface) Clear() {
	s.mat.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// Mat returns the underlying matrix. The surface retains ownership.
func (s *MatSurface) Mat() gocv.Mat {
	return s.mat
}

func (s *MatSurface) Close() error {
	return s.mat.Close()
}
