package canvas

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

var (
	// ErrSizeMismatch is returned when the frame and surface differ in size.
	ErrSizeMismatch = errors.New("canvas: frame and surface sizes differ")
	// ErrUnsupportedSurface is returned for surfaces that cannot be converted to a Mat.
	ErrUnsupportedSurface = errors.New("canvas: unsupported surface")
)

// Composite adds the surface to frame, writing the result to dst. Black ink
// leaves the frame unchanged; channel sums saturate at 255.
func Composite(frame gocv.Mat, surface Surface, dst *gocv.Mat) error {
	size := image.Pt(frame.Cols(), frame.Rows())
	if surface.Size() != size {
		return fmt.Errorf("%w: frame %v, surface %v", ErrSizeMismatch, size, surface.Size())
	}

	switch s := surface.(type) {
	case *MatSurface:
		gocv.Add(frame, s.Mat(), dst)
		return nil
	case *VectorSurface:
		ink, err := imageToBGR(s.Image())
		if err != nil {
			return err
		}
		defer ink.Close()
		gocv.Add(frame, ink, dst)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedSurface, surface)
	}
}

// Snapshot writes the surface's ink to path. The format follows the file extension.
func Snapshot(surface Surface, path string) error {
	switch s := surface.(type) {
	case *VectorSurface:
		if strings.EqualFold(filepath.Ext(path), ".png") {
			return s.SavePNG(path)
		}
		ink, err := imageToBGR(s.Image())
		if err != nil {
			return err
		}
		defer ink.Close()
		return writeMat(path, ink)
	case *MatSurface:
		return writeMat(path, s.Mat())
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedSurface, surface)
	}
}

func writeMat(path string, m gocv.Mat) error {
	if ok := gocv.IMWrite(path, m); !ok {
		return fmt.Errorf("failed to write snapshot %s", path)
	}
	return nil
}

// imageToBGR converts the surface image to a 3-channel Mat. ImageToMatRGB
// already yields BGR channel order for *image.RGBA input.
func imageToBGR(img image.Image) (gocv.Mat, error) {
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to convert surface: %w", err)
	}
	return bgr, nil
}
