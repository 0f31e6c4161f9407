// Package capture provides frame sources backed by GoCV (OpenCV): a live
// camera device or a recorded video file.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings
const (
	DefaultFPS    = 30
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
	ErrCameraNotOpen = errors.New("camera is not open")

	// ErrEndOfStream is returned by ReadFrame when the source has no more frames.
	ErrEndOfStream = errors.New("end of stream")
)

// Camera defines the interface for frame sources.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
}

// Config selects and tunes a frame source. A non-empty VideoPath takes
// precedence over DeviceID.
type Config struct {
	DeviceID  int
	VideoPath string
	Width     int
	Height    int
	FPS       int
}

// DefaultConfig returns settings for the first camera device.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
	}
}

// cameraImpl manages video capture from a device or file using GoCV.
type cameraImpl struct {
	cfg     Config
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
}

// NewCamera creates a new Camera for cfg. The source is not opened until Open.
func NewCamera(cfg Config) Camera {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	return &cameraImpl{cfg: cfg}
}

// Source describes what the camera reads from.
func (c *cameraImpl) Source() string {
	if c.cfg.VideoPath != "" {
		return c.cfg.VideoPath
	}
	return fmt.Sprintf("device %d", c.cfg.DeviceID)
}

func (c *cameraImpl) fromFile() bool {
	return c.cfg.VideoPath != ""
}

// Open opens the source for capturing frames. Resolution and rate hints are
// applied to devices only.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	var device interface{} = c.cfg.DeviceID
	if c.fromFile() {
		device = c.cfg.VideoPath
	}

	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Source(), err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("failed to open %s", c.Source())
	}

	if !c.fromFile() {
		if c.cfg.Width > 0 && c.cfg.Height > 0 {
			capture.Set(gocv.VideoCaptureFrameWidth, float64(c.cfg.Width))
			capture.Set(gocv.VideoCaptureFrameHeight, float64(c.cfg.Height))
		}
		capture.Set(gocv.VideoCaptureFPS, float64(c.cfg.FPS))
	}

	c.capture = capture
	c.running = true

	return nil
}

// Close closes the source and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame. A video file that runs out of frames
// reports ErrEndOfStream. The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		if c.fromFile() {
			return nil, ErrEndOfStream
		}
		return nil, errors.New("failed to read frame from camera")
	}

	return &mat, nil
}

// IsOpen returns true if the source is currently open.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
