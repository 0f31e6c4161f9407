package desktop

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-vgo/robotgo"
)

// Robot drives the host pointer and keyboard through robotgo.
type Robot struct {
	goos string
}

// NewRobot returns a Robot for the running platform.
func NewRobot() *Robot {
	return &Robot{goos: runtime.GOOS}
}

// ScreenSize returns the primary display size in pixels.
func (r *Robot) ScreenSize() image.Point {
	w, h := robotgo.GetScreenSize()
	return image.Pt(w, h)
}

func (r *Robot) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (r *Robot) Click() error {
	robotgo.Click("left")
	return nil
}

// RequestClose sends the platform's close-window shortcut to the focused window.
func (r *Robot) RequestClose() error {
	key, mods, err := closeShortcut(r.goos)
	if err != nil {
		return err
	}

	args := make([]interface{}, len(mods))
	for i, m := range mods {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("failed to send close shortcut: %w", err)
	}
	return nil
}

// closeShortcut returns the key and modifiers that close the focused window.
func closeShortcut(goos string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "w", []string{"cmd"}, nil
	case "linux", "windows", "freebsd":
		return "f4", []string{"alt"}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}

// Nop discards pointer and close requests.
type Nop struct{}

func (Nop) MoveTo(x, y int) error { return nil }
func (Nop) Click() error          { return nil }
func (Nop) RequestClose() error   { return nil }
