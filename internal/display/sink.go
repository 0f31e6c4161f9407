// Package display shows frames in OpenCV highgui windows.
package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// Window names
const (
	HandWindow    = "Hand Detection"
	DrawingWindow = "Drawing"
)

// KeyEscape is the key code that ends a session.
const KeyEscape = 27

// NoKey is returned by PollKey when no key was pressed.
const NoKey = -1

// Sink presents frames and reports key presses.
type Sink interface {
	Show(name string, img gocv.Mat)
	PollKey() int
	Close()
}

// WindowSink opens one highgui window per name on first use. highgui must be
// driven from the thread that created the window, so a WindowSink stays on the
// frame loop goroutine.
type WindowSink struct {
	windows map[string]*gocv.Window
	order   []string
}

// NewWindowSink creates a sink with no windows open yet.
func NewWindowSink() *WindowSink {
	return &WindowSink{windows: make(map[string]*gocv.Window)}
}

func (s *WindowSink) Show(name string, img gocv.Mat) {
	w, ok := s.windows[name]
	if !ok {
		w = gocv.NewWindow(name)
		s.windows[name] = w
		s.order = append(s.order, name)
	}
	w.IMShow(img)
}

// PollKey pumps the window events for 1ms and returns the pressed key.
func (s *WindowSink) PollKey() int {
	if len(s.order) == 0 {
		return NoKey
	}
	return keyCode(s.windows[s.order[0]].WaitKey(1))
}

// keyCode strips the modifier bits some highgui backends report above the key.
func keyCode(raw int) int {
	if raw < 0 {
		return NoKey
	}
	return raw & 0xFF
}

func (s *WindowSink) Close() {
	for _, name := range s.order {
		s.windows[name].Close()
	}
	s.windows = make(map[string]*gocv.Window)
	s.order = nil
}

// NullSink discards frames. It is used for headless runs and tests; Keys can
// script the values returned by PollKey.
type NullSink struct {
	mu    sync.Mutex
	shown map[string]int
	Keys  []int
}

// NewNullSink creates an empty NullSink.
func NewNullSink() *NullSink {
	return &NullSink{shown: make(map[string]int)}
}

func (s *NullSink) Show(name string, img gocv.Mat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown[name]++
}

func (s *NullSink) PollKey() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Keys) == 0 {
		return NoKey
	}
	k := s.Keys[0]
	s.Keys = s.Keys[1:]
	return k
}

func (s *NullSink) Close() {}

// Shown returns how many frames were shown under name.
func (s *NullSink) Shown(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown[name]
}
