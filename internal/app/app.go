// Package app runs the hand-gesture interaction loop: capture, detection,
// mode control, stroke rendering and pointer output.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/canvas"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/desktop"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/store"
	"gocv.io/x/gocv"
)

// Deps are the collaborators an App drives. Camera, Detector and Sink are required.
type Deps struct {
	Camera   capture.Camera
	Detector detector.Detector
	Sink     display.Sink

	Injector desktop.Injector
	Closer   desktop.Closer
	Prompt   desktop.Prompt

	// Store enables the session journal when non-nil. The caller closes it.
	Store *store.Store

	// Now overrides the frame clock.
	Now func() time.Time
}

// App is the main application that owns the frame loop.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	sink     display.Sink
	session  *Session
	now      func() time.Time

	store   *store.Store
	record  *store.Session
	journal Journal

	surface canvas.Surface
	frames  int
}

// New creates a new App instance with the given configuration.
func New(config Config, deps Deps) *App {
	config = config.normalize()

	a := &App{
		config:   config,
		camera:   deps.Camera,
		detector: deps.Detector,
		sink:     deps.Sink,
		store:    deps.Store,
		now:      deps.Now,
		journal:  nopJournal{},
	}
	if a.now == nil {
		a.now = time.Now
	}

	if a.store != nil {
		rec, err := a.store.Sessions().Start(config.Profile(), sourceName(config.Camera), config.settingsJSON(), a.now())
		if err != nil {
			log.Printf("Session journal disabled: %v", err)
		} else {
			a.record = rec
			a.journal = &storeJournal{events: a.store.Events(), sessionID: rec.ID}
			log.Printf("Journaling session %s", rec.ID)
		}
	}

	a.session = NewSession(config, Outputs{
		Injector: deps.Injector,
		Closer:   deps.Closer,
		Prompt:   deps.Prompt,
		Journal:  a.journal,
	})

	return a
}

func sourceName(c capture.Config) string {
	if c.VideoPath != "" {
		return c.VideoPath
	}
	return fmt.Sprintf("device %d", c.DeviceID)
}

// Session returns the interaction session.
func (a *App) Session() *Session {
	return a.session
}

// SessionID returns the journal session ID, or "" without a journal.
func (a *App) SessionID() string {
	if a.record == nil {
		return ""
	}
	return a.record.ID
}

// Frames returns the number of frames processed.
func (a *App) Frames() int {
	return a.frames
}

// Surface returns the ink surface, or nil before the first frame.
func (a *App) Surface() canvas.Surface {
	return a.surface
}

// Run processes frames until the stream ends, the exit key is pressed or ctx is
// cancelled. Only a camera that cannot be opened is an error.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer a.shutdown()

	log.Println("Interaction loop started")

	failures := 0
	for {
		select {
		case <-ctx.Done():
			log.Println("Interaction loop cancelled")
			return nil
		default:
		}

		frame, err := a.camera.ReadFrame()
		if errors.Is(err, capture.ErrEndOfStream) {
			log.Println("End of stream")
			return nil
		}
		if err != nil {
			failures++
			log.Printf("Error reading frame: %v", err)
			if failures >= MaxReadFailures {
				log.Printf("Giving up after %d failed reads", failures)
				return nil
			}
			continue
		}
		failures = 0

		a.processFrame(frame, a.now())
		frame.Close()

		if key := a.sink.PollKey(); key == display.KeyEscape {
			log.Println("Exit key pressed")
			return nil
		}
	}
}

// processFrame runs one frame through detection, the session and display.
func (a *App) processFrame(frame *gocv.Mat, now time.Time) {
	a.frames++

	if a.config.Mirror {
		gocv.Flip(*frame, frame, 1)
	}
	size := image.Pt(frame.Cols(), frame.Rows())
	a.ensureCanvas(size)

	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Detection error: %v", err)
		hands = nil
	}

	a.session.Step(hands, size, now)

	if r := a.session.Renderer(); r != nil {
		r.Flush()
	}

	overlay := frame.Clone()
	defer overlay.Close()
	display.DrawLandmarks(&overlay, hands)
	display.DrawStatus(&overlay, len(hands), a.session.Status())
	a.sink.Show(display.HandWindow, overlay)

	drawing := gocv.NewMat()
	defer drawing.Close()
	if a.surface == nil {
		frame.CopyTo(&drawing)
	} else if err := canvas.Composite(*frame, a.surface, &drawing); err != nil {
		log.Printf("Compositing failed: %v", err)
		frame.CopyTo(&drawing)
	}
	a.sink.Show(display.DrawingWindow, drawing)
}

// ensureCanvas creates the ink surface at the first frame's size.
func (a *App) ensureCanvas(size image.Point) {
	if !a.config.Draw || a.surface != nil {
		return
	}

	switch a.config.Surface {
	case SurfaceVector:
		a.surface = canvas.NewVectorSurface(size.X, size.Y)
	default:
		a.surface = canvas.NewMatSurface(size.X, size.Y)
	}
	a.session.AttachRenderer(canvas.NewRenderer(a.config.Canvas, a.surface))
	log.Printf("Canvas %dx%d (%s, %s policy)", size.X, size.Y, a.config.Surface, a.config.Canvas.Policy)
}

// shutdown releases capture, display and detection. A close confirmation that
// is still open is left to finish on its own.
func (a *App) shutdown() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.sink.Close()
	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	end := a.now()
	if a.surface != nil {
		if a.config.SnapshotPath != "" {
			if err := canvas.Snapshot(a.surface, a.config.SnapshotPath); err != nil {
				log.Printf("Failed to save snapshot: %v", err)
			} else {
				log.Printf("Saved canvas to %s", a.config.SnapshotPath)
				a.journal.Record(store.EventSnapshot, 0, a.config.SnapshotPath, end)
			}
		}
		if err := a.surface.Close(); err != nil {
			log.Printf("Error closing canvas: %v", err)
		}
		a.surface = nil
	}

	if a.record != nil {
		if err := a.store.Sessions().End(a.record.ID, a.frames, end); err != nil {
			log.Printf("Failed to end journal session: %v", err)
		}
	}

	log.Printf("Interaction loop stopped after %d frames", a.frames)
}
