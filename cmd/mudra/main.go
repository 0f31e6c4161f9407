package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/canvas"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/desktop"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
	"github.com/ayusman/mudra/internal/mode"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/store"
)

func main() {
	cfg := app.DefaultConfig()

	var (
		cameraID    = flag.Int("camera", cfg.Camera.DeviceID, "camera device ID")
		video       = flag.String("video", "", "read frames from a video file instead of a camera")
		draw        = flag.Bool("draw", true, "enable drawing (pinch draws, open hand erases)")
		pointerMode = flag.Bool("pointer", false, "enable pointer control (point moves, pinch clicks, fist closes)")
		maxHands    = flag.Int("hands", cfg.MaxHands, "maximum number of tracked hands")
		pinch       = flag.Float64("pinch", cfg.PinchThreshold, "pinch distance threshold in normalized units")
		onFrames    = flag.Int("on-frames", app.DefaultModeFrames, "frames a gesture must persist to enter a mode")
		offFrames   = flag.Int("off-frames", app.DefaultModeFrames, "frames a gesture must be absent to leave a mode")
		closeHold   = flag.Duration("close-hold", app.DefaultCloseHold, "fist hold before closing the focused window is proposed")
		cooldown    = flag.Duration("click-cooldown", app.DefaultClickCooldown, "minimum interval between clicks")
		smoothing   = flag.Float64("smoothing", pointer.DefaultSmoothing, "pointer smoothing factor in [0,1)")
		region      = flag.Float64("region", pointer.DefaultRegionRatio, "fraction of the frame mapped to the full screen")
		invertY     = flag.Bool("invert-y", false, "invert the vertical pointer axis")
		thickness   = flag.Int("thickness", canvas.DefaultThickness, "stroke thickness in pixels")
		inkColor    = flag.String("color", "green", "ink color [green|red|blue]")
		policy      = flag.String("policy", string(canvas.PolicyStamp), "stroke rendering policy [stamp|replay]")
		surface     = flag.String("surface", app.SurfaceMat, "ink surface backend [mat|vector]")
		snapshot    = flag.String("snapshot", "", "save the ink canvas to this image file on exit")
		journal     = flag.String("journal", "", "record the session to this SQLite file")
		mirror      = flag.Bool("mirror", true, "mirror frames horizontally before detection")
		headless    = flag.Bool("headless", false, "run without display windows")
		script      = flag.String("mediapipe", "", "path to mediapipe_service.py")
	)
	flag.Parse()

	fmt.Println("Mudra - Hand Gesture Interaction")

	cfg.Draw = *draw
	cfg.Pointer = *pointerMode
	cfg.MaxHands = *maxHands
	cfg.PinchThreshold = *pinch
	cfg.ModeOn = mode.Frames(*onFrames)
	cfg.ModeOff = mode.Frames(*offFrames)
	cfg.CloseOn = mode.Hold(*closeHold)
	cfg.ClickCooldown = *cooldown
	cfg.Canvas.Thickness = *thickness
	cfg.Canvas.Color = canvas.ParseColor(*inkColor)
	cfg.Canvas.Policy = canvas.Policy(*policy)
	cfg.Surface = *surface
	cfg.SnapshotPath = *snapshot
	cfg.Mirror = *mirror
	cfg.Camera.DeviceID = *cameraID
	cfg.Camera.VideoPath = *video
	cfg.Detector.MaxHands = *maxHands
	cfg.Detector.ScriptPath = *script

	robot := desktop.NewRobot()
	deps := app.Deps{
		Camera:   capture.NewCamera(cfg.Camera),
		Injector: robot,
		Closer:   robot,
	}

	if cfg.Pointer {
		screen := robot.ScreenSize()
		cfg.Mapper = pointer.DefaultConfig(screen.X, screen.Y)
		cfg.Mapper.Smoothing = *smoothing
		cfg.Mapper.RegionRatio = *region
		cfg.Mapper.InvertY = *invertY

		prompt, err := desktop.NewPrompt()
		if err != nil {
			log.Printf("Close confirmation unavailable (%v), closing is disabled", err)
		} else {
			deps.Prompt = prompt
		}
	}

	if mp, err := detector.NewMediaPipeDetector(cfg.Detector); err == nil {
		deps.Detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		deps.Detector = detector.NewMockDetector()
	}

	if *headless {
		deps.Sink = display.NewNullSink()
	} else {
		deps.Sink = display.NewWindowSink()
	}

	if *journal != "" {
		if err := os.MkdirAll(filepath.Dir(*journal), 0755); err != nil {
			log.Fatalf("Failed to create journal directory: %v", err)
		}
		st, err := store.New(*journal)
		if err != nil {
			log.Fatalf("Failed to initialize journal: %v", err)
		}
		defer st.Close()
		deps.Store = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// highgui windows must be driven from the main goroutine.
	if err := app.New(cfg, deps).Run(ctx); err != nil {
		log.Fatalf("Session failed: %v", err)
	}
}
