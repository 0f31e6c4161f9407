package canvas

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

type circleOp struct {
	center image.Point
	radius int
	color  color.RGBA
}

type lineOp struct {
	a, b      image.Point
	color     color.RGBA
	thickness int
}

// recorder is a Surface that logs draw calls.
type recorder struct {
	size    image.Point
	circles []circleOp
	lines   []lineOp
	clears  int
}

func newRecorder() *recorder {
	return &recorder{size: image.Pt(640, 480)}
}

func (r *recorder) Size() image.Point { return r.size }

func (r *recorder) Circle(center image.Point, radius int, c color.RGBA) {
	r.circles = append(r.circles, circleOp{center, radius, c})
}

func (r *recorder) Line(a, b image.Point, c color.RGBA, thickness int) {
	r.lines = append(r.lines, lineOp{a, b, c, thickness})
}

func (r *recorder) Clear() {
	r.clears++
	r.lines = nil
	r.circles = nil
}

func (r *recorder) Close() error { return nil }

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name      string
		a, b      image.Point
		step      int
		wantCount int
	}{
		{name: "horizontal", a: image.Pt(0, 0), b: image.Pt(10, 0), step: 2, wantCount: 6},
		{name: "dominant axis wins", a: image.Pt(0, 0), b: image.Pt(3, 20), step: 2, wantCount: 11},
		{name: "short segment", a: image.Pt(5, 5), b: image.Pt(6, 5), step: 2, wantCount: 2},
		{name: "zero length", a: image.Pt(5, 5), b: image.Pt(5, 5), step: 2, wantCount: 2},
		{name: "step floor", a: image.Pt(0, 0), b: image.Pt(4, 0), step: 0, wantCount: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := Interpolate(tt.a, tt.b, tt.step)
			if len(pts) != tt.wantCount {
				t.Fatalf("len = %d, want %d", len(pts), tt.wantCount)
			}
			if pts[0] != tt.a || pts[len(pts)-1] != tt.b {
				t.Errorf("endpoints = %v..%v, want %v..%v", pts[0], pts[len(pts)-1], tt.a, tt.b)
			}
		})
	}
}

func TestStamper_GapBreaksContinuity(t *testing.T) {
	rec := newRecorder()
	r := NewRenderer(DefaultConfig(), rec)

	p1, p2, p3 := image.Pt(100, 100), image.Pt(120, 100), image.Pt(300, 300)
	r.Feed(0, Ink(p1, false))
	if len(rec.circles) != 0 {
		t.Fatalf("first sample stamped %d circles, want 0", len(rec.circles))
	}

	r.Feed(0, Ink(p2, false))
	r.Feed(0, Gap())
	r.Feed(0, Ink(p3, false))
	r.Flush()

	if len(rec.circles) == 0 {
		t.Fatal("no ink between P1 and P2")
	}
	for _, c := range rec.circles {
		if c.center.Y != 100 || c.center.X < p1.X || c.center.X > p2.X {
			t.Errorf("stamp %v lies outside segment P1-P2", c.center)
		}
	}
}

func TestStamper_SlotsAreIndependent(t *testing.T) {
	rec := newRecorder()
	r := NewRenderer(DefaultConfig(), rec)

	r.Feed(0, Ink(image.Pt(10, 10), false))
	r.Feed(1, Ink(image.Pt(400, 400), false))
	r.Feed(0, Ink(image.Pt(14, 10), false))

	for _, c := range rec.circles {
		if c.center.X > 14 {
			t.Errorf("slot 1 joined slot 0 at %v", c.center)
		}
	}
}

func TestStamper_EraseRadiusExceedsDraw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thickness = 10
	rec := newRecorder()
	r := NewRenderer(cfg, rec)

	r.Feed(0, Ink(image.Pt(0, 0), false))
	r.Feed(0, Ink(image.Pt(4, 0), false))
	drawRadius := rec.circles[0].radius

	r.Feed(0, Ink(image.Pt(8, 0), true))
	last := rec.circles[len(rec.circles)-1]

	if drawRadius != 5 {
		t.Errorf("draw radius = %d, want 5", drawRadius)
	}
	if last.radius <= drawRadius {
		t.Errorf("erase radius %d not greater than draw radius %d", last.radius, drawRadius)
	}
	if last.color != EraseColor {
		t.Errorf("erase color = %v, want %v", last.color, EraseColor)
	}
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Config
		wantThick int
		wantErase int
		wantStep  int
	}{
		{name: "zero thickness floors to one", in: Config{Thickness: 0, EraseRadius: 60, Step: 2}, wantThick: 1, wantErase: 60, wantStep: 2},
		{name: "erase radius raised above draw", in: Config{Thickness: 30, EraseRadius: 4, Step: 2}, wantThick: 30, wantErase: 16, wantStep: 2},
		{name: "zero step", in: Config{Thickness: 5, EraseRadius: 60}, wantThick: 5, wantErase: 60, wantStep: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.normalize()
			if got.Thickness != tt.wantThick || got.EraseRadius != tt.wantErase || got.Step != tt.wantStep {
				t.Errorf("normalize = thickness %d erase %d step %d, want %d %d %d",
					got.Thickness, got.EraseRadius, got.Step, tt.wantThick, tt.wantErase, tt.wantStep)
			}
			if got.Color == (color.RGBA{}) {
				t.Error("zero color not defaulted")
			}
		})
	}
}

func TestReplayer_RedrawsHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyReplay
	rec := newRecorder()
	r := NewRenderer(cfg, rec)

	r.Feed(0, Ink(image.Pt(0, 0), false))
	r.Feed(0, Ink(image.Pt(10, 0), false))
	r.Feed(0, Gap())
	r.Feed(0, Ink(image.Pt(50, 50), false))
	r.Feed(0, Ink(image.Pt(60, 50), true))
	r.Flush()

	if rec.clears != 1 {
		t.Errorf("clears = %d, want 1", rec.clears)
	}
	if len(rec.lines) != 2 {
		t.Fatalf("lines = %d, want 2 (gap pair skipped)", len(rec.lines))
	}
	if rec.lines[0].thickness != DefaultThickness || rec.lines[0].color != Palette["green"] {
		t.Errorf("draw line = %+v", rec.lines[0])
	}
	if rec.lines[1].thickness != DefaultThickness+DefaultEraseOffset || rec.lines[1].color != EraseColor {
		t.Errorf("erase line = %+v", rec.lines[1])
	}

	// A second flush reproduces the same picture.
	r.Flush()
	if len(rec.lines) != 2 {
		t.Errorf("lines after second flush = %d, want 2", len(rec.lines))
	}
}

func TestReplayer_SlotOrderAndReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyReplay
	rec := newRecorder()
	r := NewRenderer(cfg, rec)

	for _, slot := range []int{1, 0} {
		r.Feed(slot, Ink(image.Pt(slot*100, 0), false))
		r.Feed(slot, Ink(image.Pt(slot*100+5, 0), false))
	}
	r.Flush()

	if len(rec.lines) != 2 || rec.lines[0].a.X != 0 || rec.lines[1].a.X != 100 {
		t.Fatalf("lines not in slot order: %+v", rec.lines)
	}

	r.Reset(1)
	r.Flush()
	if len(rec.lines) != 1 {
		t.Errorf("lines after reset = %d, want 1", len(rec.lines))
	}
}

func TestReplayer_MaxTrail(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyReplay
	cfg.MaxTrail = 3
	r := newReplayer(cfg.normalize(), newRecorder())

	r.Feed(0, Gap())
	for i := 0; i < 10; i++ {
		r.Feed(0, Ink(image.Pt(i, i), false))
		r.Feed(0, Gap())
		r.Feed(0, Gap())
	}
	if got := r.Len(0); got != 3 {
		t.Errorf("trail length = %d, want 3", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]color.RGBA{
		"red":     Palette["red"],
		"BLUE":    Palette["blue"],
		"green":   Palette["green"],
		"magenta": Palette["green"],
	}
	for name, want := range tests {
		if got := ParseColor(name); got != want {
			t.Errorf("ParseColor(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestVectorSurface_Pixels(t *testing.T) {
	s := NewVectorSurface(100, 100)
	defer s.Close()

	s.Circle(image.Pt(50, 50), 10, Palette["green"])
	r, g, b, _ := s.Image().At(50, 50).RGBA()
	if g>>8 < 200 || r>>8 > 50 || b>>8 > 50 {
		t.Errorf("center pixel = (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}

	_, g, _, _ = s.Image().At(5, 5).RGBA()
	if g>>8 > 10 {
		t.Errorf("background pixel green = %d, want black", g>>8)
	}

	s.Circle(image.Pt(50, 50), 20, EraseColor)
	_, g, _, _ = s.Image().At(50, 50).RGBA()
	if g>>8 > 10 {
		t.Errorf("erased pixel green = %d, want 0", g>>8)
	}

	s.Line(image.Pt(10, 80), image.Pt(90, 80), Palette["red"], 6)
	r, _, _, _ = s.Image().At(50, 80).RGBA()
	if r>>8 < 200 {
		t.Errorf("line pixel red = %d, want ink", r>>8)
	}

	s.Clear()
	r, _, _, _ = s.Image().At(50, 80).RGBA()
	if r>>8 > 10 {
		t.Errorf("pixel after clear red = %d, want 0", r>>8)
	}
}

func TestComposite(t *testing.T) {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 40, 40, 0), 48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()

	surface := NewMatSurface(64, 48)
	defer surface.Close()
	surface.Circle(image.Pt(32, 24), 5, Palette["green"])

	dst := gocv.NewMat()
	defer dst.Close()

	if err := Composite(frame, surface, &dst); err != nil {
		t.Fatalf("Composite() error = %v", err)
	}

	// BGR order: green ink saturates channel 1, background passes through.
	if got := dst.GetVecbAt(24, 32)[1]; got != 255 {
		t.Errorf("inked green channel = %d, want 255", got)
	}
	if got := dst.GetVecbAt(2, 2)[1]; got != 40 {
		t.Errorf("background green channel = %d, want 40", got)
	}

	vector := NewVectorSurface(64, 48)
	defer vector.Close()
	vector.Circle(image.Pt(32, 24), 6, Palette["red"])
	if err := Composite(frame, vector, &dst); err != nil {
		t.Fatalf("Composite() vector error = %v", err)
	}
	if px := dst.GetVecbAt(24, 32); px[2] != 255 || px[0] != 40 {
		t.Errorf("red vector ink = BGR(%d,%d,%d), want red channel saturated and blue untouched", px[0], px[1], px[2])
	}

	small := NewMatSurface(10, 10)
	defer small.Close()
	if err := Composite(frame, small, &dst); err == nil {
		t.Error("Composite() with mismatched size returned nil error")
	}

	if err := Composite(frame, newRecorder(), &dst); err == nil {
		t.Error("Composite() with unsupported surface returned nil error")
	}
}

func TestSnapshot_VectorKeepsChannelOrder(t *testing.T) {
	s := NewVectorSurface(40, 40)
	defer s.Close()
	s.Circle(image.Pt(20, 20), 8, Palette["red"])

	path := filepath.Join(t.TempDir(), "ink.bmp")
	if err := Snapshot(s, path); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		t.Fatal("snapshot could not be read back")
	}
	if px := img.GetVecbAt(20, 20); px[2] != 255 || px[0] != 0 {
		t.Errorf("red ink = BGR(%d,%d,%d), want (0,0,255)", px[0], px[1], px[2])
	}
}
