package detector

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestSnapshot_Pixel(t *testing.T) {
	var s Snapshot
	s.Points[IndexTip] = Point3D{X: 0.5, Y: 0.25}

	got := s.Pixel(IndexTip, image.Pt(640, 480))
	if got != image.Pt(320, 120) {
		t.Errorf("Pixel() = %v, want (320,120)", got)
	}
}

func TestMoveTo(t *testing.T) {
	s := MoveTo(OpenPalmLandmarks(), 0.2, 0.3)

	if math.Abs(s.Points[IndexTip].X-0.2) > epsilon || math.Abs(s.Points[IndexTip].Y-0.3) > epsilon {
		t.Errorf("index tip = %+v, want (0.2, 0.3)", s.Points[IndexTip])
	}

	orig := OpenPalmLandmarks()
	wantDX := orig.Points[Wrist].X - orig.Points[IndexTip].X
	gotDX := s.Points[Wrist].X - s.Points[IndexTip].X
	if math.Abs(gotDX-wantDX) > epsilon {
		t.Errorf("hand shape changed: wrist offset %f, want %f", gotDX, wantDX)
	}
}

func TestPosePresets(t *testing.T) {
	extended := func(s Snapshot, f Finger) bool {
		return s.Points[f.Tip].Y < s.Points[f.Joint].Y
	}

	tests := []struct {
		name string
		pose Snapshot
		want [4]bool
	}{
		{name: "open palm", pose: OpenPalmLandmarks(), want: [4]bool{true, true, true, true}},
		{name: "fist", pose: FistLandmarks(), want: [4]bool{false, false, false, false}},
		{name: "pointing", pose: PointingLandmarks(), want: [4]bool{true, false, false, false}},
		{name: "pinch", pose: PinchLandmarks(), want: [4]bool{true, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, f := range Fingers {
				if got := extended(tt.pose, f); got != tt.want[i] {
					t.Errorf("finger %d extended = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}

	t.Run("pinch thumb touches index", func(t *testing.T) {
		p := PinchLandmarks()
		dx := p.Points[ThumbTip].X - p.Points[IndexTip].X
		dy := p.Points[ThumbTip].Y - p.Points[IndexTip].Y
		if d := math.Hypot(dx, dy); d > 0.02 {
			t.Errorf("thumb-index distance = %f, want <= 0.02", d)
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]Snapshot{FistLandmarks(), OpenPalmLandmarks()})

		for i := 0; i < 3; i++ {
			hands, err := mock.Detect(nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(hands) != 2 {
				t.Errorf("call %d: expected 2 hands, got %d", i, len(hands))
			}
		}
	})

	t.Run("plays back a sequence", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetSequence([][]Snapshot{
			{PinchLandmarks()},
			nil,
			{FistLandmarks(), OpenPalmLandmarks()},
		})

		wantCounts := []int{1, 0, 2, 0, 0}
		for i, want := range wantCounts {
			hands, _ := mock.Detect(nil)
			if len(hands) != want {
				t.Errorf("call %d: got %d hands, want %d", i, len(hands), want)
			}
		}
		if mock.Calls() != len(wantCounts) {
			t.Errorf("Calls() = %d, want %d", mock.Calls(), len(wantCounts))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0xff, 0xd8, 0x01, 0x02}

	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("writeFrame() error = %v", err)
	}

	out := buf.Bytes()
	if len(out) != 4+len(payload) {
		t.Fatalf("wrote %d bytes, want %d", len(out), 4+len(payload))
	}
	if n := binary.BigEndian.Uint32(out[:4]); n != uint32(len(payload)) {
		t.Errorf("length prefix = %d, want %d", n, len(payload))
	}
	if !bytes.Equal(out[4:], payload) {
		t.Errorf("payload = %v, want %v", out[4:], payload)
	}
}

func TestDecodeResponse(t *testing.T) {
	t.Run("parses hands", func(t *testing.T) {
		line := []byte(`{"hands":[{"points":[{"x":0.1,"y":0.2,"z":0.0},{"x":0.3,"y":0.4,"z":0.1}],"handedness":"Left","score":0.9}]}` + "\n")

		hands, err := decodeResponse(line, 2)
		if err != nil {
			t.Fatalf("decodeResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("got %d hands, want 1", len(hands))
		}
		h := hands[0]
		if h.Handedness != "Left" || h.Score != 0.9 {
			t.Errorf("got handedness %q score %f", h.Handedness, h.Score)
		}
		if h.Points[1] != (Point3D{X: 0.3, Y: 0.4, Z: 0.1}) {
			t.Errorf("point 1 = %+v", h.Points[1])
		}
		if h.Points[2] != (Point3D{}) {
			t.Errorf("missing point should stay zero, got %+v", h.Points[2])
		}
	})

	t.Run("truncates to max hands", func(t *testing.T) {
		line := []byte(`{"hands":[{"points":[]},{"points":[]},{"points":[]}]}`)

		hands, err := decodeResponse(line, 2)
		if err != nil {
			t.Fatalf("decodeResponse() error = %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("got %d hands, want 2", len(hands))
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := decodeResponse([]byte("not json"), 2); err == nil {
			t.Error("expected error for invalid response")
		}
	})
}

func TestNewMediaPipeDetector_MissingScript(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := NewMediaPipeDetector(DefaultConfig())
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}
