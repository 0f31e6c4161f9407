package mode

import (
	"testing"
	"time"
)

func TestLatch_FiresOncePerHold(t *testing.T) {
	const hold = 2 * time.Second
	l := NewLatch(Hold(hold), Frames(3))
	start := time.Unix(0, 0)

	fires := 0
	step := 50 * time.Millisecond
	for d := time.Duration(0); d <= 2*hold; d += step {
		if l.Update(true, start.Add(d)) {
			fires++
		}
	}

	if fires != 1 {
		t.Errorf("held for 2T: fired %d times, want 1", fires)
	}
	if l.Armed() {
		t.Error("latch re-armed while gesture still held")
	}
}

func TestLatch_RearmsAfterRelease(t *testing.T) {
	l := NewLatch(Frames(2), Frames(2))
	start := time.Unix(0, 0)
	at := func(i int) time.Time { return start.Add(time.Duration(i) * 33 * time.Millisecond) }

	preds := []bool{
		true, true, // fire
		true, false, true, // brief dropout shorter than off threshold: no re-arm
		false, false, // release
		true, true, // fire again
	}
	want := []bool{false, true, false, false, false, false, false, false, true}

	for i, p := range preds {
		if got := l.Update(p, at(i)); got != want[i] {
			t.Errorf("frame %d: fired = %v, want %v", i, got, want[i])
		}
	}
}

func TestLatch_Reset(t *testing.T) {
	l := NewLatch(Frames(1), Frames(5))
	now := time.Unix(0, 0)

	if !l.Update(true, now) {
		t.Fatal("expected first fire")
	}
	if !l.Held() {
		t.Error("expected Held after fire")
	}

	l.Reset()

	if !l.Armed() || l.Held() {
		t.Errorf("after Reset: armed=%v held=%v, want armed and not held", l.Armed(), l.Held())
	}
	if !l.Update(true, now.Add(time.Millisecond)) {
		t.Error("expected fire after Reset")
	}
}
