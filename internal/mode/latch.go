package mode

import "time"

// Latch fires once per sustained-then-released gesture cycle.
//
// It fires on the observation where its controller turns active and stays
// disarmed until the controller has turned inactive again.
type Latch struct {
	ctrl  *Controller
	fired bool
}

// NewLatch creates an armed Latch over a fresh Controller.
func NewLatch(on, off Threshold) *Latch {
	return &Latch{ctrl: NewController(on, off)}
}

// Update consumes one observation and reports whether the latch fired.
func (l *Latch) Update(predicate bool, now time.Time) bool {
	if !l.ctrl.Update(predicate, now) {
		l.fired = false
		return false
	}
	if l.fired {
		return false
	}
	l.fired = true
	return true
}

// Armed reports whether the next activation would fire.
func (l *Latch) Armed() bool {
	return !l.fired
}

// Held reports whether the underlying gesture is currently in its active state.
func (l *Latch) Held() bool {
	return l.ctrl.Active()
}

// Reset re-arms the latch and clears its controller.
func (l *Latch) Reset() {
	l.ctrl.Reset()
	l.fired = false
}
