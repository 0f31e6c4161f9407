// Package mode turns noisy per-frame gesture predicates into stable modes.
package mode

import "time"

// Threshold is how long a predicate run must last before a transition is accepted.
// Both parts must be satisfied; the zero Hold means frames alone decide.
type Threshold struct {
	Frames int
	Hold   time.Duration
}

// Frames returns a frame-count threshold.
func Frames(n int) Threshold {
	return Threshold{Frames: n}
}

// Hold returns a wall-clock threshold.
func Hold(d time.Duration) Threshold {
	return Threshold{Frames: 1, Hold: d}
}

func (t Threshold) normalize() Threshold {
	if t.Frames < 1 {
		t.Frames = 1
	}
	if t.Hold < 0 {
		t.Hold = 0
	}
	return t
}

func (t Threshold) reached(count int, held time.Duration) bool {
	return count >= t.Frames && held >= t.Hold
}

// Controller is a two-state hysteresis filter. INACTIVE is the initial state.
// It must see exactly one observation per frame, including frames without a hand.
type Controller struct {
	on, off Threshold

	active   bool
	onCount  int
	offCount int
	runStart time.Time
}

// NewController creates an inactive Controller.
func NewController(on, off Threshold) *Controller {
	return &Controller{
		on:  on.normalize(),
		off: off.normalize(),
	}
}

// Update consumes one observation and returns the stable mode.
func (c *Controller) Update(predicate bool, now time.Time) bool {
	if predicate {
		if c.onCount == 0 {
			c.runStart = now
		}
		c.onCount++
		c.offCount = 0

		if !c.active && c.on.reached(c.onCount, now.Sub(c.runStart)) {
			c.active = true
		}
		return c.active
	}

	if c.offCount == 0 {
		c.runStart = now
	}
	c.offCount++
	c.onCount = 0

	if c.active && c.off.reached(c.offCount, now.Sub(c.runStart)) {
		c.active = false
	}
	return c.active
}

// Active returns the current stable mode.
func (c *Controller) Active() bool {
	return c.active
}

// Counts returns the on and off run lengths. At most one is nonzero.
func (c *Controller) Counts() (on, off int) {
	return c.onCount, c.offCount
}

// Reset returns the controller to INACTIVE with empty counters.
func (c *Controller) Reset() {
	c.active = false
	c.onCount = 0
	c.offCount = 0
	c.runStart = time.Time{}
}
