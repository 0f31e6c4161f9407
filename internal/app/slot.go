package app

import (
	"github.com/ayusman/mudra/internal/mode"
	"github.com/ayusman/mudra/internal/pointer"
)

// slot is the interaction state for one detection-order hand position. Hands
// are bound to slots by the order the estimator reports them, so identity is
// lost when hands cross or one disappears.
type slot struct {
	pinch    *mode.Controller
	erase    *mode.Controller
	pointing *mode.Controller
	fist     *mode.Latch

	cursor pointer.State
}

func newSlot(cfg Config) *slot {
	return &slot{
		pinch:    mode.NewController(cfg.ModeOn, cfg.ModeOff),
		erase:    mode.NewController(cfg.ModeOn, cfg.ModeOff),
		pointing: mode.NewController(cfg.ModeOn, cfg.ModeOff),
		fist:     mode.NewLatch(cfg.CloseOn, cfg.ModeOff),
	}
}

// Modes is a read-only view of a slot's stable modes.
type Modes struct {
	Draw    bool
	Erase   bool
	Pointer bool
	Fist    bool
}

func (s *slot) modes() Modes {
	return Modes{
		Draw:    s.pinch.Active(),
		Erase:   s.erase.Active(),
		Pointer: s.pointing.Active(),
		Fist:    s.fist.Held(),
	}
}
