package canvas

import "sort"

// replayer keeps the full sample history and redraws it on every Flush.
// Cost grows with the session; it exists for parity with trail-based drawing.
type replayer struct {
	cfg     Config
	surface Surface
	trails  map[int][]Sample
}

func newReplayer(cfg Config, surface Surface) *replayer {
	return &replayer{
		cfg:     cfg,
		surface: surface,
		trails:  make(map[int][]Sample),
	}
}

func (r *replayer) Feed(slot int, smp Sample) {
	trail := r.trails[slot]
	// Consecutive gaps carry no information.
	if smp.IsGap() && (len(trail) == 0 || trail[len(trail)-1].IsGap()) {
		return
	}

	trail = append(trail, smp)
	if r.cfg.MaxTrail > 0 && len(trail) > r.cfg.MaxTrail {
		trail = trail[len(trail)-r.cfg.MaxTrail:]
	}
	r.trails[slot] = trail
}

func (r *replayer) Flush() {
	r.surface.Clear()

	slots := make([]int, 0, len(r.trails))
	for slot := range r.trails {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	for _, slot := range slots {
		trail := r.trails[slot]
		for i := 1; i < len(trail); i++ {
			a, b := trail[i-1], trail[i]
			if a.IsGap() || b.IsGap() {
				continue
			}
			if b.Erase {
				r.surface.Line(a.Point, b.Point, EraseColor, r.cfg.Thickness+r.cfg.EraseOffset)
			} else {
				r.surface.Line(a.Point, b.Point, r.cfg.Color, r.cfg.Thickness)
			}
		}
	}
}

func (r *replayer) Reset(slot int) {
	delete(r.trails, slot)
}

func (r *replayer) Surface() Surface {
	return r.surface
}

// Len returns the number of retained samples for a slot.
func (r *replayer) Len(slot int) int {
	return len(r.trails[slot])
}
