package canvas

import "image"

// stamper draws each segment as soon as its end point arrives.
type stamper struct {
	cfg     Config
	surface Surface
	last    map[int]image.Point
}

func newStamper(cfg Config, surface Surface) *stamper {
	return &stamper{
		cfg:     cfg,
		surface: surface,
		last:    make(map[int]image.Point),
	}
}

func (s *stamper) Feed(slot int, smp Sample) {
	if smp.IsGap() {
		delete(s.last, slot)
		return
	}

	if prev, ok := s.last[slot]; ok {
		s.segment(prev, smp.Point, smp.Erase)
	}
	s.last[slot] = smp.Point
}

func (s *stamper) Flush() {}

func (s *stamper) Reset(slot int) {
	delete(s.last, slot)
}

func (s *stamper) Surface() Surface {
	return s.surface
}

// segment stamps circles every Step pixels along a to b, both ends included.
func (s *stamper) segment(a, b image.Point, erase bool) {
	radius := s.cfg.drawRadius()
	clr := s.cfg.Color
	if erase {
		radius = s.cfg.EraseRadius
		clr = EraseColor
	}

	for _, p := range Interpolate(a, b, s.cfg.Step) {
		s.surface.Circle(p, radius, clr)
	}
}

// Interpolate returns the stamp positions between a and b. The step count is
// the larger axis distance divided by step, never less than one.
func Interpolate(a, b image.Point, step int) []image.Point {
	if step < 1 {
		step = 1
	}
	steps := max(abs(b.X-a.X), abs(b.Y-a.Y)) / step
	if steps == 0 {
		steps = 1
	}

	points := make([]image.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		alpha := float64(i) / float64(steps)
		points = append(points, image.Pt(
			int(float64(a.X)*(1-alpha)+float64(b.X)*alpha),
			int(float64(a.Y)*(1-alpha)+float64(b.Y)*alpha),
		))
	}
	return points
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
