package app

import (
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/canvas"
	"github.com/ayusman/mudra/internal/desktop"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/store"
)

// Outputs are the side-effect collaborators of a Session. Nil members are
// replaced with no-op implementations.
type Outputs struct {
	Injector desktop.Injector
	Closer   desktop.Closer
	Prompt   desktop.Prompt
	Journal  Journal
}

// Session turns per-frame hand snapshots into strokes and pointer actions.
// It is not safe for concurrent use; Step is called from the frame loop only.
type Session struct {
	cfg        Config
	classifier *gesture.Classifier
	mapper     *pointer.Mapper
	renderer   canvas.Renderer
	confirmer  *Confirmer

	injector desktop.Injector
	closer   desktop.Closer
	journal  Journal

	slots     []*slot
	lastClick time.Time
	pending   *Task
}

// NewSession creates a Session with every slot inactive.
func NewSession(cfg Config, out Outputs) *Session {
	cfg = cfg.normalize()

	if out.Injector == nil {
		out.Injector = desktop.Nop{}
	}
	if out.Closer == nil {
		out.Closer = desktop.Nop{}
	}
	if out.Prompt == nil {
		out.Prompt = desktop.StaticPrompt(false)
	}
	if out.Journal == nil {
		out.Journal = nopJournal{}
	}

	s := &Session{
		cfg:        cfg,
		classifier: gesture.NewClassifier(cfg.PinchThreshold),
		mapper:     pointer.NewMapper(cfg.Mapper),
		confirmer:  NewConfirmer(out.Prompt, cfg.ConfirmMessage, cfg.ConfirmTimeout),
		injector:   out.Injector,
		closer:     out.Closer,
		journal:    out.Journal,
		slots:      make([]*slot, cfg.MaxHands),
	}
	for i := range s.slots {
		s.slots[i] = newSlot(cfg)
	}
	return s
}

// AttachRenderer sets the stroke renderer. Strokes are dropped until one is attached.
func (s *Session) AttachRenderer(r canvas.Renderer) {
	s.renderer = r
}

// Renderer returns the attached renderer, or nil.
func (s *Session) Renderer() canvas.Renderer {
	return s.renderer
}

// Confirmer returns the close confirmation runner.
func (s *Session) Confirmer() *Confirmer {
	return s.confirmer
}

// Modes returns the stable modes of a slot.
func (s *Session) Modes(i int) Modes {
	if i < 0 || i >= len(s.slots) {
		return Modes{}
	}
	return s.slots[i].modes()
}

// Step processes one frame. hands are in detection order; slots beyond
// len(hands) observe an absent hand.
func (s *Session) Step(hands []detector.Snapshot, frame image.Point, now time.Time) {
	s.drainConfirmation(now)

	for i, sl := range s.slots {
		var hand *detector.Snapshot
		if i < len(hands) {
			hand = &hands[i]
		}
		s.stepSlot(i, sl, hand, frame, now)
	}
}

func (s *Session) stepSlot(i int, sl *slot, hand *detector.Snapshot, frame image.Point, now time.Time) {
	var pred gesture.Predicates
	if hand != nil {
		pred = s.classifier.Classify(hand)
	}

	before := sl.modes()
	drawing := sl.pinch.Update(pred.Pinching, now)
	erasing := sl.erase.Update(pred.HandOpen, now)
	pointing := sl.pointing.Update(pred.Pointing, now)
	closeFired := sl.fist.Update(pred.FistClosed, now)
	s.logTransitions(i, before, sl.modes(), now)

	pointerActive := s.cfg.Pointer && pointing

	if s.cfg.Draw && s.renderer != nil {
		if hand != nil && (drawing || erasing) && !pointerActive {
			tip := hand.Pixel(detector.IndexTip, frame)
			s.renderer.Feed(i, canvas.Ink(tip, erasing))
		} else {
			s.renderer.Feed(i, canvas.Gap())
		}
	}

	if !s.cfg.Pointer {
		return
	}

	// Only the first slot drives the system pointer.
	if i == 0 {
		if pointerActive && hand != nil {
			tip := hand.Points[detector.IndexTip]
			var p image.Point
			p, sl.cursor = s.mapper.Map(sl.cursor, tip.X, tip.Y)
			if err := s.injector.MoveTo(p.X, p.Y); err != nil {
				log.Printf("Pointer move failed: %v", err)
			}
			if drawing && !before.Draw {
				s.click(i, p, now)
			}
		} else {
			sl.cursor = pointer.State{}
		}
	}

	if closeFired {
		s.proposeClose(i, now)
	}
}

func (s *Session) click(i int, at image.Point, now time.Time) {
	if !s.lastClick.IsZero() && now.Sub(s.lastClick) < s.cfg.ClickCooldown {
		return
	}
	s.lastClick = now

	if err := s.injector.Click(); err != nil {
		log.Printf("Click failed: %v", err)
		return
	}
	log.Printf("Click at (%d, %d) (slot %d)", at.X, at.Y, i)
	s.journal.Record(store.EventClick, i, fmt.Sprintf("%d,%d", at.X, at.Y), now)
}

func (s *Session) proposeClose(i int, now time.Time) {
	if s.pending != nil {
		return
	}
	task := s.confirmer.Start()
	if task == nil {
		return
	}
	s.pending = task

	log.Printf("Close requested (slot %d), waiting for confirmation", i)
	s.journal.Record(store.EventClosePrompt, i, "", now)
}

// drainConfirmation collects a finished prompt without blocking.
func (s *Session) drainConfirmation(now time.Time) {
	if s.pending == nil {
		return
	}

	var ans Answer
	select {
	case ans = <-s.pending.Result():
	default:
		return
	}
	s.pending = nil

	switch {
	case ans.Err != nil:
		log.Printf("Close confirmation failed: %v", ans.Err)
		s.journal.Record(store.EventCloseDeclined, 0, ans.Err.Error(), now)
	case !ans.Confirmed:
		log.Println("Close declined")
		s.journal.Record(store.EventCloseDeclined, 0, "", now)
	default:
		log.Println("Close confirmed")
		s.journal.Record(store.EventCloseConfirmed, 0, "", now)
		if err := s.closer.RequestClose(); err != nil {
			log.Printf("Close request failed: %v", err)
		}
	}
}

func (s *Session) logTransitions(i int, before, after Modes, now time.Time) {
	report := func(name string, was, is bool) {
		if was == is {
			return
		}
		state, kind := "off", store.EventModeOff
		if is {
			state, kind = "on", store.EventModeOn
		}
		log.Printf("%s mode %s (slot %d)", name, state, i)
		s.journal.Record(kind, i, strings.ToLower(name), now)
	}

	if s.cfg.Draw {
		report("Draw", before.Draw, after.Draw)
		report("Erase", before.Erase, after.Erase)
	}
	if s.cfg.Pointer {
		report("Pointer", before.Pointer, after.Pointer)
	}
}

// Status summarizes the active modes of every slot for the overlay.
func (s *Session) Status() string {
	parts := make([]string, 0, len(s.slots))
	for i, sl := range s.slots {
		m := sl.modes()
		var active []string
		if m.Draw {
			active = append(active, "draw")
		}
		if m.Erase {
			active = append(active, "erase")
		}
		if s.cfg.Pointer && m.Pointer {
			active = append(active, "pointer")
		}
		if len(active) == 0 {
			active = append(active, "idle")
		}
		parts = append(parts, fmt.Sprintf("%d:%s", i, strings.Join(active, "+")))
	}
	return strings.Join(parts, " ")
}
