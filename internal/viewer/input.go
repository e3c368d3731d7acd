package viewer

import (
	"transcriptview/internal/layout"
	"transcriptview/internal/selection"

	"github.com/gdamore/tcell/v2"
)

const (
	wheelStep = 3
	seekStep  = 5.0
)

// handle applies one event and reports whether the session should end.
func (s *Session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tickEvent:
		if s.clock.Advance(ev.when) >= s.duration && s.clock.Playing() {
			s.clock.Pause()
			s.status = "end of transcript"
		}
		s.follow(ev.when)
	case *settleEvent:
		s.relayout()
	case *tcell.EventResize:
		s.width, s.height = ev.Size()
		if s.screen != nil {
			s.screen.Sync()
		}
		if s.resize == nil {
			s.relayout()
		} else {
			s.resize.Trigger()
		}
	case *tcell.EventMouse:
		s.mouse(ev)
	case *tcell.EventKey:
		return s.key(ev)
	}
	return false
}

// docPoint converts a screen cell to document coordinates.
func (s *Session) docPoint(x, y int) layout.Point {
	return layout.Point{X: x, Y: y + s.scrollTop}
}

func (s *Session) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		s.policy.Wheel(-1, s.now())
		s.scrollTo(s.scrollTop - wheelStep)
		return
	case buttons&tcell.WheelDown != 0:
		s.policy.Wheel(1, s.now())
		s.scrollTo(s.scrollTop + wheelStep)
		return
	}

	down := buttons&tcell.Button1 != 0
	if y >= s.panelHeight() {
		if down || !s.pressed {
			return
		}
		// A release below the panel still ends the gesture, on the last row.
		y = s.panelHeight() - 1
	}
	p := s.docPoint(x, y)

	switch {
	case down && !s.pressed:
		s.pressed = true
		if s.buttonShown && s.button.Contains(layout.Point{X: x, Y: y}) {
			s.jumpToActive()
			return
		}
		s.status = ""
		s.engine.PointerDown(p)
	case down:
		s.engine.PointerMove(p)
	case s.pressed:
		s.pressed = false
		s.engine.PointerMove(p)
		s.engine.PointerUp()
	default:
		s.hover(p)
	}
}

func (s *Session) hover(p layout.Point) {
	if s.engine.OverlaysHidden() {
		return
	}
	for _, m := range s.engine.Markers() {
		for _, r := range m.Rects {
			if r.Contains(p) {
				s.engine.Hover(m.HighlightID)
				return
			}
		}
	}
	s.engine.Hover("")
}

func (s *Session) key(ev *tcell.EventKey) bool {
	mods := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyCtrlC:
		s.copy(selection.Key{Rune: 'c', Ctrl: true})
	case tcell.KeyEscape:
		s.engine.Cancel()
	case tcell.KeyEnter:
		s.engine.ConfirmCreate()
	case tcell.KeyLeft:
		s.Seek(s.clock.Position() - seekStep)
	case tcell.KeyRight:
		s.Seek(s.clock.Position() + seekStep)
	case tcell.KeyUp:
		s.policy.Wheel(-1, s.now())
		s.scrollTo(s.scrollTop - 1)
	case tcell.KeyDown:
		s.policy.Wheel(1, s.now())
		s.scrollTo(s.scrollTop + 1)
	case tcell.KeyPgUp:
		s.policy.Wheel(-1, s.now())
		s.scrollTo(s.scrollTop - s.panelHeight())
	case tcell.KeyPgDn:
		s.policy.Wheel(1, s.now())
		s.scrollTo(s.scrollTop + s.panelHeight())
	case tcell.KeyRune:
		r := ev.Rune()
		if mods&(tcell.ModMeta|tcell.ModAlt) != 0 {
			s.copy(selection.Key{Rune: r, Meta: true})
			return false
		}
		switch r {
		case 'q':
			return true
		case ' ':
			s.clock.Toggle(s.now())
		case 'j':
			s.jumpToActive()
		case 'r':
			s.readOnly = !s.readOnly
			s.engine.SetReadOnly(s.readOnly)
		case 'd':
			s.deleteHovered()
		}
	}
	return false
}

func (s *Session) copy(k selection.Key) {
	if s.engine.KeyDown(k) {
		s.status = "copied"
	}
}

func (s *Session) deleteHovered() {
	id := s.engine.Hovered()
	if id == "" || s.readOnly {
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.log.Warn("delete failed", "err", err)
		return
	}
	s.log.Info("clip deleted", "id", id)
	s.status = "clip deleted"
	s.engine.Hover("")
	s.engine.SetHighlights(s.store.List())
}
