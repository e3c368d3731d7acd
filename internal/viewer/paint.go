package viewer

import (
	"fmt"

	"transcriptview/internal/highlight"
	"transcriptview/internal/layout"
	"transcriptview/internal/selection"
	"transcriptview/internal/transcript"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	jumpLabelDown = " ↓ current word (j) "
	jumpLabelUp   = " ↑ current word (j) "
)

var (
	labelStyle  = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorGray)
	bulletStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Reverse(true)
	buttonStyle = tcell.StyleDefault.Reverse(true).Bold(true)
)

func (s *Session) draw() {
	if s.screen == nil {
		return
	}
	scr := s.screen
	scr.Clear()
	panel := s.panelHeight()

	for _, ln := range s.grid.Lines() {
		y := ln.Row - s.scrollTop
		if y < 0 || y >= panel {
			continue
		}
		style := tcell.StyleDefault
		if ln.Kind == layout.LineLabel {
			style = labelStyle
		}
		if ln.Bullet {
			scr.SetContent(s.cfg.Layout.LeftMargin, y, layout.BulletGlyph, nil, bulletStyle)
		}
		drawText(scr, ln.Col, y, ln.Text, style)
	}

	for _, m := range s.engine.Markers() {
		s.drawMarker(m.Overlay, m.Color, m.Selected)
	}
	if o, ok := s.engine.Selection(); ok {
		s.restyle(o.Rects, func(st tcell.Style) tcell.Style { return st.Reverse(true) })
		if o.ShowHandles {
			s.drawHandles(o, tcell.StyleDefault.Bold(true))
		}
	}
	if rect, ok := s.activeRect(); ok {
		s.restyle([]layout.Rect{rect}, func(st tcell.Style) tcell.Style {
			return st.Bold(true).Underline(true)
		})
	}
	if c, ok := s.engine.Creator(); ok {
		drawText(scr, c.Rect.X, c.Rect.Y-s.scrollTop, c.Label, buttonStyle)
	}
	s.drawJumpButton()
	s.drawStatus()
	scr.Show()
}

func (s *Session) drawMarker(o selection.Overlay, c highlight.Color, selected bool) {
	bg := tcell.GetColor(c.Highlight)
	s.restyle(o.Rects, func(st tcell.Style) tcell.Style {
		st = st.Background(bg).Foreground(tcell.ColorBlack)
		if selected {
			st = st.Underline(true)
		}
		return st
	})
	if o.ShowHandles {
		s.drawHandles(o, tcell.StyleDefault.Foreground(tcell.GetColor(c.Caret)).Bold(true))
	}
}

func (s *Session) drawHandles(o selection.Overlay, style tcell.Style) {
	s.screen.SetContent(o.StartHandle.X, o.StartHandle.Y-s.scrollTop, '[', nil, style)
	s.screen.SetContent(o.EndHandle.X, o.EndHandle.Y-s.scrollTop, ']', nil, style)
}

// restyle changes the style of the cells under rects, keeping their runes.
func (s *Session) restyle(rects []layout.Rect, fn func(tcell.Style) tcell.Style) {
	panel := s.panelHeight()
	for _, r := range rects {
		y := r.Y - s.scrollTop
		if y < 0 || y >= panel {
			continue
		}
		for x := r.X; x < r.Right(); {
			mainc, combc, st, w := s.screen.GetContent(x, y)
			s.screen.SetContent(x, y, mainc, combc, fn(st))
			x += max(w, 1)
		}
	}
}

func (s *Session) drawJumpButton() {
	if !s.buttonShown {
		s.button = layout.Rect{}
		return
	}
	label, y := jumpLabelDown, s.panelHeight()-1
	if s.buttonOnTop {
		label, y = jumpLabelUp, 0
	}
	w := runewidth.StringWidth(label)
	x := max((s.width-w)/2, 0)
	s.button = layout.Rect{X: x, Y: y, W: w, H: 1}
	drawText(s.screen, x, y, label, buttonStyle)
}

func (s *Session) drawStatus() {
	y := s.height - 1
	for x := 0; x < s.width; x++ {
		s.screen.SetContent(x, y, ' ', nil, statusStyle)
	}
	glyph := "▶"
	if !s.clock.Playing() {
		glyph = "❚❚"
	}
	line := fmt.Sprintf(" %s %s / %s  %s", glyph,
		transcript.FormatSeconds(s.clock.Position()),
		transcript.FormatSeconds(s.duration),
		s.engine.State())
	if s.readOnly {
		line += "  read-only"
	}
	if s.status != "" {
		line += "  " + s.status
	}
	drawText(s.screen, 0, y, line, statusStyle)
}

func drawText(scr tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		scr.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
