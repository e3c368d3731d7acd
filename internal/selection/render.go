package selection

import (
	"transcriptview/internal/highlight"
	"transcriptview/internal/layout"
	"transcriptview/internal/transcript"
)

// CreateLabel prefixes the create affordance's duration.
const CreateLabel = "Make clip "

// Overlay is the painted form of one word range.
type Overlay struct {
	Rects       []layout.Rect
	StartHandle layout.Rect
	EndHandle   layout.Rect
	ShowHandles bool
}

// Marker is a stored highlight ready to paint.
type Marker struct {
	Overlay
	HighlightID string
	Color       highlight.Color
	Selected    bool
}

// Creator is the affordance that turns a pending range into a highlight.
type Creator struct {
	Rect     layout.Rect
	Label    string
	Duration float64
}

// Markers returns the stored highlights in start order with their colors.
// The highlight being resized is left out since the live selection stands
// in for it. Highlights whose words cannot be found are skipped.
func (e *Engine) Markers() []Marker {
	editing := ""
	if e.params != nil {
		editing = e.params.HighlightID
	}
	hs := make([]highlight.Highlight, 0, len(e.highlights))
	for _, h := range e.highlights {
		if editing != "" && h.ID == editing {
			continue
		}
		hs = append(hs, h)
	}

	var out []Marker
	for _, a := range highlight.AssignColors(hs) {
		p, err := e.wordRange(a.Highlight.StartWordOffset, a.Highlight.EndWordOffset)
		if err != nil {
			e.log.Warn("skipping highlight", "id", a.Highlight.ID, "err", err)
			continue
		}
		o, err := e.overlay(p, !e.readOnly)
		if err != nil {
			e.log.Warn("skipping highlight", "id", a.Highlight.ID, "err", err)
			continue
		}
		out = append(out, Marker{
			Overlay:     o,
			HighlightID: a.Highlight.ID,
			Color:       a.Color,
			Selected:    a.Highlight.ID == e.hovered,
		})
	}
	return out
}

// Selection returns the live range. Its handles are shown only while the
// range waits for confirmation in an editable engine.
func (e *Engine) Selection() (Overlay, bool) {
	if e.params == nil {
		return Overlay{}, false
	}
	o, err := e.overlay(*e.params, e.state == PendingCreate && !e.readOnly)
	if err != nil {
		e.log.Debug("live range not drawable", "err", err)
		return Overlay{}, false
	}
	return o, true
}

// Creator returns the create affordance, anchored below the middle of the
// last row of the pending range.
func (e *Engine) Creator() (Creator, bool) {
	if e.state != PendingCreate || e.params == nil || e.readOnly {
		return Creator{}, false
	}
	rects, err := e.layout.RectsForRange(e.params.Start.Anchor, e.params.End.Anchor)
	if err != nil || len(rects) == 0 {
		return Creator{}, false
	}
	last := rects[len(rects)-1]
	first, final := e.params.Start.Word, e.params.End.Word
	if final.ID < first.ID {
		first, final = final, first
	}
	duration := max(final.EndTime-first.StartTime, 0)
	label := CreateLabel + transcript.FormatSeconds(duration)
	return Creator{
		Rect:     layout.Rect{X: last.X + last.W/2, Y: last.Bottom(), W: len([]rune(label)), H: 1},
		Label:    label,
		Duration: duration,
	}, true
}

// HandleAt returns the handle under p. The live selection's handles win
// over stored highlights.
func (e *Engine) HandleAt(p layout.Point) (HandleTarget, bool) {
	if o, ok := e.Selection(); ok && o.ShowHandles {
		if h, ok := o.handleAt(p); ok {
			return HandleTarget{Handle: h}, true
		}
	}
	if e.readOnly || e.state == DraggingHandle {
		return HandleTarget{}, false
	}
	for _, m := range e.Markers() {
		if h, ok := m.handleAt(p); ok {
			return HandleTarget{HighlightID: m.HighlightID, Handle: h}, true
		}
	}
	return HandleTarget{}, false
}

func (o Overlay) handleAt(p layout.Point) (Handle, bool) {
	switch {
	case !o.ShowHandles:
		return 0, false
	case o.StartHandle.Contains(p):
		return HandleStart, true
	case o.EndHandle.Contains(p):
		return HandleEnd, true
	}
	return 0, false
}

func (e *Engine) overlay(p Params, handles bool) (Overlay, error) {
	rects, err := e.layout.RectsForRange(p.Start.Anchor, p.End.Anchor)
	if err != nil {
		return Overlay{}, err
	}
	if len(rects) == 0 {
		return Overlay{}, layout.ErrOutOfRange
	}
	first, last := rects[0], rects[len(rects)-1]
	return Overlay{
		Rects:       rects,
		StartHandle: layout.Rect{X: first.X - 1, Y: first.Y, W: 1, H: 1},
		EndHandle:   layout.Rect{X: last.Right(), Y: last.Y, W: 1, H: 1},
		ShowHandles: handles,
	}, nil
}
