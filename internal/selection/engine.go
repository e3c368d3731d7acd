// Package selection maps pointer gestures over rendered transcript text to
// word ranges and turns finished gestures into highlight commits.
//
// The engine never touches the screen. It asks a Layout where text is and
// what lies under a point, and reports finished gestures to a Sink. All
// methods must be called from one goroutine.
package selection

import (
	"io"
	"log/slog"

	"transcriptview/internal/highlight"
	"transcriptview/internal/layout"
	"transcriptview/internal/transcript"
)

// Layout answers geometry queries about the rendered transcript.
type Layout interface {
	// RectsForRange returns one rect per rendered row between a and b.
	RectsForRange(a, b layout.Anchor) ([]layout.Rect, error)
	// AnchorAtPoint returns the caret position under p.
	AnchorAtPoint(p layout.Point) (layout.Anchor, error)
	// Contains reports whether p lies inside the transcript panel.
	Contains(p layout.Point) bool
}

// Sink receives the engine's commits.
type Sink interface {
	CreateHighlight(startWordID, endWordID int)
	UpdateHighlight(id string, startWordID, endWordID int)
	Seek(timestamp float64)
}

// Clipboard receives copied transcript text.
type Clipboard interface {
	WriteText(text string) error
}

// State is the interaction state of the engine.
type State int

const (
	Idle           State = iota
	Selecting            // a fresh range is being dragged out
	DraggingHandle       // one edge of an existing range is being moved
	PendingCreate        // a fresh range waits for the create affordance
)

func (s State) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case DraggingHandle:
		return "dragging-handle"
	case PendingCreate:
		return "pending-create"
	}
	return "idle"
}

// Handle names an edge of a range.
type Handle int

const (
	HandleStart Handle = iota
	HandleEnd
)

// Opposite returns the other edge.
func (h Handle) Opposite() Handle {
	if h == HandleStart {
		return HandleEnd
	}
	return HandleStart
}

func (h Handle) String() string {
	if h == HandleEnd {
		return "end"
	}
	return "start"
}

// HandleTarget identifies a grabbed handle. An empty HighlightID targets
// the live selection.
type HandleTarget struct {
	HighlightID string
	Handle      Handle
}

// Boundary is one edge of a range: the word it snaps to and the caret
// position of that snap.
type Boundary struct {
	Word   transcript.Word
	Anchor layout.Anchor
}

// Params is the live word range. HighlightID is set while an existing
// highlight is being resized.
type Params struct {
	Start, End  Boundary
	HighlightID string
}

// WordIDs returns the boundary word ids with the document-earlier one first.
func (p Params) WordIDs() (start, end int) {
	start, end = p.Start.Word.ID, p.End.Word.ID
	if start > end {
		start, end = end, start
	}
	return start, end
}

// Key is a key press forwarded by the host.
type Key struct {
	Rune rune
	Ctrl bool
	Meta bool
}

// IsCopy reports whether k is Ctrl+C or Cmd+C.
func (k Key) IsCopy() bool {
	return (k.Ctrl || k.Meta) && (k.Rune == 'c' || k.Rune == 'C')
}

// nativeSelection stands in for the host's text selection: anchor stays
// where the gesture began, focus follows the pointer.
type nativeSelection struct {
	anchor, focus layout.Anchor
}

func (n nativeSelection) collapsed() bool { return n.anchor == n.focus }

// Options configures an Engine.
type Options struct {
	ReadOnly  bool
	Logger    *slog.Logger
	Clipboard Clipboard
}

// Engine is the selection state machine.
type Engine struct {
	layout    Layout
	sink      Sink
	clipboard Clipboard
	log       *slog.Logger
	readOnly  bool

	index      *transcript.Index
	highlights []highlight.Highlight

	state   State
	params  *Params
	native  *nativeSelection
	moving  Handle
	fixed   layout.Anchor
	hovered string

	overlaysHidden bool
}

// New returns an idle engine over t.
func New(t *transcript.Transcript, l Layout, sink Sink, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		layout:    l,
		sink:      sink,
		clipboard: opts.Clipboard,
		log:       logger,
		readOnly:  opts.ReadOnly,
		index:     transcript.NewIndex(t),
	}
}

// SetTranscript swaps the model and drops any gesture in progress.
func (e *Engine) SetTranscript(t *transcript.Transcript) {
	e.index = transcript.NewIndex(t)
	e.reset()
	e.hovered = ""
}

// SetLayout swaps the geometry provider, e.g. after a resize. Anchors do
// not depend on geometry, so the live range survives.
func (e *Engine) SetLayout(l Layout) { e.layout = l }

// SetHighlights replaces the host's highlight list.
func (e *Engine) SetHighlights(hs []highlight.Highlight) {
	e.highlights = append(e.highlights[:0:0], hs...)
}

// SetReadOnly toggles editing. Read-only engines still select and copy.
func (e *Engine) SetReadOnly(readOnly bool) { e.readOnly = readOnly }

// Hover marks a highlight as selected; an empty id clears the mark.
func (e *Engine) Hover(id string) { e.hovered = id }

// State returns the interaction state.
func (e *Engine) State() State { return e.state }

// Params returns a copy of the live range.
func (e *Engine) Params() (Params, bool) {
	if e.params == nil {
		return Params{}, false
	}
	return *e.params, true
}

// Moving returns the edge that follows the pointer while a handle is dragged.
func (e *Engine) Moving() Handle { return e.moving }

// OverlaysHidden reports whether highlight boxes should be ignored by the
// host's hit-testing so they do not block text selection.
func (e *Engine) OverlaysHidden() bool { return e.overlaysHidden }

// Hovered returns the id of the marked highlight.
func (e *Engine) Hovered() string { return e.hovered }

// PointerDown handles a press. Presses on the create affordance confirm
// it, presses on a handle start a resize and any other press inside the
// panel starts a fresh selection. Presses outside the panel are ignored.
func (e *Engine) PointerDown(p layout.Point) {
	if c, ok := e.Creator(); ok && c.Rect.Contains(p) {
		e.ConfirmCreate()
		return
	}
	if target, ok := e.HandleAt(p); ok {
		e.HandleDown(target)
		return
	}
	if !e.layout.Contains(p) {
		return
	}

	e.params = nil
	e.hovered = ""
	e.overlaysHidden = true
	e.state = Selecting
	e.native = nil
	a, err := e.layout.AnchorAtPoint(p)
	if err != nil {
		e.log.Debug("selection starts off text", "x", p.X, "y", p.Y, "err", err)
		return
	}
	e.native = &nativeSelection{anchor: a, focus: a}
}

// HandleDown starts resizing a highlight, or the live selection when
// target.HighlightID is empty. It reports whether a drag started.
func (e *Engine) HandleDown(target HandleTarget) bool {
	if e.readOnly {
		return false
	}
	var base Params
	if target.HighlightID == "" {
		if e.state != PendingCreate || e.params == nil {
			return false
		}
		base = *e.params
	} else {
		p, err := e.highlightParams(target.HighlightID)
		if err != nil {
			e.log.Warn("cannot edit highlight", "id", target.HighlightID, "err", err)
			return false
		}
		base = p
	}

	fixed, moving := base.End.Anchor, base.Start.Anchor
	if target.Handle == HandleEnd {
		fixed, moving = base.Start.Anchor, base.End.Anchor
	}
	e.params = &base
	e.fixed = fixed
	e.moving = target.Handle
	e.native = &nativeSelection{anchor: fixed, focus: moving}
	e.state = DraggingHandle
	e.overlaysHidden = true
	e.log.Debug("handle grabbed", "highlight", target.HighlightID, "handle", target.Handle)
	return true
}

// PointerMove extends the native selection to p and re-derives the word
// range from it. Failures keep the previous range.
func (e *Engine) PointerMove(p layout.Point) {
	if e.state != Selecting && e.state != DraggingHandle {
		return
	}
	a, err := e.layout.AnchorAtPoint(p)
	if err != nil {
		e.log.Debug("pointer off text", "x", p.X, "y", p.Y, "err", err)
		return
	}
	if e.native == nil {
		e.native = &nativeSelection{anchor: a, focus: a}
	}

	if e.state == DraggingHandle && e.reversed(a) {
		e.moving = e.moving.Opposite()
		e.log.Debug("handle crossed its counterpart", "now", e.moving)
	}
	e.native.focus = a

	if e.state == Selecting && e.native.collapsed() {
		e.params = nil
		return
	}
	params, err := e.boundaries(*e.native)
	if err != nil {
		e.log.Debug("range update aborted", "err", err)
		return
	}
	if e.params != nil {
		params.HighlightID = e.params.HighlightID
	}
	e.params = &params
}

// PointerUp finishes the gesture. A resize commits an update at once; a
// fresh range waits for ConfirmCreate; a click without a drag seeks to the
// clicked word.
func (e *Engine) PointerUp() {
	if e.state != Selecting && e.state != DraggingHandle {
		return
	}
	e.overlaysHidden = false
	native := e.native
	e.native = nil

	switch {
	case e.params != nil && e.params.HighlightID != "":
		start, end := e.params.WordIDs()
		e.log.Info("highlight updated", "id", e.params.HighlightID, "start", start, "end", end)
		e.sink.UpdateHighlight(e.params.HighlightID, start, end)
		e.reset()
	case e.params != nil:
		e.state = PendingCreate
	default:
		if e.state == Selecting && native != nil && native.collapsed() {
			e.click(native.anchor)
		}
		e.reset()
	}
}

// ConfirmCreate commits the pending range as a new highlight.
func (e *Engine) ConfirmCreate() bool {
	if e.state != PendingCreate || e.params == nil || e.readOnly {
		return false
	}
	start, end := e.params.WordIDs()
	e.log.Info("highlight created", "start", start, "end", end)
	e.sink.CreateHighlight(start, end)
	e.reset()
	return true
}

// Cancel drops the live range without committing.
func (e *Engine) Cancel() {
	e.reset()
}

// KeyDown copies the live range on Ctrl/Cmd+C. It reports whether the key
// was consumed.
func (e *Engine) KeyDown(k Key) bool {
	if !k.IsCopy() || e.params == nil {
		return false
	}
	start, end := e.params.WordIDs()
	text := e.index.TextBetween(start, end)
	if e.clipboard == nil {
		e.log.Debug("no clipboard configured")
		return true
	}
	if err := e.clipboard.WriteText(text); err != nil {
		e.log.Warn("copy failed", "err", err)
		return true
	}
	e.log.Debug("copied selection", "start", start, "end", end, "chars", len(text))
	return true
}

func (e *Engine) click(a layout.Anchor) {
	s, ok := e.index.Sentence(a.Sentence)
	if !ok {
		return
	}
	w, _, err := transcript.NearestWord(a.Offset, s.Words, transcript.RoundTop)
	if err != nil {
		e.log.Debug("click off word", "err", err)
		return
	}
	e.sink.Seek(w.StartTime)
}

func (e *Engine) reset() {
	e.state = Idle
	e.params = nil
	e.native = nil
	e.moving = HandleStart
	e.overlaysHidden = false
}
