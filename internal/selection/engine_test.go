package selection

import (
	"errors"
	"fmt"
	"testing"

	"transcriptview/internal/highlight"
	"transcriptview/internal/layout"
	"transcriptview/internal/transcript"
)

const (
	testSentences = 6
	testWords     = 5
)

// testTranscript has six sentences of five words "wNN", the last word of
// each ending in a period. Word i starts at i seconds, so inside a
// sentence word k starts at offset 4k.
func testTranscript(t *testing.T) *transcript.Transcript {
	t.Helper()
	var words []transcript.ExternalWord
	for i := 0; i < testSentences*testWords; i++ {
		text := fmt.Sprintf("w%02d", i)
		if i%testWords == testWords-1 {
			text += "."
		}
		words = append(words, transcript.ExternalWord{
			Text:           text,
			StartTimestamp: float64(i),
			EndTimestamp:   float64(i) + 0.5,
		})
	}
	tr, err := transcript.Build([]transcript.ExternalParagraph{{Speaker: "A", Words: words}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tr
}

// rowLayout puts sentence n on row n with one cell per rune.
type rowLayout struct {
	idx *transcript.Index
}

func (l rowLayout) textLen(id int) (int, bool) {
	s, ok := l.idx.Sentence(id)
	if !ok {
		return 0, false
	}
	return transcript.TextLen(s), true
}

func (l rowLayout) Contains(p layout.Point) bool {
	return p.X >= 0 && p.X < 40 && p.Y >= 0 && p.Y < testSentences
}

func (l rowLayout) AnchorAtPoint(p layout.Point) (layout.Anchor, error) {
	n, ok := l.textLen(p.Y)
	if !ok || p.X < 0 {
		return layout.Anchor{}, layout.ErrNoText
	}
	return layout.Anchor{Sentence: p.Y, Offset: min(p.X, n)}, nil
}

func (l rowLayout) RectsForRange(a, b layout.Anchor) ([]layout.Rect, error) {
	a, b = layout.Ordered(a, b)
	var rects []layout.Rect
	for s := a.Sentence; s <= b.Sentence; s++ {
		n, ok := l.textLen(s)
		if !ok {
			return nil, layout.ErrOutOfRange
		}
		from, to := 0, n
		if s == a.Sentence {
			from = a.Offset
		}
		if s == b.Sentence {
			to = b.Offset
		}
		if from > n || to > n {
			return nil, layout.ErrOutOfRange
		}
		rects = append(rects, layout.Rect{X: from, Y: s, W: to - from, H: 1})
	}
	return rects, nil
}

type commit struct {
	id         string
	start, end int
}

type fakeSink struct {
	creates []commit
	updates []commit
	seeks   []float64
}

func (s *fakeSink) CreateHighlight(start, end int) {
	s.creates = append(s.creates, commit{start: start, end: end})
}

func (s *fakeSink) UpdateHighlight(id string, start, end int) {
	s.updates = append(s.updates, commit{id: id, start: start, end: end})
}

func (s *fakeSink) Seek(ts float64) { s.seeks = append(s.seeks, ts) }

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newTestEngine(t *testing.T, opts Options) (*Engine, *fakeSink) {
	t.Helper()
	tr := testTranscript(t)
	sink := &fakeSink{}
	return New(tr, rowLayout{idx: transcript.NewIndex(tr)}, sink, opts), sink
}

// wordPoint is a point inside word id.
func wordPoint(id int) layout.Point {
	return layout.Point{X: 4*(id%testWords) + 1, Y: id / testWords}
}

func drag(e *Engine, from, to layout.Point) {
	e.PointerDown(from)
	e.PointerMove(to)
	e.PointerUp()
}

func TestEngine_CreateFlow(t *testing.T) {
	e, sink := newTestEngine(t, Options{})

	drag(e, layout.Point{X: 8, Y: 0}, layout.Point{X: 2, Y: 1})
	if e.State() != PendingCreate {
		t.Fatalf("state = %v, want pending-create", e.State())
	}
	if len(sink.creates) != 0 {
		t.Fatalf("created before confirmation: %+v", sink.creates)
	}
	p, ok := e.Params()
	if !ok {
		t.Fatal("no live range")
	}
	if start, end := p.WordIDs(); start != 2 || end != 5 {
		t.Errorf("range = [%d, %d], want [2, 5]", start, end)
	}

	if !e.ConfirmCreate() {
		t.Fatal("ConfirmCreate refused")
	}
	if len(sink.creates) != 1 || sink.creates[0] != (commit{start: 2, end: 5}) {
		t.Errorf("creates = %+v", sink.creates)
	}
	if len(sink.updates) != 0 {
		t.Errorf("updates = %+v", sink.updates)
	}
	if e.State() != Idle {
		t.Errorf("state after create = %v", e.State())
	}
	if e.ConfirmCreate() {
		t.Error("second ConfirmCreate should be refused")
	}
}

func TestEngine_BackwardDragIsNormalized(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	drag(e, wordPoint(12), wordPoint(3))
	p, ok := e.Params()
	if !ok {
		t.Fatal("no live range")
	}
	if start, end := p.WordIDs(); start != 3 || end != 12 {
		t.Errorf("range = [%d, %d], want [3, 12]", start, end)
	}
	if p.End.Anchor.Before(p.Start.Anchor) {
		t.Errorf("start %+v after end %+v", p.Start.Anchor, p.End.Anchor)
	}
}

func TestEngine_CreatorConfirmsOnPointerDown(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	drag(e, layout.Point{X: 8, Y: 0}, layout.Point{X: 2, Y: 1})

	c, ok := e.Creator()
	if !ok {
		t.Fatal("no create affordance")
	}
	if c.Label != "Make clip 3s" {
		t.Errorf("label = %q", c.Label)
	}
	if c.Rect.Y != 2 {
		t.Errorf("affordance row = %d, want below the last range row", c.Rect.Y)
	}
	e.PointerDown(layout.Point{X: c.Rect.X, Y: c.Rect.Y})
	if len(sink.creates) != 1 {
		t.Fatalf("creates = %+v", sink.creates)
	}
}

func TestEngine_PendingDiscardedByNewPress(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	drag(e, wordPoint(2), wordPoint(5))

	e.PointerDown(layout.Point{X: 30, Y: 5})
	if e.State() != Selecting {
		t.Fatalf("state = %v, want selecting", e.State())
	}
	if _, ok := e.Params(); ok {
		t.Error("pending range should be dropped")
	}
	e.PointerUp()
	if len(sink.creates) != 0 {
		t.Errorf("creates = %+v", sink.creates)
	}
}

func TestEngine_PressOutsidePanelKeepsPending(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	drag(e, wordPoint(2), wordPoint(5))
	e.PointerDown(layout.Point{X: 100, Y: 100})
	if e.State() != PendingCreate {
		t.Errorf("state = %v, want pending-create", e.State())
	}
}

func TestEngine_ResizeStartHandle(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	e.SetHighlights([]highlight.Highlight{{ID: "h1", StartWordOffset: 10, EndWordOffset: 20}})

	if !e.HandleDown(HandleTarget{HighlightID: "h1", Handle: HandleStart}) {
		t.Fatal("HandleDown refused")
	}
	if e.State() != DraggingHandle || !e.OverlaysHidden() {
		t.Fatalf("state = %v hidden = %v", e.State(), e.OverlaysHidden())
	}
	e.PointerMove(wordPoint(5))
	e.PointerUp()

	if len(sink.updates) != 1 || sink.updates[0] != (commit{id: "h1", start: 5, end: 20}) {
		t.Errorf("updates = %+v", sink.updates)
	}
	if len(sink.creates) != 0 {
		t.Errorf("creates = %+v", sink.creates)
	}
	if e.State() != Idle || e.OverlaysHidden() {
		t.Errorf("state = %v hidden = %v", e.State(), e.OverlaysHidden())
	}
}

func TestEngine_ReversalPastEnd(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	e.SetHighlights([]highlight.Highlight{{ID: "h1", StartWordOffset: 10, EndWordOffset: 20}})

	e.HandleDown(HandleTarget{HighlightID: "h1", Handle: HandleStart})
	e.PointerMove(wordPoint(25))
	if e.Moving() != HandleEnd {
		t.Errorf("moving = %v, want end", e.Moving())
	}
	e.PointerUp()
	if len(sink.updates) != 1 || sink.updates[0] != (commit{id: "h1", start: 20, end: 25}) {
		t.Errorf("updates = %+v", sink.updates)
	}
}

func TestEngine_ReversalPastStart(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	e.SetHighlights([]highlight.Highlight{{ID: "h1", StartWordOffset: 12, EndWordOffset: 20}})

	e.HandleDown(HandleTarget{HighlightID: "h1", Handle: HandleEnd})
	e.PointerMove(wordPoint(5))
	if e.Moving() != HandleStart {
		t.Errorf("moving = %v, want start", e.Moving())
	}
	// Crossing back hands the pointer to the end edge again.
	e.PointerMove(wordPoint(16))
	if e.Moving() != HandleEnd {
		t.Errorf("moving = %v, want end", e.Moving())
	}
	e.PointerMove(wordPoint(7))
	e.PointerUp()
	if len(sink.updates) != 1 || sink.updates[0] != (commit{id: "h1", start: 7, end: 12}) {
		t.Errorf("updates = %+v", sink.updates)
	}
}

func TestEngine_HandleAtFindsHighlightHandles(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.SetHighlights([]highlight.Highlight{{ID: "h1", StartWordOffset: 11, EndWordOffset: 20}})

	// Word 11 starts at offset 4 of row 2; word 20 ends at offset 3 of row 4.
	target, ok := e.HandleAt(layout.Point{X: 3, Y: 2})
	if !ok || target != (HandleTarget{HighlightID: "h1", Handle: HandleStart}) {
		t.Errorf("start handle = %+v, %v", target, ok)
	}
	target, ok = e.HandleAt(layout.Point{X: 3, Y: 4})
	if !ok || target != (HandleTarget{HighlightID: "h1", Handle: HandleEnd}) {
		t.Errorf("end handle = %+v, %v", target, ok)
	}

	e.PointerDown(layout.Point{X: 3, Y: 4})
	if e.State() != DraggingHandle || e.Moving() != HandleEnd {
		t.Errorf("press on handle: state = %v moving = %v", e.State(), e.Moving())
	}
}

func TestEngine_LiveSelectionHandles(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	drag(e, wordPoint(2), wordPoint(5))

	o, ok := e.Selection()
	if !ok || !o.ShowHandles {
		t.Fatalf("selection = %+v, %v", o, ok)
	}
	if !e.HandleDown(HandleTarget{Handle: HandleEnd}) {
		t.Fatal("HandleDown on live selection refused")
	}
	if o, _ := e.Selection(); o.ShowHandles {
		t.Error("handles should hide while dragging")
	}
	e.PointerMove(wordPoint(8))
	e.PointerUp()
	if e.State() != PendingCreate {
		t.Fatalf("state = %v, want pending-create", e.State())
	}
	if len(sink.updates) != 0 {
		t.Errorf("updates = %+v", sink.updates)
	}
	e.ConfirmCreate()
	if len(sink.creates) != 1 || sink.creates[0] != (commit{start: 2, end: 8}) {
		t.Errorf("creates = %+v", sink.creates)
	}
}

func TestEngine_Copy(t *testing.T) {
	clip := &fakeClipboard{}
	e, _ := newTestEngine(t, Options{Clipboard: clip})

	if e.KeyDown(Key{Rune: 'c', Ctrl: true}) {
		t.Error("copy without a range should not be consumed")
	}
	drag(e, wordPoint(3), wordPoint(6))
	if !e.KeyDown(Key{Rune: 'c', Meta: true}) {
		t.Fatal("copy not consumed")
	}
	if want := "w03 w04. w05 w06"; clip.text != want {
		t.Errorf("clipboard = %q, want %q", clip.text, want)
	}
	if e.State() != PendingCreate {
		t.Errorf("copy changed state to %v", e.State())
	}
	if e.KeyDown(Key{Rune: 'c'}) {
		t.Error("plain c should not copy")
	}
}

func TestEngine_CopyFailureIsConsumed(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	e, _ := newTestEngine(t, Options{Clipboard: clip})
	drag(e, wordPoint(3), wordPoint(6))
	if !e.KeyDown(Key{Rune: 'c', Ctrl: true}) {
		t.Error("failed copy should still be consumed")
	}
}

func TestEngine_ClickSeeks(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	e.PointerDown(wordPoint(13))
	e.PointerUp()
	if len(sink.seeks) != 1 || sink.seeks[0] != 13 {
		t.Errorf("seeks = %v, want [13]", sink.seeks)
	}
	if e.State() != Idle {
		t.Errorf("state = %v", e.State())
	}
}

func TestEngine_DragBackToStartIsClick(t *testing.T) {
	e, sink := newTestEngine(t, Options{})
	e.PointerDown(wordPoint(2))
	e.PointerMove(wordPoint(4))
	e.PointerMove(wordPoint(2))
	if _, ok := e.Params(); ok {
		t.Error("collapsed selection should have no range")
	}
	e.PointerUp()
	if len(sink.seeks) != 1 || sink.seeks[0] != 2 {
		t.Errorf("seeks = %v", sink.seeks)
	}
}

func TestEngine_MoveOffTextKeepsRange(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.PointerDown(wordPoint(2))
	e.PointerMove(wordPoint(7))
	e.PointerMove(layout.Point{X: 3, Y: 40})
	p, ok := e.Params()
	if !ok {
		t.Fatal("range lost")
	}
	if start, end := p.WordIDs(); start != 2 || end != 7 {
		t.Errorf("range = [%d, %d], want [2, 7]", start, end)
	}
}

func TestEngine_UnknownHighlight(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.SetHighlights([]highlight.Highlight{{ID: "gone", StartWordOffset: 100, EndWordOffset: 101}})
	if e.HandleDown(HandleTarget{HighlightID: "gone"}) {
		t.Error("HandleDown on missing words should be refused")
	}
	if e.HandleDown(HandleTarget{HighlightID: "nope"}) {
		t.Error("HandleDown on unknown id should be refused")
	}
	if e.State() != Idle {
		t.Errorf("state = %v", e.State())
	}
	if _, err := e.highlightParams("gone"); !errors.Is(err, ErrMissingWord) {
		t.Errorf("err = %v, want ErrMissingWord", err)
	}
	if _, err := e.highlightParams("nope"); !errors.Is(err, ErrUnknownHighlight) {
		t.Errorf("err = %v, want ErrUnknownHighlight", err)
	}
}

func TestEngine_ReadOnly(t *testing.T) {
	clip := &fakeClipboard{}
	e, sink := newTestEngine(t, Options{ReadOnly: true, Clipboard: clip})
	e.SetHighlights([]highlight.Highlight{{ID: "h1", StartWordOffset: 10, EndWordOffset: 20}})

	if e.HandleDown(HandleTarget{HighlightID: "h1", Handle: HandleEnd}) {
		t.Error("read-only engine should not resize highlights")
	}
	drag(e, wordPoint(2), wordPoint(5))
	if _, ok := e.Creator(); ok {
		t.Error("read-only engine should not offer creation")
	}
	if e.ConfirmCreate() || len(sink.creates) != 0 {
		t.Error("read-only engine created a highlight")
	}
	o, ok := e.Selection()
	if !ok || o.ShowHandles {
		t.Errorf("read-only selection = %+v, %v", o, ok)
	}
	if e.HandleDown(HandleTarget{Handle: HandleEnd}) || e.State() != PendingCreate {
		t.Errorf("read-only engine grabbed a live handle, state = %v", e.State())
	}
	if _, ok := e.HandleAt(layout.Point{X: o.EndHandle.X, Y: o.EndHandle.Y}); ok {
		t.Error("read-only engine reports a live handle")
	}
	if !e.KeyDown(Key{Rune: 'c', Ctrl: true}) || clip.text != "w02 w03 w04. w05" {
		t.Errorf("copy in read-only mode = %q", clip.text)
	}
	for _, m := range e.Markers() {
		if m.ShowHandles {
			t.Errorf("marker %s shows handles", m.HighlightID)
		}
	}
}

func TestEngine_SetTranscriptResets(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	drag(e, wordPoint(2), wordPoint(5))
	e.Hover("h1")
	e.SetTranscript(testTranscript(t))
	if e.State() != Idle || e.Hovered() != "" {
		t.Errorf("state = %v hovered = %q", e.State(), e.Hovered())
	}
	if _, ok := e.Params(); ok {
		t.Error("range survived transcript swap")
	}
}
