package selection

import (
	"errors"
	"fmt"

	"transcriptview/internal/highlight"
	"transcriptview/internal/layout"
	"transcriptview/internal/transcript"
)

var (
	// ErrUnknownHighlight means the host list has no highlight with the id.
	ErrUnknownHighlight = errors.New("unknown highlight")

	// ErrMissingWord means a highlight points at a word id the transcript
	// does not have.
	ErrMissingWord = errors.New("word not in transcript")

	// ErrMissingSentence means an anchor points at an unknown sentence.
	ErrMissingSentence = errors.New("sentence not in transcript")
)

// boundaries snaps a native selection to whole words: the document-earlier
// end to the start of its word, the later end to the end of its word.
func (e *Engine) boundaries(n nativeSelection) (Params, error) {
	first, last := layout.Ordered(n.anchor, n.focus)
	start, err := e.snap(first, transcript.RoundTop)
	if err != nil {
		return Params{}, fmt.Errorf("range start: %w", err)
	}
	end, err := e.snap(last, transcript.RoundBottom)
	if err != nil {
		return Params{}, fmt.Errorf("range end: %w", err)
	}
	return Params{Start: start, End: end}, nil
}

func (e *Engine) snap(a layout.Anchor, rounding transcript.Rounding) (Boundary, error) {
	s, ok := e.index.Sentence(a.Sentence)
	if !ok {
		return Boundary{}, fmt.Errorf("sentence %d: %w", a.Sentence, ErrMissingSentence)
	}
	w, offset, err := transcript.NearestWord(a.Offset, s.Words, rounding)
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{Word: w, Anchor: layout.Anchor{Sentence: s.ID, Offset: offset}}, nil
}

// reversed reports whether moving the grabbed edge to a carries it past
// the fixed edge.
func (e *Engine) reversed(a layout.Anchor) bool {
	if e.moving == HandleStart {
		return e.fixed.Before(a)
	}
	return a.Before(e.fixed)
}

func (e *Engine) findHighlight(id string) (highlight.Highlight, bool) {
	for _, h := range e.highlights {
		if h.ID == id {
			return h, true
		}
	}
	return highlight.Highlight{}, false
}

// highlightParams derives the boundaries of a stored highlight.
func (e *Engine) highlightParams(id string) (Params, error) {
	h, ok := e.findHighlight(id)
	if !ok {
		return Params{}, fmt.Errorf("highlight %q: %w", id, ErrUnknownHighlight)
	}
	p, err := e.wordRange(h.StartWordOffset, h.EndWordOffset)
	if err != nil {
		return Params{}, fmt.Errorf("highlight %q: %w", id, err)
	}
	p.HighlightID = id
	return p, nil
}

// wordRange anchors the words with ids startID and endID at their outer
// edges. The ids may come in either order.
func (e *Engine) wordRange(startID, endID int) (Params, error) {
	if startID > endID {
		startID, endID = endID, startID
	}
	start, err := e.wordBoundary(startID, transcript.SideStart)
	if err != nil {
		return Params{}, err
	}
	end, err := e.wordBoundary(endID, transcript.SideEnd)
	if err != nil {
		return Params{}, err
	}
	return Params{Start: start, End: end}, nil
}

func (e *Engine) wordBoundary(id int, side transcript.Side) (Boundary, error) {
	w, ok := e.index.Word(id)
	if !ok {
		return Boundary{}, fmt.Errorf("word %d: %w", id, ErrMissingWord)
	}
	s, ok := e.index.SentenceOf(w)
	if !ok {
		return Boundary{}, fmt.Errorf("word %d sentence %d: %w", id, w.SentenceID, ErrMissingSentence)
	}
	offset, err := transcript.WordOffset(w, s, side)
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{Word: w, Anchor: layout.Anchor{Sentence: s.ID, Offset: offset}}, nil
}
