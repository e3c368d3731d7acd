package layout

import (
	"fmt"
	"sort"

	"transcriptview/internal/config"
	"transcriptview/internal/transcript"

	"github.com/mattn/go-runewidth"
)

// LineKind tells a painter what a row holds.
type LineKind int

const (
	LineLabel LineKind = iota // speaker name and paragraph start time
	LineText                  // one wrapped row of a sentence
)

// Line is a paintable row of the grid.
type Line struct {
	Kind   LineKind
	Row    int
	Col    int
	Text   string
	Bullet bool // first row of a sentence

	Sentence  int
	Paragraph int
	Speaker   int
}

// BulletGlyph prefixes the first row of every sentence.
const BulletGlyph = '•'

type cell struct {
	row, col, width int
}

type sentenceBox struct {
	id    int
	runes []rune
	cells []cell // one per caret offset, len(runes)+1 entries
	wrap  map[int]bool
}

type rowSpan struct {
	sentence   int
	start, end int // runes [start, end) sit on this row
	last       int // caret offset for a click past the row end
	textCol    int
}

// Grid lays a transcript out on a fixed-width cell grid: a label row per
// paragraph, a bullet and word-wrapped text per sentence, and a blank row
// between paragraphs.
type Grid struct {
	width, height int
	textCol       int
	textWidth     int

	lines     []Line
	sentences map[int]*sentenceBox
	rows      map[int]rowSpan
	ids       []int
}

// NewGrid lays out t for a viewport of the given width in cells.
func NewGrid(t *transcript.Transcript, settings config.LayoutSettings, width int) *Grid {
	g := &Grid{
		width:     width,
		textCol:   settings.LeftMargin + settings.SentenceInset,
		sentences: make(map[int]*sentenceBox),
		rows:      make(map[int]rowSpan),
	}
	right := width
	if settings.MaxTextWidth > 0 {
		right = min(right, g.textCol+settings.MaxTextWidth)
	}
	g.textWidth = max(right-g.textCol-1, 8)

	if t == nil {
		return g
	}

	row := 0
	for _, p := range t.Paragraphs {
		if len(p.Sentences) == 0 {
			continue
		}
		speaker := t.Speakers[p.SpeakerID]
		g.lines = append(g.lines, Line{
			Kind:      LineLabel,
			Row:       row,
			Col:       settings.LeftMargin,
			Text:      fmt.Sprintf("%s  %s", transcript.FormatSeconds(p.Sentences[0].Start()), speaker.Name),
			Paragraph: p.ID,
			Speaker:   p.SpeakerID,
		})
		row++

		for _, s := range p.Sentences {
			if len(s.Words) == 0 {
				continue
			}
			box := g.wrap(s, row)
			g.sentences[s.ID] = box
			g.ids = append(g.ids, s.ID)
			row = g.addRows(box, p, row) + 1
		}
		row++
	}
	g.height = row
	sort.Ints(g.ids)
	return g
}

// wrap assigns a cell to every caret offset of s, breaking lines at the
// space between words and inside words longer than a full row.
func (g *Grid) wrap(s transcript.Sentence, firstRow int) *sentenceBox {
	box := &sentenceBox{
		id:    s.ID,
		runes: []rune(transcript.SentenceText(s)),
		wrap:  make(map[int]bool),
	}
	box.cells = make([]cell, 0, len(box.runes)+1)

	row, col, pos := firstRow, 0, 0
	for i, w := range s.Words {
		word := []rune(w.Text)
		if i > 0 {
			if col > 0 && col+1+cellWidth(word) > g.textWidth {
				box.cells = append(box.cells, cell{row: row, col: col, width: 1})
				box.wrap[pos] = true
				row, col = row+1, 0
			} else {
				box.cells = append(box.cells, cell{row: row, col: col, width: 1})
				col++
			}
			pos++
		}
		for _, r := range word {
			rw := runeWidth(r)
			if col > 0 && col+rw > g.textWidth {
				row, col = row+1, 0
			}
			box.cells = append(box.cells, cell{row: row, col: col, width: rw})
			col += rw
			pos++
		}
	}
	box.cells = append(box.cells, cell{row: row, col: col})
	return box
}

// addRows records the text rows of box and returns the last row used.
func (g *Grid) addRows(box *sentenceBox, p transcript.Paragraph, firstRow int) int {
	n := len(box.runes)
	start := 0
	for start <= n {
		row := box.cells[start].row
		end := start
		for end < n && box.cells[end].row == row {
			end++
		}
		span := rowSpan{sentence: box.id, start: start, end: end, last: end, textCol: g.textCol}
		text := box.runes[start:end]
		if end > start && box.wrap[end-1] {
			span.last = end - 1
			text = text[:len(text)-1]
		}
		g.rows[row] = span
		g.lines = append(g.lines, Line{
			Kind:      LineText,
			Row:       row,
			Col:       g.textCol,
			Text:      string(text),
			Bullet:    start == 0,
			Sentence:  box.id,
			Paragraph: p.ID,
			Speaker:   p.SpeakerID,
		})
		if end >= n {
			return row
		}
		start = end
	}
	return firstRow
}

// Width is the viewport width the grid was laid out for.
func (g *Grid) Width() int { return g.width }

// Height is the number of rows of the laid-out document.
func (g *Grid) Height() int { return g.height }

// TextCol is the column where sentence text starts.
func (g *Grid) TextCol() int { return g.textCol }

// Lines returns the paintable rows in document order.
func (g *Grid) Lines() []Line { return g.lines }

// Contains reports whether p lies inside the laid-out document.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// AnchorAtPoint returns the caret position under p. Points left of a text
// row snap to its first caret, points right of it to its last.
func (g *Grid) AnchorAtPoint(p Point) (Anchor, error) {
	span, ok := g.rows[p.Y]
	if !ok {
		return Anchor{}, fmt.Errorf("point (%d,%d): %w", p.X, p.Y, ErrNoText)
	}
	box := g.sentences[span.sentence]
	x := p.X - span.textCol
	if x < 0 {
		return Anchor{Sentence: span.sentence, Offset: span.start}, nil
	}
	for i := span.start; i < span.last; i++ {
		c := box.cells[i]
		if x >= c.col && x < c.col+c.width {
			return Anchor{Sentence: span.sentence, Offset: i}, nil
		}
	}
	return Anchor{Sentence: span.sentence, Offset: span.last}, nil
}

// RectsForRange returns one rect per row covered by the text between a and
// b, which may span several sentences.
func (g *Grid) RectsForRange(a, b Anchor) ([]Rect, error) {
	a, b = Ordered(a, b)
	first, ok := g.sentences[a.Sentence]
	if !ok || a.Offset < 0 || a.Offset > len(first.runes) {
		return nil, fmt.Errorf("start %+v: %w", a, ErrOutOfRange)
	}
	last, ok := g.sentences[b.Sentence]
	if !ok || b.Offset < 0 || b.Offset > len(last.runes) {
		return nil, fmt.Errorf("end %+v: %w", b, ErrOutOfRange)
	}

	var rects []Rect
	for _, id := range g.ids {
		if id < a.Sentence || id > b.Sentence {
			continue
		}
		box := g.sentences[id]
		start, end := 0, len(box.runes)
		if id == a.Sentence {
			start = a.Offset
		}
		if id == b.Sentence {
			end = b.Offset
		}
		rects = append(rects, g.spanRects(box, start, end)...)
	}
	return rects, nil
}

func (g *Grid) spanRects(box *sentenceBox, start, end int) []Rect {
	var rects []Rect
	for i := start; i < end; i++ {
		if box.wrap[i] {
			continue
		}
		c := box.cells[i]
		x := g.textCol + c.col
		if n := len(rects); n > 0 && rects[n-1].Y == c.row && rects[n-1].Right() == x {
			rects[n-1].W += c.width
			continue
		}
		rects = append(rects, Rect{X: x, Y: c.row, W: c.width, H: 1})
	}
	return rects
}

func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func cellWidth(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += runeWidth(r)
	}
	return n
}
