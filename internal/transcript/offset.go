package transcript

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Side selects which edge of a word an offset refers to.
type Side int

const (
	SideStart Side = iota
	SideEnd
)

func (s Side) String() string {
	if s == SideEnd {
		return "end"
	}
	return "start"
}

// Rounding selects which edge of the matched word NearestWord snaps to.
type Rounding int

const (
	RoundTop    Rounding = iota // snap to the word's start
	RoundBottom                 // snap to the word's end
)

// SentenceText is the rendered text of a sentence: its words joined by
// single spaces.
func SentenceText(s Sentence) string {
	parts := make([]string, len(s.Words))
	for i, w := range s.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// TextLen returns the length of a sentence's rendered text in runes.
func TextLen(s Sentence) int {
	n := 0
	for i, w := range s.Words {
		if i > 0 {
			n++
		}
		n += utf8.RuneCountInString(w.Text)
	}
	return n
}

// WordOffset returns the rune offset at which w starts or ends inside the
// rendered text of s.
func WordOffset(w Word, s Sentence, side Side) (int, error) {
	if w.Index < 0 || w.Index >= len(s.Words) || s.Words[w.Index].ID != w.ID {
		return 0, fmt.Errorf("word %d in sentence %d: %w", w.ID, s.ID, ErrStaleWord)
	}

	upto := w.Index
	if side == SideEnd {
		upto++
	}
	offset := 0
	for i, prev := range s.Words[:upto] {
		if i > 0 {
			offset++
		}
		offset += utf8.RuneCountInString(prev.Text)
	}
	if side == SideStart && w.Index > 0 {
		offset++
	}
	return offset, nil
}

// NearestWord returns the first word whose span [start, start+len] contains
// offset, together with the offset snapped to that word's start (RoundTop)
// or end (RoundBottom).
func NearestWord(offset int, words []Word, rounding Rounding) (Word, int, error) {
	start := 0
	for _, w := range words {
		n := utf8.RuneCountInString(w.Text)
		if offset >= start && offset <= start+n {
			if rounding == RoundBottom {
				return w, start + n, nil
			}
			return w, start, nil
		}
		start += n + 1
	}
	return Word{}, 0, fmt.Errorf("offset %d: %w", offset, ErrNoWordAtOffset)
}
