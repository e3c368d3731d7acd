package transcript

import (
	"errors"
	"testing"
)

func TestWordOffset(t *testing.T) {
	tr := mustBuild(t, sampleExternal())
	s := tr.Paragraphs[0].Sentences[1] // "How are you?"

	cases := []struct {
		word int
		side Side
		want int
	}{
		{0, SideStart, 0},
		{0, SideEnd, 3},
		{1, SideStart, 4},
		{1, SideEnd, 7},
		{2, SideStart, 8},
		{2, SideEnd, 12},
	}
	for _, c := range cases {
		got, err := WordOffset(s.Words[c.word], s, c.side)
		if err != nil {
			t.Fatalf("WordOffset(%d, %s): %v", c.word, c.side, err)
		}
		if got != c.want {
			t.Errorf("WordOffset(%d, %s) = %d, want %d", c.word, c.side, got, c.want)
		}
	}
}

func TestWordOffset_Multibyte(t *testing.T) {
	s := Sentence{ID: 0, Words: []Word{
		{ID: 0, Index: 0, Text: "café"},
		{ID: 1, Index: 1, Text: "olé."},
	}}
	got, err := WordOffset(s.Words[1], s, SideStart)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("start of second word = %d, want 5 (runes, not bytes)", got)
	}
	if n := TextLen(s); n != 9 {
		t.Errorf("TextLen = %d, want 9", n)
	}
}

func TestWordOffset_StaleIndex(t *testing.T) {
	tr := mustBuild(t, sampleExternal())
	s := tr.Paragraphs[0].Sentences[0]
	stale := s.Words[1]
	stale.Index = 0

	_, err := WordOffset(stale, s, SideStart)
	if !errors.Is(err, ErrStaleWord) {
		t.Errorf("expected ErrStaleWord, got %v", err)
	}

	other := tr.Paragraphs[1].Sentences[0].Words[0]
	other.Index = 5
	if _, err := WordOffset(other, s, SideEnd); !errors.Is(err, ErrStaleWord) {
		t.Errorf("expected ErrStaleWord for out-of-range index, got %v", err)
	}
}

func TestNearestWord(t *testing.T) {
	tr := mustBuild(t, sampleExternal())
	words := tr.Paragraphs[0].Sentences[1].Words // "How are you?"

	cases := []struct {
		offset   int
		rounding Rounding
		wantWord string
		wantOff  int
	}{
		{0, RoundTop, "How", 0},
		{2, RoundTop, "How", 0},
		{3, RoundBottom, "How", 3},
		{4, RoundTop, "are", 4},
		{5, RoundBottom, "are", 7},
		{7, RoundTop, "are", 4},
		{12, RoundBottom, "you?", 12},
	}
	for _, c := range cases {
		w, off, err := NearestWord(c.offset, words, c.rounding)
		if err != nil {
			t.Fatalf("NearestWord(%d): %v", c.offset, err)
		}
		if w.Text != c.wantWord || off != c.wantOff {
			t.Errorf("NearestWord(%d) = %q@%d, want %q@%d", c.offset, w.Text, off, c.wantWord, c.wantOff)
		}
	}
}

func TestNearestWord_Miss(t *testing.T) {
	tr := mustBuild(t, sampleExternal())
	words := tr.Paragraphs[0].Sentences[1].Words

	if _, _, err := NearestWord(13, words, RoundTop); !errors.Is(err, ErrNoWordAtOffset) {
		t.Errorf("expected ErrNoWordAtOffset past the end, got %v", err)
	}
	if _, _, err := NearestWord(-1, words, RoundTop); !errors.Is(err, ErrNoWordAtOffset) {
		t.Errorf("expected ErrNoWordAtOffset for negative offset, got %v", err)
	}
	if _, _, err := NearestWord(0, nil, RoundTop); !errors.Is(err, ErrNoWordAtOffset) {
		t.Errorf("expected ErrNoWordAtOffset for empty sentence, got %v", err)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	tr := mustBuild(t, sampleExternal())
	for _, p := range tr.Paragraphs {
		for _, s := range p.Sentences {
			for _, w := range s.Words {
				start, err := WordOffset(w, s, SideStart)
				if err != nil {
					t.Fatal(err)
				}
				got, snapped, err := NearestWord(start, s.Words, RoundTop)
				if err != nil || got.ID != w.ID || snapped != start {
					t.Errorf("start round trip for %q: got %q@%d err=%v", w.Text, got.Text, snapped, err)
				}

				end, err := WordOffset(w, s, SideEnd)
				if err != nil {
					t.Fatal(err)
				}
				got, snapped, err = NearestWord(end, s.Words, RoundBottom)
				if err != nil || got.ID != w.ID || snapped != end {
					t.Errorf("end round trip for %q: got %q@%d err=%v", w.Text, got.Text, snapped, err)
				}
			}
		}
	}
}
