package transcript

import "strings"

// Index gives constant-time access to words and sentences by id.
type Index struct {
	words     map[int]Word
	sentences map[int]Sentence
	order     []Word
}

// NewIndex builds the lookup tables for t.
func NewIndex(t *Transcript) *Index {
	idx := &Index{
		words:     make(map[int]Word),
		sentences: make(map[int]Sentence),
	}
	if t == nil {
		return idx
	}
	for _, p := range t.Paragraphs {
		for _, s := range p.Sentences {
			idx.sentences[s.ID] = s
			for _, w := range s.Words {
				idx.words[w.ID] = w
				idx.order = append(idx.order, w)
			}
		}
	}
	return idx
}

// Word returns the word with the given id.
func (idx *Index) Word(id int) (Word, bool) {
	w, ok := idx.words[id]
	return w, ok
}

// Sentence returns the sentence with the given id.
func (idx *Index) Sentence(id int) (Sentence, bool) {
	s, ok := idx.sentences[id]
	return s, ok
}

// SentenceOf returns the sentence containing w.
func (idx *Index) SentenceOf(w Word) (Sentence, bool) {
	return idx.Sentence(w.SentenceID)
}

// WordsBetween returns the words whose id lies in [startID, endID].
func (idx *Index) WordsBetween(startID, endID int) []Word {
	var out []Word
	for _, w := range idx.order {
		if w.ID >= startID && w.ID <= endID {
			out = append(out, w)
		}
	}
	return out
}

// TextBetween joins the text of the words whose id lies in [startID, endID]
// with single spaces.
func (idx *Index) TextBetween(startID, endID int) string {
	words := idx.WordsBetween(startID, endID)
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
