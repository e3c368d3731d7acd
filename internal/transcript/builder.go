package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrSpeakerNotFound means a paragraph's speaker is missing from the
	// speaker map built from the same paragraphs.
	ErrSpeakerNotFound = errors.New("speaker not found in speaker map")

	// ErrNoWordAtOffset means no word of a sentence covers a character offset.
	ErrNoWordAtOffset = errors.New("no word at offset")

	// ErrStaleWord means a word's Index no longer points at it inside its sentence.
	ErrStaleWord = errors.New("word index does not match sentence")
)

// InternalError marks a broken invariant of the model builder. It is never
// caused by user input.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// Load decodes an external transcript (a JSON list of speaker turns) and
// builds the internal model from it.
func Load(r io.Reader) (*Transcript, error) {
	var paragraphs []ExternalParagraph
	if err := json.NewDecoder(r).Decode(&paragraphs); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return Build(paragraphs)
}

// Build converts the external transcript into the paragraph -> sentence ->
// word model. Sentence and word ids are counters shared across the whole
// transcript.
func Build(external []ExternalParagraph) (*Transcript, error) {
	speakers, byName := buildSpeakers(external)

	b := &builder{}
	paragraphs := make([]Paragraph, 0, len(external))
	for i, p := range external {
		speakerID, ok := byName[p.Speaker]
		if !ok {
			return nil, &InternalError{
				Op:  fmt.Sprintf("resolve speaker %q of paragraph %d", p.Speaker, i),
				Err: ErrSpeakerNotFound,
			}
		}

		groups := splitSentences(p.Words)
		sentences := make([]Sentence, 0, len(groups))
		for idx, group := range groups {
			sentences = append(sentences, b.sentence(idx, i, group))
		}

		paragraphs = append(paragraphs, Paragraph{
			ID:        i,
			Index:     i,
			SpeakerID: speakerID,
			Sentences: sentences,
		})
	}

	return &Transcript{Paragraphs: paragraphs, Speakers: speakers}, nil
}

// buildSpeakers numbers distinct speaker names by first appearance.
func buildSpeakers(external []ExternalParagraph) (map[int]Speaker, map[string]int) {
	speakers := make(map[int]Speaker)
	byName := make(map[string]int)
	for _, p := range external {
		if _, seen := byName[p.Speaker]; seen {
			continue
		}
		id := len(byName)
		byName[p.Speaker] = id
		speakers[id] = Speaker{ID: id, DisplayIndex: id, Name: p.Speaker}
	}
	return speakers, byName
}

// splitSentences starts a new group right after every word containing
// terminal punctuation. Empty groups are dropped.
func splitSentences(words []ExternalWord) [][]ExternalWord {
	var groups [][]ExternalWord
	var current []ExternalWord

	for _, w := range words {
		current = append(current, w)
		if endsSentence(w.Text) {
			groups = append(groups, current)
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

type builder struct {
	sentenceID int
	wordID     int
}

func (b *builder) sentence(index, paragraphID int, external []ExternalWord) Sentence {
	id := b.sentenceID
	b.sentenceID++

	words := make([]Word, 0, len(external))
	for idx, w := range external {
		words = append(words, Word{
			ID:         b.wordID,
			Index:      idx,
			Text:       w.Text,
			StartTime:  w.StartTimestamp,
			EndTime:    w.EndTimestamp,
			SentenceID: id,
		})
		b.wordID++
	}

	return Sentence{
		ID:          id,
		Index:       index,
		Words:       words,
		ParagraphID: paragraphID,
	}
}
