package transcript

// ExternalWord is a single timed word as supplied by the host.
type ExternalWord struct {
	Text           string  `json:"text"`
	StartTimestamp float64 `json:"start_timestamp"`
	EndTimestamp   float64 `json:"end_timestamp"`
}

// ExternalParagraph is one speaker turn as supplied by the host.
type ExternalParagraph struct {
	Speaker string         `json:"speaker"`
	Words   []ExternalWord `json:"words"`
}

// Word is a word of the internal model. ID is unique across the whole
// transcript and increases in document order; Index is the position of the
// word inside its sentence.
type Word struct {
	ID         int
	Index      int
	Text       string
	StartTime  float64
	EndTime    float64
	SentenceID int
}

// Sentence is a run of words ending at terminal punctuation.
type Sentence struct {
	ID          int
	Index       int
	Words       []Word
	ParagraphID int
}

// Paragraph is one speaker turn split into sentences.
type Paragraph struct {
	ID        int
	Index     int
	SpeakerID int
	Sentences []Sentence
}

// Speaker is a distinct speaker name, numbered by first appearance.
type Speaker struct {
	ID           int
	DisplayIndex int
	Name         string
}

// Transcript is the immutable paragraph -> sentence -> word model.
type Transcript struct {
	Paragraphs []Paragraph
	Speakers   map[int]Speaker
}

// Words returns every word in document order.
func (t *Transcript) Words() []Word {
	var words []Word
	for _, p := range t.Paragraphs {
		for _, s := range p.Sentences {
			words = append(words, s.Words...)
		}
	}
	return words
}

// Start returns the start time of the sentence's first word.
func (s Sentence) Start() float64 {
	if len(s.Words) == 0 {
		return 0
	}
	return s.Words[0].StartTime
}

// End returns the end time of the sentence's last word.
func (s Sentence) End() float64 {
	if len(s.Words) == 0 {
		return 0
	}
	return s.Words[len(s.Words)-1].EndTime
}
