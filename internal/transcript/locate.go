package transcript

import (
	"fmt"
	"math"
	"strings"
)

// ActiveWord is the word under the playhead and its span in the rendered
// sentence text.
type ActiveWord struct {
	Word        Word
	Sentence    Sentence
	StartOffset int
	EndOffset   int
}

// Locate returns the last word, in document order, whose start time is not
// after timestamp. The scan is linear so that out-of-order edits still
// resolve to the latest qualifying word.
func Locate(t *Transcript, timestamp float64) (ActiveWord, bool) {
	var (
		active ActiveWord
		found  bool
	)
	if t == nil {
		return active, false
	}
	for _, p := range t.Paragraphs {
		for _, s := range p.Sentences {
			for _, w := range s.Words {
				if timestamp >= w.StartTime {
					active.Word = w
					active.Sentence = s
					found = true
				}
			}
		}
	}
	if !found {
		return ActiveWord{}, false
	}

	// Words come straight out of their sentence, so the index is valid.
	active.StartOffset, _ = WordOffset(active.Word, active.Sentence, SideStart)
	active.EndOffset, _ = WordOffset(active.Word, active.Sentence, SideEnd)
	return active, true
}

// TimestampForWord resolves a deep link: the first sentence that ends after
// from is searched for a word matching target, ignoring one trailing
// punctuation mark. Words edited to hold several tokens are split on
// spaces. It returns 0 when nothing matches.
func TimestampForWord(t *Transcript, target string, from float64) float64 {
	if t == nil {
		return 0
	}
	for _, p := range t.Paragraphs {
		for _, s := range p.Sentences {
			if len(s.Words) == 0 || s.End() <= from {
				continue
			}
			for _, w := range s.Words {
				for _, token := range strings.Split(w.Text, " ") {
					if normalizeToken(token) == target {
						return w.StartTime
					}
				}
			}
			return 0
		}
	}
	return 0
}

// FormatSeconds renders a duration as "42s" or "3m 07s".
func FormatSeconds(seconds float64) string {
	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(seconds)) % 60
	if minutes == 0 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm %02ds", minutes, secs)
}
