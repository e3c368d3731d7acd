package transcript

import "strings"

// sentenceTerminals end a sentence wherever they appear inside a word, so
// "Mr.Smith" or "what?!" both close the current sentence.
const sentenceTerminals = ".!?"

// trailingPunctuation is stripped from a word before deep-link comparison.
var trailingPunctuation = map[byte]struct{}{
	'.': {}, '?': {}, '!': {}, ',': {},
}

// endsSentence reports whether a word closes the sentence it belongs to.
func endsSentence(text string) bool {
	return strings.ContainsAny(text, sentenceTerminals)
}

// normalizeToken drops a single trailing punctuation mark.
func normalizeToken(token string) string {
	if token == "" {
		return token
	}
	if _, ok := trailingPunctuation[token[len(token)-1]]; ok {
		return token[:len(token)-1]
	}
	return token
}
