// Package studygen turns raw extracted note text into study material:
// segmented sentences, local summaries, fallback quizzes and flashcards.
// Everything in this package is deterministic and network-free.
package studygen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SegmenterConfig configures sentence and word extraction.
type SegmenterConfig struct {
	// MinSentenceLength is the minimum length in characters for a sentence
	// fragment to be kept.
	MinSentenceLength int
	// MinWordLength is the minimum length in characters for a word to count
	// as significant.
	MinWordLength int
}

// DefaultSegmenterConfig returns the default segmenter settings.
func DefaultSegmenterConfig() *SegmenterConfig {
	return &SegmenterConfig{
		MinSentenceLength: 20,
		MinWordLength:     4,
	}
}

// stopwords are articles, conjunctions and prepositions excluded from
// significant-word extraction.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {},
	"and": {}, "but": {}, "or": {}, "nor": {}, "for": {}, "yet": {}, "so": {},
	"if": {}, "because": {}, "although": {}, "though": {}, "while": {},
	"when": {}, "where": {}, "after": {}, "before": {}, "since": {}, "until": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "to": {}, "from": {},
	"with": {}, "without": {}, "about": {}, "above": {}, "below": {}, "between": {},
	"into": {}, "through": {}, "during": {}, "under": {}, "over": {}, "against": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "which": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"its": {}, "their": {}, "they": {}, "them": {}, "then": {}, "than": {},
	"such": {}, "also": {}, "most": {}, "more": {}, "some": {}, "each": {},
}

// Segmenter splits raw text into candidate sentences and significant words.
// It is a pure function holder: no side effects, deterministic for a given
// input and config.
type Segmenter struct {
	config *SegmenterConfig
}

// NewSegmenter creates a new Segmenter.
func NewSegmenter(config *SegmenterConfig) *Segmenter {
	if config == nil {
		config = DefaultSegmenterConfig()
	}
	if config.MinSentenceLength <= 0 {
		config.MinSentenceLength = 20
	}
	if config.MinWordLength <= 0 {
		config.MinWordLength = 4
	}
	return &Segmenter{config: config}
}

// Sentences splits text on sentence-terminal punctuation and returns trimmed
// fragments no shorter than MinSentenceLength, in document order.
func (s *Segmenter) Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var sentences []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) >= s.config.MinSentenceLength {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// SignificantWords extracts content words from a sentence: tokens at least
// MinWordLength characters long that are not stopwords. Words are returned
// in first-seen order with case-insensitive de-duplication, original casing
// preserved.
func (s *Segmenter) SignificantWords(sentence string) []string {
	seen := make(map[string]struct{})
	var words []string

	for _, token := range strings.Fields(sentence) {
		word := strings.TrimFunc(token, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if utf8.RuneCountInString(word) < s.config.MinWordLength {
			continue
		}

		lower := strings.ToLower(word)
		if _, ok := stopwords[lower]; ok {
			continue
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		words = append(words, word)
	}
	return words
}

// IsStopword reports whether the word is in the fixed stopword set.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}
