package studygen

import "strings"

const (
	// maxFlashcardSentences caps how many leading sentences become cards.
	maxFlashcardSentences = 5
	// excerptLength is how much source text the terminal review card quotes.
	excerptLength = 150
)

// summaryCardQuestion is the card appended when the note carries a summary.
const summaryCardQuestion = "What is the main summary of this topic?"

// reviewCardQuestion is the terminal comprehension card present in every deck.
const reviewCardQuestion = "What is this study material about?"

// FlashcardBuilder generates question/answer decks from note text using
// deterministic heuristics only. Same text and summary always yield the
// identical card sequence.
type FlashcardBuilder struct {
	segmenter *Segmenter
}

// NewFlashcardBuilder creates a new FlashcardBuilder.
func NewFlashcardBuilder(segmenter *Segmenter) *FlashcardBuilder {
	if segmenter == nil {
		segmenter = NewSegmenter(nil)
	}
	return &FlashcardBuilder{segmenter: segmenter}
}

// Build generates the flashcard deck for a note. For each of the first
// qualifying sentences the first significant word becomes the question and
// the full sentence the answer. A summary card is appended when the note has
// one, and every deck ends with a review card quoting the start of the text.
func (b *FlashcardBuilder) Build(text, summary string) []Flashcard {
	var cards []Flashcard

	sentences := b.segmenter.Sentences(text)
	if len(sentences) > maxFlashcardSentences {
		sentences = sentences[:maxFlashcardSentences]
	}
	for _, sentence := range sentences {
		words := b.segmenter.SignificantWords(sentence)
		if len(words) == 0 {
			continue
		}
		cards = append(cards, Flashcard{
			Question: "What is " + strings.ToLower(words[0]) + "?",
			Answer:   sentence,
		})
	}

	if summary != "" {
		cards = append(cards, Flashcard{
			Question: summaryCardQuestion,
			Answer:   summary,
		})
	}

	cards = append(cards, Flashcard{
		Question: reviewCardQuestion,
		Answer:   excerpt(text, excerptLength),
	})

	for i := range cards {
		cards[i].ID = i + 1
	}
	return cards
}

// excerpt returns the first n runes of the trimmed text with an ellipsis
// marker appended.
func excerpt(text string, n int) string {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) > n {
		trimmed = string(runes[:n])
	}
	return trimmed + "..."
}
