package studygen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flashcardSampleText = "Photosynthesis is the process by which plants convert light energy into chemical energy. " +
	"Plants use sunlight, carbon dioxide, and water to produce glucose. " +
	"Oxygen is released as a byproduct of the reaction."

func TestBuildFlashcardsShape(t *testing.T) {
	builder := NewFlashcardBuilder(nil)
	cards := builder.Build(flashcardSampleText, "")

	require.NotEmpty(t, cards)
	for i, card := range cards {
		assert.Equal(t, i+1, card.ID)
		assert.NotEmpty(t, card.Question)
		assert.NotEmpty(t, card.Answer)
	}

	// Sentence cards ask about the first significant word, lowercased.
	first := cards[0]
	assert.Equal(t, "What is photosynthesis?", first.Question)
	assert.Equal(t, "Photosynthesis is the process by which plants convert light energy into chemical energy", first.Answer)
}

func TestBuildFlashcardsTerminalReviewCard(t *testing.T) {
	builder := NewFlashcardBuilder(nil)
	cards := builder.Build(flashcardSampleText, "")

	last := cards[len(cards)-1]
	assert.Equal(t, reviewCardQuestion, last.Question)
	assert.True(t, strings.HasSuffix(last.Answer, "..."))

	body := strings.TrimSuffix(last.Answer, "...")
	assert.Equal(t, 150, len([]rune(body)))
	assert.True(t, strings.HasPrefix(flashcardSampleText, body))
}

func TestBuildFlashcardsSummaryCard(t *testing.T) {
	builder := NewFlashcardBuilder(nil)

	without := builder.Build(flashcardSampleText, "")
	with := builder.Build(flashcardSampleText, "Plants turn light into sugar.")

	require.Equal(t, len(without)+1, len(with))

	summaryCard := with[len(with)-2]
	assert.Equal(t, summaryCardQuestion, summaryCard.Question)
	assert.Equal(t, "Plants turn light into sugar.", summaryCard.Answer)

	for _, card := range without {
		assert.NotEqual(t, summaryCardQuestion, card.Question)
	}
}

func TestBuildFlashcardsDeterministic(t *testing.T) {
	builder := NewFlashcardBuilder(nil)

	a := builder.Build(flashcardSampleText, "A summary.")
	b := builder.Build(flashcardSampleText, "A summary.")
	require.Equal(t, a, b)
}

func TestBuildFlashcardsShortText(t *testing.T) {
	builder := NewFlashcardBuilder(nil)
	cards := builder.Build("Too short.", "")

	// No qualifying sentence, so only the terminal review card remains.
	require.Len(t, cards, 1)
	assert.Equal(t, reviewCardQuestion, cards[0].Question)
	assert.Equal(t, "Too short....", cards[0].Answer)
}
