package studygen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/studybuddy/internal/errors"
)

const quizSampleText = "Machine learning is a subset of artificial intelligence that enables computers to learn from data. " +
	"It involves algorithms that identify patterns and improve their performance over time. " +
	"Neural networks are computing systems loosely inspired by biological brains."

func TestBuildRejectsShortInput(t *testing.T) {
	builder := NewQuizBuilder(&QuizBuilderConfig{Seed: 1})

	_, err := builder.Build("way too short for a quiz")
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.ErrCodeInputTooShort))

	// Whitespace does not count towards the threshold.
	padded := "short" + strings.Repeat(" ", 200)
	_, err = builder.Build(padded)
	require.True(t, errors.IsCode(err, errors.ErrCodeInputTooShort))
}

func TestBuildQuestionShape(t *testing.T) {
	builder := NewQuizBuilder(&QuizBuilderConfig{Seed: 42})

	questions, err := builder.Build(quizSampleText)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(questions), 1)
	require.LessOrEqual(t, len(questions), MaxQuizQuestions)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.Question)
		require.Len(t, q.Options, 4)
		require.GreaterOrEqual(t, q.CorrectIndex, 0)
		require.LessOrEqual(t, q.CorrectIndex, 3)

		unique := make(map[string]struct{})
		for _, opt := range q.Options {
			assert.NotEmpty(t, opt)
			unique[opt] = struct{}{}
		}
		assert.Len(t, unique, 4, "options must be unique: %v", q.Options)
	}
}

func TestBuildCorrectIndexIsTruthful(t *testing.T) {
	builder := NewQuizBuilder(&QuizBuilderConfig{Seed: 7})

	questions, err := builder.Build(quizSampleText)
	require.NoError(t, err)

	lowerText := strings.ToLower(quizSampleText)
	for _, q := range questions {
		if q.Question == genericQuestion.Question {
			continue
		}
		require.Contains(t, q.Question, BlankMarker)

		// The designated option is the word that was blanked out of the text.
		key := q.Options[q.CorrectIndex]
		assert.Contains(t, lowerText, strings.ToLower(key))

		// Restoring the key word into the stem reproduces the sentence.
		restored := strings.TrimSuffix(q.Question, "?")
		restored = strings.ReplaceAll(restored, BlankMarker, key)
		assert.Contains(t, quizSampleText, restored)
	}
}

func TestBuildKeyWordsUniqueAcrossQuiz(t *testing.T) {
	builder := NewQuizBuilder(&QuizBuilderConfig{Seed: 99})

	questions, err := builder.Build(quizSampleText)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for _, q := range questions {
		if q.Question == genericQuestion.Question {
			continue
		}
		key := strings.ToLower(q.Options[q.CorrectIndex])
		_, dup := seen[key]
		assert.False(t, dup, "duplicate key word %q", key)
		seen[key] = struct{}{}
	}
}

func TestBuildDeterministicForSeed(t *testing.T) {
	a, err := NewQuizBuilder(&QuizBuilderConfig{Seed: 1234}).Build(quizSampleText)
	require.NoError(t, err)
	b, err := NewQuizBuilder(&QuizBuilderConfig{Seed: 1234}).Build(quizSampleText)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestBuildAppendsGenericWhenSparse(t *testing.T) {
	// 3 qualifying sentences around 120 characters total: sentence-based
	// generation yields between 1 and 3 questions, topped up with the
	// generic comprehension question when below 3.
	text := "Water evaporates from oceans daily. Clouds form from condensation processes. Rain falls back into rivers eventually."
	require.GreaterOrEqual(t, len(strings.TrimSpace(text)), 100)

	questions, err := NewQuizBuilder(&QuizBuilderConfig{Seed: 5}).Build(text)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(questions), 1)
	require.LessOrEqual(t, len(questions), MaxQuizQuestions)

	generated := 0
	for _, q := range questions {
		if q.Question != genericQuestion.Question {
			generated++
		}
	}
	assert.GreaterOrEqual(t, generated, 1)
	assert.LessOrEqual(t, generated, 3)
	if generated < 3 {
		assert.Equal(t, genericQuestion.Question, questions[len(questions)-1].Question)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	text := quizSampleText
	_, err := NewQuizBuilder(&QuizBuilderConfig{Seed: 2}).Build(text)
	require.NoError(t, err)
	require.Equal(t, quizSampleText, text)
}

func TestBuildPadsDistractorsWithPlaceholders(t *testing.T) {
	// One long sentence with almost no significant-word variety forces
	// placeholder distractors.
	text := strings.TrimSpace(strings.Repeat("the for and but with zebra ", 10))
	require.GreaterOrEqual(t, len(text), 100)

	questions, err := NewQuizBuilder(&QuizBuilderConfig{Seed: 3}).Build(text)
	require.NoError(t, err)

	// "zebra" is the only key word candidate, so its question is padded.
	var padded bool
	for _, q := range questions {
		for _, opt := range q.Options {
			if strings.HasPrefix(opt, "Option ") {
				padded = true
			}
		}
	}
	assert.True(t, padded, "expected placeholder distractors in %v", questions)
}
