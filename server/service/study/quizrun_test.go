package study_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/studybuddy/internal/errors"
	"github.com/hrygo/studybuddy/plugin/studygen"
	"github.com/hrygo/studybuddy/server/service/study"
)

func remoteDeck() []studygen.Flashcard {
	return []studygen.Flashcard{
		{ID: 1, Question: "What is photosynthesis?", Answer: "Photosynthesis converts light energy into chemical energy."},
		{ID: 2, Question: "What is this study material about?", Answer: "Photosynthesis converts light energy..."},
	}
}

func TestQuizRunScoring(t *testing.T) {
	run, err := study.NewQuizRun(remoteQuiz())
	require.NoError(t, err)
	require.Equal(t, 3, run.Len())

	// Right, wrong, right.
	require.NoError(t, run.Select(run.Current().CorrectIndex))
	require.NoError(t, run.Next())

	wrong := (run.Current().CorrectIndex + 1) % 4
	require.NoError(t, run.Select(wrong))
	require.NoError(t, run.Next())

	require.NoError(t, run.Select(run.Current().CorrectIndex))
	require.NoError(t, run.Next())

	assert.True(t, run.Completed())
	assert.Equal(t, 2, run.Score())
	assert.Equal(t, 67, run.Percent())
}

func TestQuizRunRequiresSelection(t *testing.T) {
	run, err := study.NewQuizRun(remoteQuiz())
	require.NoError(t, err)

	err = run.Next()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument))
}

func TestQuizRunReselectOverrides(t *testing.T) {
	run, err := study.NewQuizRun(remoteQuiz())
	require.NoError(t, err)

	correct := run.Current().CorrectIndex
	require.NoError(t, run.Select((correct+1)%4))
	require.NoError(t, run.Select(correct))
	require.NoError(t, run.Next())

	assert.Equal(t, 1, run.Score())
}

func TestQuizRunSelectOutOfRange(t *testing.T) {
	run, err := study.NewQuizRun(remoteQuiz())
	require.NoError(t, err)

	require.Error(t, run.Select(-1))
	require.Error(t, run.Select(4))
}

func TestQuizRunRejectsEmptyQuiz(t *testing.T) {
	_, err := study.NewQuizRun(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument))
}

func TestQuizRunAfterCompletion(t *testing.T) {
	run := finishedQuizRun(t)

	require.Error(t, run.Select(0))
	require.Error(t, run.Next())
}

func TestFlashcardRunAdvance(t *testing.T) {
	run, err := study.NewFlashcardRun(remoteDeck())
	require.NoError(t, err)
	require.Equal(t, 2, run.Len())

	card, ok := run.Current()
	require.True(t, ok)
	assert.Equal(t, 1, card.ID)

	run.Advance()
	card, ok = run.Current()
	require.True(t, ok)
	assert.Equal(t, 2, card.ID)
	assert.False(t, run.Completed())

	run.Advance()
	assert.True(t, run.Completed())
	_, ok = run.Current()
	assert.False(t, ok)

	// Advancing a completed run is a no-op.
	run.Advance()
	assert.True(t, run.Completed())
}
