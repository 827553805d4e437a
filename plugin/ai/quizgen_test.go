package ai

import (
	"context"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/studybuddy/internal/errors"
)

const quizInputText = "Machine learning is a subset of artificial intelligence that enables computers " +
	"to learn from data without being explicitly programmed. It involves algorithms that identify patterns."

const validQuizJSON = `[
  {"id": 1, "question": "What is machine learning a subset of?", "options": ["Artificial intelligence", "Biology", "Chemistry", "Geology"], "correctIndex": 0},
  {"id": 2, "question": "What do algorithms identify?", "options": ["Patterns", "Rocks", "Clouds", "Stars"], "correctIndex": 0},
  {"id": 3, "question": "What do computers learn from?", "options": ["Teachers", "Data", "Books", "Television"], "correctIndex": 1}
]`

func TestGenerateRejectsShortInput(t *testing.T) {
	chat := &fakeChat{response: validQuizJSON}
	g := NewQuizGenerator(chat)

	_, err := g.Generate(context.Background(), "not one hundred characters")
	require.True(t, errors.IsCode(err, errors.ErrCodeInputTooShort))
	require.Zero(t, chat.calls)
}

func TestGenerateValidPayload(t *testing.T) {
	g := NewQuizGenerator(&fakeChat{response: validQuizJSON})

	questions, err := g.Generate(context.Background(), quizInputText)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.Len(t, q.Options, 4)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.LessOrEqual(t, q.CorrectIndex, 3)
	}
	assert.Equal(t, "Data", questions[2].Options[questions[2].CorrectIndex])
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	g := NewQuizGenerator(&fakeChat{response: fenced})

	questions, err := g.Generate(context.Background(), quizInputText)
	require.NoError(t, err)
	require.Len(t, questions, 3)
}

func TestGenerateAcceptsLegacyCorrectKey(t *testing.T) {
	legacy := strings.ReplaceAll(validQuizJSON, "correctIndex", "correct")
	g := NewQuizGenerator(&fakeChat{response: legacy})

	questions, err := g.Generate(context.Background(), quizInputText)
	require.NoError(t, err)
	require.Equal(t, 1, questions[2].CorrectIndex)
}

func TestGenerateTransportFailure(t *testing.T) {
	g := NewQuizGenerator(&fakeChat{err: pkgerrors.New("timeout")})

	_, err := g.Generate(context.Background(), quizInputText)
	require.True(t, errors.IsCode(err, errors.ErrCodeRemoteUnavailable))
}

func TestGenerateRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "sure! here are your questions"},
		{"too few questions", `[{"id":1,"question":"q","options":["a","b","c","d"],"correctIndex":0}]`},
		{"wrong option count", strings.Replace(validQuizJSON, `, "Geology"`, "", 1)},
		{"duplicate options", strings.Replace(validQuizJSON, `"Biology"`, `"Artificial intelligence"`, 1)},
		{"index out of range", strings.Replace(validQuizJSON, `"correctIndex": 1`, `"correctIndex": 4`, 1)},
		{"missing index", strings.Replace(validQuizJSON, `, "correctIndex": 1`, "", 1)},
		{"empty question", strings.Replace(validQuizJSON, `"What do algorithms identify?"`, `"  "`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewQuizGenerator(&fakeChat{response: tt.response})
			_, err := g.Generate(context.Background(), quizInputText)
			require.Error(t, err)
			require.True(t, errors.IsCode(err, errors.ErrCodeInvalidPayload),
				"got %v, want INVALID_PAYLOAD", err)
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `["a"]`, extractJSONArray("Here you go: [\"a\"] enjoy"))
	assert.Equal(t, `["a"]`, extractJSONArray("```json\n[\"a\"]\n```"))
	assert.Equal(t, "no array", extractJSONArray("no array"))
}
