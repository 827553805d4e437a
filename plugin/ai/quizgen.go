package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hrygo/studybuddy/internal/errors"
	"github.com/hrygo/studybuddy/plugin/studygen"
)

const (
	// minRemoteQuestions and maxRemoteQuestions bound what the remote model
	// is asked for and what a valid payload may contain.
	minRemoteQuestions = 3
	maxRemoteQuestions = 5
)

const quizSystemPrompt = "You are a study assistant that writes multiple-choice quizzes. " +
	"Respond with a JSON array only, no prose and no markdown."

const quizUserPrompt = `Write %d to %d multiple-choice questions about the study notes below.
Each array element must be an object of the form:
{"id": 1, "question": "...", "options": ["...", "...", "...", "..."], "correctIndex": 0}
Rules: exactly 4 unique options per question, correctIndex is the zero-based
index of the right option.

%s`

// QuizGenerator asks a remote language model for a quiz. An unparseable or
// shape-violating response is discarded as a whole with INVALID_PAYLOAD;
// a partially valid quiz is never surfaced.
type QuizGenerator struct {
	chat ChatCompleter
}

// NewQuizGenerator creates a new QuizGenerator.
func NewQuizGenerator(chat ChatCompleter) *QuizGenerator {
	return &QuizGenerator{chat: chat}
}

// remoteQuestion is the wire shape of one question. CorrectIndex is the
// adopted key; the legacy "correct" key is accepted for prompt drift.
type remoteQuestion struct {
	ID           int      `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex"`
	Correct      *int     `json:"correct"`
}

// Generate returns a remote quiz for text. It fails with INPUT_TOO_SHORT when
// the trimmed text is under the minimum length, REMOTE_UNAVAILABLE on
// transport failure, and INVALID_PAYLOAD when the response violates the quiz
// shape invariants.
func (g *QuizGenerator) Generate(ctx context.Context, text string) ([]studygen.QuizQuestion, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < studygen.MinQuizInputLength {
		return nil, errors.InputTooShort("text too short for quiz generation")
	}

	messages := []Message{
		SystemPrompt(quizSystemPrompt),
		UserMessage(fmt.Sprintf(quizUserPrompt, minRemoteQuestions, maxRemoteQuestions, trimmed)),
	}

	response, err := g.chat.Chat(ctx, messages)
	if err != nil {
		return nil, errors.RemoteUnavailable("remote quiz generation failed", err)
	}

	questions, err := parseQuizPayload(response)
	if err != nil {
		slog.Warn("discarding malformed remote quiz payload",
			"error", err,
			"response", truncateLog(response, 200))
		return nil, errors.InvalidPayload("remote quiz payload rejected", err)
	}
	return questions, nil
}

// parseQuizPayload parses and strictly validates the model response.
func parseQuizPayload(response string) ([]studygen.QuizQuestion, error) {
	raw := extractJSONArray(response)

	var remote []remoteQuestion
	if err := json.Unmarshal([]byte(raw), &remote); err != nil {
		return nil, fmt.Errorf("not a JSON array: %w", err)
	}

	if len(remote) < minRemoteQuestions || len(remote) > maxRemoteQuestions {
		return nil, fmt.Errorf("question count %d out of range [%d,%d]", len(remote), minRemoteQuestions, maxRemoteQuestions)
	}

	questions := make([]studygen.QuizQuestion, 0, len(remote))
	for i, rq := range remote {
		if strings.TrimSpace(rq.Question) == "" {
			return nil, fmt.Errorf("question %d: empty question text", i+1)
		}
		if len(rq.Options) != 4 {
			return nil, fmt.Errorf("question %d: got %d options, want 4", i+1, len(rq.Options))
		}

		unique := make(map[string]struct{}, 4)
		for _, opt := range rq.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, fmt.Errorf("question %d: empty option", i+1)
			}
			unique[opt] = struct{}{}
		}
		if len(unique) != 4 {
			return nil, fmt.Errorf("question %d: duplicate options", i+1)
		}

		idx := rq.CorrectIndex
		if idx == nil {
			idx = rq.Correct
		}
		if idx == nil || *idx < 0 || *idx > 3 {
			return nil, fmt.Errorf("question %d: correct index missing or out of range", i+1)
		}

		questions = append(questions, studygen.QuizQuestion{
			ID:           i + 1,
			Question:     strings.TrimSpace(rq.Question),
			Options:      rq.Options,
			CorrectIndex: *idx,
		})
	}
	return questions, nil
}

// extractJSONArray strips markdown fences and slices out the outermost JSON
// array from a model response.
func extractJSONArray(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start >= 0 && end > start {
		response = response[start : end+1]
	}
	return response
}

// truncateLog truncates a string for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
