package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hrygo/studybuddy/internal/errors"
)

// MinSummaryInputLength is the minimum trimmed text length for summarization.
const MinSummaryInputLength = 50

const summarySystemPrompt = "You are a study assistant. Condense the user's notes into a short, " +
	"factual summary. Respond with the summary text only, no preamble."

const summaryUserPrompt = `Summarize the following study notes in roughly %d to %d words.

%s`

// SummarizerConfig holds the length hints sent to the remote model.
type SummarizerConfig struct {
	MaxLength int
	MinLength int
}

// DefaultSummarizerConfig returns the default summary length hints.
func DefaultSummarizerConfig() *SummarizerConfig {
	return &SummarizerConfig{MaxLength: 150, MinLength: 30}
}

// Summarizer asks a remote language model for a condensed summary.
// Failures are reported as REMOTE_UNAVAILABLE; the caller decides whether to
// fall back to studygen.LocalSummary.
type Summarizer struct {
	chat   ChatCompleter
	config *SummarizerConfig
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(chat ChatCompleter, config *SummarizerConfig) *Summarizer {
	if config == nil {
		config = DefaultSummarizerConfig()
	}
	return &Summarizer{chat: chat, config: config}
}

// Summarize returns a remote summary of text. It fails with INPUT_TOO_SHORT
// when the trimmed text is under the minimum length, and REMOTE_UNAVAILABLE
// on any transport or shape failure.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinSummaryInputLength {
		return "", errors.InputTooShort("text too short for summarization")
	}

	messages := []Message{
		SystemPrompt(summarySystemPrompt),
		UserMessage(fmt.Sprintf(summaryUserPrompt, s.config.MinLength, s.config.MaxLength, trimmed)),
	}

	response, err := s.chat.Chat(ctx, messages)
	if err != nil {
		return "", errors.RemoteUnavailable("remote summarization failed", err)
	}

	summary := strings.TrimSpace(response)
	if summary == "" {
		return "", errors.RemoteUnavailable("remote summarization returned empty text", nil)
	}
	return summary, nil
}
