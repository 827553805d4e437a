package study

import (
	"math"

	"github.com/hrygo/studybuddy/internal/errors"
	"github.com/hrygo/studybuddy/plugin/studygen"
)

// noSelection marks a question without a chosen option.
const noSelection = -1

// QuizRun is the ordered answer cursor over one generated quiz. Questions are
// answered strictly in sequence: an option must be selected before advancing,
// and the score is fixed the moment the cursor moves past a question.
type QuizRun struct {
	questions []studygen.QuizQuestion
	index     int
	selected  int
	score     int
	completed bool
	rewarded  bool
}

// NewQuizRun starts a run over questions.
func NewQuizRun(questions []studygen.QuizQuestion) (*QuizRun, error) {
	if len(questions) == 0 {
		return nil, errors.InvalidArgument("quiz has no questions")
	}
	return &QuizRun{questions: questions, selected: noSelection}, nil
}

// Current returns the question under the cursor. It must not be called after
// the run completed.
func (r *QuizRun) Current() studygen.QuizQuestion {
	return r.questions[r.index]
}

// Select chooses an option for the current question. Re-selecting before
// Next replaces the previous choice.
func (r *QuizRun) Select(option int) error {
	if r.completed {
		return errors.InvalidArgument("quiz run already completed")
	}
	if option < 0 || option >= len(r.Current().Options) {
		return errors.InvalidArgument("option index out of range")
	}
	r.selected = option
	return nil
}

// Next scores the current selection and advances the cursor. Advancing past
// the final question completes the run.
func (r *QuizRun) Next() error {
	if r.completed {
		return errors.InvalidArgument("quiz run already completed")
	}
	if r.selected == noSelection {
		return errors.InvalidArgument("no option selected")
	}

	if r.selected == r.Current().CorrectIndex {
		r.score++
	}
	r.selected = noSelection

	r.index++
	if r.index >= len(r.questions) {
		r.completed = true
	}
	return nil
}

// Score returns the number of correctly answered questions so far.
func (r *QuizRun) Score() int {
	return r.score
}

// Percent returns the score as a rounded percentage of all questions.
func (r *QuizRun) Percent() int {
	if len(r.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(r.score) / float64(len(r.questions)) * 100))
}

// Completed reports whether every question has been answered.
func (r *QuizRun) Completed() bool {
	return r.completed
}

// Len returns the number of questions in the run.
func (r *QuizRun) Len() int {
	return len(r.questions)
}

// FlashcardRun is the card cursor over one generated deck. Advancing past the
// final card completes the run.
type FlashcardRun struct {
	cards     []studygen.Flashcard
	index     int
	completed bool
	rewarded  bool
}

// NewFlashcardRun starts a run over cards.
func NewFlashcardRun(cards []studygen.Flashcard) (*FlashcardRun, error) {
	if len(cards) == 0 {
		return nil, errors.InvalidArgument("flashcard deck is empty")
	}
	return &FlashcardRun{cards: cards}, nil
}

// Current returns the card under the cursor and whether one remains.
func (r *FlashcardRun) Current() (studygen.Flashcard, bool) {
	if r.completed {
		return studygen.Flashcard{}, false
	}
	return r.cards[r.index], true
}

// Advance moves to the next card; past the last card the run completes.
func (r *FlashcardRun) Advance() {
	if r.completed {
		return
	}
	r.index++
	if r.index >= len(r.cards) {
		r.completed = true
	}
}

// Completed reports whether the cursor advanced past the final card.
func (r *FlashcardRun) Completed() bool {
	return r.completed
}

// Len returns the number of cards in the run.
func (r *FlashcardRun) Len() int {
	return len(r.cards)
}
