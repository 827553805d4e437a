// Package study orchestrates note capture, content generation and reward
// bookkeeping into user-facing study sessions. Remote generation failures
// degrade to deterministic local fallbacks; only undersized input and
// persistence failures surface as errors.
package study

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/hrygo/studybuddy/internal/errors"
	"github.com/hrygo/studybuddy/internal/observability"
	"github.com/hrygo/studybuddy/plugin/ai"
	"github.com/hrygo/studybuddy/plugin/studygen"
	"github.com/hrygo/studybuddy/server/service/gamification"
	"github.com/hrygo/studybuddy/store"
)

// Points awarded per completed activity.
const (
	PointsPerNote       = 10
	PointsPerQuiz       = 20
	PointsPerFlashcards = 15
)

// Summarizer produces a condensed summary of note text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// QuizGenerator produces a multiple-choice quiz from note text.
type QuizGenerator interface {
	Generate(ctx context.Context, text string) ([]studygen.QuizQuestion, error)
}

// Config configures the study service.
type Config struct {
	// QuizSeed seeds the fallback quiz option shuffle. Zero means time-based.
	QuizSeed int64
}

// Service coordinates the store, the gamification engine and the content
// generators. The remote summarizer and quiz generator are optional; when nil
// the local strategies are used directly.
type Service struct {
	store      *store.Store
	engine     *gamification.Engine
	summarizer Summarizer
	quizzer    QuizGenerator
	quizzes    *studygen.QuizBuilder
	flashcards *studygen.FlashcardBuilder
}

// NewService creates a new study service. summarizer and quizzer may be nil.
func NewService(s *store.Store, engine *gamification.Engine, summarizer Summarizer, quizzer QuizGenerator, config *Config) *Service {
	if config == nil {
		config = &Config{}
	}
	return &Service{
		store:      s,
		engine:     engine,
		summarizer: summarizer,
		quizzer:    quizzer,
		quizzes:    studygen.NewQuizBuilder(&studygen.QuizBuilderConfig{Seed: config.QuizSeed}),
		flashcards: studygen.NewFlashcardBuilder(nil),
	}
}

// StudySet is the full generated study bundle for one note.
type StudySet struct {
	Note            *store.Note
	Summary         string
	SummaryFallback bool
	Quiz            []studygen.QuizQuestion
	QuizFallback    bool
	Flashcards      []studygen.Flashcard
}

// SaveNote persists a new note and credits the note activity exactly once.
// A persistence failure aborts before any points are awarded.
func (s *Service) SaveNote(ctx context.Context, text string) (*store.Note, *store.GamificationProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, errors.InvalidArgument("note text is empty")
	}

	note, err := s.store.CreateNote(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.engine.AddPoints(ctx, PointsPerNote, gamification.ActivityNotes)
	if err != nil {
		return nil, nil, err
	}
	return note, profile, nil
}

// GenerateStudySet generates summary, quiz and flashcards for a stored note.
// Summary and quiz run concurrently; a remote failure on either substitutes
// the local fallback and flags it, while undersized input fails the whole
// set. The generated summary is attached to the note before returning.
func (s *Service) GenerateStudySet(ctx context.Context, noteID int64) (*StudySet, error) {
	note, err := s.store.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	sc := observability.NewSessionContext(nil, "study_set")
	set := &StudySet{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, fallback, err := s.summarize(gctx, note.Text)
		if err != nil {
			return err
		}
		set.Summary, set.SummaryFallback = summary, fallback
		return nil
	})
	g.Go(func() error {
		quiz, fallback, err := s.buildQuiz(gctx, note.Text)
		if err != nil {
			return err
		}
		set.Quiz, set.QuizFallback = quiz, fallback
		return nil
	})
	if err := g.Wait(); err != nil {
		sc.Error("study set generation failed", err,
			slog.Int64(observability.LogFieldNoteID, note.ID),
			slog.String(observability.LogFieldErrorCode, string(errors.GetCodeFromError(err, errors.ErrCodeRemoteUnavailable))))
		return nil, err
	}

	note, err = s.store.AttachSummary(ctx, note.ID, set.Summary)
	if err != nil {
		return nil, err
	}
	set.Note = note
	set.Flashcards = s.flashcards.Build(note.Text, set.Summary)

	sc.Info("study set generated",
		slog.Int64(observability.LogFieldNoteID, note.ID),
		slog.Bool(observability.LogFieldFallback, set.SummaryFallback || set.QuizFallback),
		slog.Int("questions", len(set.Quiz)),
		slog.Int("flashcards", len(set.Flashcards)),
		slog.Int64(observability.LogFieldDuration, sc.DurationMs()))
	return set, nil
}

// summarize runs the remote summarizer when configured, degrading to the
// local extract on remote failure. The length gate applies on both paths.
func (s *Service) summarize(ctx context.Context, text string) (string, bool, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < ai.MinSummaryInputLength {
		return "", false, errors.InputTooShort("text too short for summarization")
	}

	if s.summarizer == nil {
		return studygen.LocalSummary(text), true, nil
	}

	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		if isFallbackErr(err) {
			slog.Warn("remote summary unavailable, using local summary",
				observability.LogFieldErrorCode, string(errors.GetCodeFromError(err, errors.ErrCodeRemoteUnavailable)))
			return studygen.LocalSummary(text), true, nil
		}
		return "", false, err
	}
	return summary, false, nil
}

// buildQuiz runs the remote quiz generator when configured, degrading to the
// deterministic fill-in-the-blank builder on remote failure.
func (s *Service) buildQuiz(ctx context.Context, text string) ([]studygen.QuizQuestion, bool, error) {
	if s.quizzer == nil {
		quiz, err := s.quizzes.Build(text)
		if err != nil {
			return nil, false, err
		}
		return quiz, true, nil
	}

	quiz, err := s.quizzer.Generate(ctx, text)
	if err != nil {
		if isFallbackErr(err) {
			slog.Warn("remote quiz unavailable, using local quiz",
				observability.LogFieldErrorCode, string(errors.GetCodeFromError(err, errors.ErrCodeRemoteUnavailable)))
			quiz, err = s.quizzes.Build(text)
			if err != nil {
				return nil, false, err
			}
			return quiz, true, nil
		}
		return nil, false, err
	}
	return quiz, false, nil
}

// isFallbackErr reports whether err allows degrading to local generation.
func isFallbackErr(err error) bool {
	return errors.IsCode(err, errors.ErrCodeRemoteUnavailable) ||
		errors.IsCode(err, errors.ErrCodeInvalidPayload)
}

// CompleteQuiz credits the quiz activity for a finished run. Each run is
// credited at most once regardless of how often it is submitted.
func (s *Service) CompleteQuiz(ctx context.Context, run *QuizRun) (*store.GamificationProfile, error) {
	if run == nil || !run.Completed() {
		return nil, errors.InvalidArgument("quiz run is not completed")
	}
	if run.rewarded {
		return s.store.GetGamificationProfile(ctx)
	}

	profile, err := s.engine.AddPoints(ctx, PointsPerQuiz, gamification.ActivityQuizzes)
	if err != nil {
		return nil, err
	}
	run.rewarded = true

	slog.Info("quiz completed",
		"score", run.Score(),
		"percent", run.Percent(),
		"points", profile.Points)
	return profile, nil
}

// CompleteFlashcards credits the flashcard activity for a finished deck run,
// at most once per run.
func (s *Service) CompleteFlashcards(ctx context.Context, run *FlashcardRun) (*store.GamificationProfile, error) {
	if run == nil || !run.Completed() {
		return nil, errors.InvalidArgument("flashcard run is not completed")
	}
	if run.rewarded {
		return s.store.GetGamificationProfile(ctx)
	}

	profile, err := s.engine.AddPoints(ctx, PointsPerFlashcards, gamification.ActivityFlashcards)
	if err != nil {
		return nil, err
	}
	run.rewarded = true
	return profile, nil
}

// Notification is one user-facing achievement unlock message.
type Notification struct {
	Title       string
	Description string
}

// ViewProfile advances the daily streak, evaluates achievements and returns
// the fresh profile with notifications for any new unlocks.
func (s *Service) ViewProfile(ctx context.Context) (*store.GamificationProfile, []Notification, error) {
	profile, err := s.engine.UpdateStreak(ctx)
	if err != nil {
		return nil, nil, err
	}

	unlocked, err := s.engine.CheckAchievements(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	var notifications []Notification
	for _, a := range unlocked {
		notifications = append(notifications, Notification{
			Title:       "Achievement Unlocked: " + a.Title,
			Description: a.Description,
		})
	}
	return profile, notifications, nil
}
