// Package gamification maintains the points/streak/achievement state machine.
// The engine is the sole writer of the persisted profile; every operation is
// a read-modify-write returning a fresh snapshot, and every persisted update
// is a whole-object replace.
package gamification

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrygo/studybuddy/internal/errors"
	"github.com/hrygo/studybuddy/store"
)

// Activity is the gamification counter bucket credited by an event.
// The set is closed: a fourth kind requires a catalog extension, not
// dynamic field synthesis.
type Activity string

const (
	ActivityNotes      Activity = "Notes"
	ActivityQuizzes    Activity = "Quizzes"
	ActivityFlashcards Activity = "Flashcards"
)

// dateLayout is the calendar-date form used for streak comparisons.
const dateLayout = "2006-01-02"

// Engine applies activity events to the gamification profile.
type Engine struct {
	store *store.Store

	// now supplies the clock for streak calendar math.
	now func() time.Time
}

// NewEngine creates a new gamification engine.
func NewEngine(store *store.Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// SetClock overrides the engine clock. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// AddPoints credits amount points and one activity count, persists and
// returns the updated profile. The engine performs no deduplication: the
// caller must invoke it exactly once per qualifying event.
func (e *Engine) AddPoints(ctx context.Context, amount int, activity Activity) (*store.GamificationProfile, error) {
	p, err := e.store.GetGamificationProfile(ctx)
	if err != nil {
		return nil, err
	}

	p.Points += amount
	switch activity {
	case ActivityNotes:
		p.TotalNotes++
	case ActivityQuizzes:
		p.TotalQuizzes++
	case ActivityFlashcards:
		p.TotalFlashcards++
	default:
		return nil, errors.InvalidArgument("unknown activity kind: " + string(activity))
	}

	if err := e.store.SetGamificationProfile(ctx, p); err != nil {
		return nil, err
	}

	slog.Debug("points added",
		"amount", amount,
		"activity", string(activity),
		"points", p.Points)
	return p, nil
}

// UpdateStreak advances the daily study streak. Calling it twice on the same
// calendar day never changes the streak on the second call.
func (e *Engine) UpdateStreak(ctx context.Context) (*store.GamificationProfile, error) {
	p, err := e.store.GetGamificationProfile(ctx)
	if err != nil {
		return nil, err
	}

	today := e.now().Format(dateLayout)
	yesterday := e.now().AddDate(0, 0, -1).Format(dateLayout)

	switch p.LastStudyDate {
	case today:
		// Already counted today.
		return p, nil
	case "":
		p.Streak = 1
	case yesterday:
		p.Streak++
	default:
		// A gap of two or more days resets the streak.
		p.Streak = 1
	}
	p.LastStudyDate = today

	if err := e.store.SetGamificationProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckAchievements evaluates the catalog against the given profile snapshot
// and returns newly unlocked achievements in catalog order. Ids already in
// the profile are never re-emitted; new ids are appended to the persisted
// set before returning.
func (e *Engine) CheckAchievements(ctx context.Context, p *store.GamificationProfile) ([]Achievement, error) {
	current, err := e.store.GetGamificationProfile(ctx)
	if err != nil {
		return nil, err
	}

	var unlocked []Achievement
	for _, a := range catalog {
		if p.HasAchievement(a.ID) || current.HasAchievement(a.ID) {
			continue
		}
		if a.Predicate(p) {
			unlocked = append(unlocked, a)
		}
	}
	if len(unlocked) == 0 {
		return nil, nil
	}

	for _, a := range unlocked {
		current.Achievements = append(current.Achievements, a.ID)
	}
	if err := e.store.SetGamificationProfile(ctx, current); err != nil {
		return nil, err
	}
	// Reflect the appended ids on the caller's snapshot.
	p.Achievements = append([]string{}, current.Achievements...)

	for _, a := range unlocked {
		slog.Info("achievement unlocked", "id", a.ID, "title", a.Title)
	}
	return unlocked, nil
}
