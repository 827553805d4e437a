package gamification

import "github.com/hrygo/studybuddy/store"

// Achievement is one static catalog entry. The catalog is immutable;
// membership in a profile's achievement set is append-only per id.
type Achievement struct {
	ID          string
	Title       string
	Description string
	// Predicate reports whether the profile snapshot qualifies.
	Predicate func(*store.GamificationProfile) bool
}

// catalog is the fixed achievement catalog, evaluated in order.
var catalog = []Achievement{
	{
		ID:          "first_note",
		Title:       "First Steps",
		Description: "Created your first note",
		Predicate:   func(p *store.GamificationProfile) bool { return p.TotalNotes >= 1 },
	},
	{
		ID:          "note_master",
		Title:       "Note Master",
		Description: "Created 10 notes",
		Predicate:   func(p *store.GamificationProfile) bool { return p.TotalNotes >= 10 },
	},
	{
		ID:          "quiz_starter",
		Title:       "Quiz Starter",
		Description: "Completed your first quiz",
		Predicate:   func(p *store.GamificationProfile) bool { return p.TotalQuizzes >= 1 },
	},
	{
		ID:          "quiz_expert",
		Title:       "Quiz Expert",
		Description: "Completed 5 quizzes",
		Predicate:   func(p *store.GamificationProfile) bool { return p.TotalQuizzes >= 5 },
	},
	{
		ID:          "flashcard_fan",
		Title:       "Flashcard Fan",
		Description: "Used flashcards for the first time",
		Predicate:   func(p *store.GamificationProfile) bool { return p.TotalFlashcards >= 1 },
	},
	{
		ID:          "streak_3",
		Title:       "3-Day Streak",
		Description: "Studied for 3 consecutive days",
		Predicate:   func(p *store.GamificationProfile) bool { return p.Streak >= 3 },
	},
	{
		ID:          "streak_7",
		Title:       "Week Warrior",
		Description: "Studied for 7 consecutive days",
		Predicate:   func(p *store.GamificationProfile) bool { return p.Streak >= 7 },
	},
	{
		ID:          "points_100",
		Title:       "Century Club",
		Description: "Earned 100 points",
		Predicate:   func(p *store.GamificationProfile) bool { return p.Points >= 100 },
	},
	{
		ID:          "points_500",
		Title:       "Point Master",
		Description: "Earned 500 points",
		Predicate:   func(p *store.GamificationProfile) bool { return p.Points >= 500 },
	},
}

// Catalog returns the static achievement catalog in evaluation order.
func Catalog() []Achievement {
	return catalog
}
