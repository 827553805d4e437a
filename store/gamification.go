package store

import (
	"context"
	"encoding/json"

	"github.com/hrygo/studybuddy/internal/errors"
)

// GamificationProfile is the single process-wide progress record. It is
// lazily created with zero defaults on first read, overwritten as a whole on
// every update and never deleted.
type GamificationProfile struct {
	Points int `json:"points"`
	Streak int `json:"streak"`
	// LastStudyDate is a calendar date in ISO form (2006-01-02); empty
	// means the user has never studied.
	LastStudyDate   string `json:"lastStudyDate,omitempty"`
	TotalNotes      int    `json:"totalNotes"`
	TotalQuizzes    int    `json:"totalQuizzes"`
	TotalFlashcards int    `json:"totalFlashcards"`
	// Achievements holds unlocked achievement ids, unique and
	// insertion-ordered.
	Achievements []string `json:"achievements"`
}

// DefaultGamificationProfile returns the zero-value profile.
func DefaultGamificationProfile() *GamificationProfile {
	return &GamificationProfile{Achievements: []string{}}
}

// HasAchievement reports whether the achievement id is already unlocked.
func (p *GamificationProfile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile snapshot.
func (p *GamificationProfile) Clone() *GamificationProfile {
	clone := *p
	clone.Achievements = append([]string{}, p.Achievements...)
	return &clone
}

// GetGamificationProfile loads the profile, returning zero defaults when it
// has never been written.
func (s *Store) GetGamificationProfile(ctx context.Context) (*GamificationProfile, error) {
	raw, ok, err := s.driver.Get(ctx, GamificationKey)
	if err != nil {
		return nil, errors.PersistenceFailed("failed to load gamification profile", err)
	}
	if !ok {
		return DefaultGamificationProfile(), nil
	}

	var p GamificationProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, errors.PersistenceFailed("corrupt gamification profile", err)
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	return &p, nil
}

// SetGamificationProfile persists the profile as a whole-object replace.
func (s *Store) SetGamificationProfile(ctx context.Context, p *GamificationProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return errors.PersistenceFailed("failed to encode gamification profile", err)
	}
	if err := s.driver.Set(ctx, GamificationKey, string(raw)); err != nil {
		return errors.PersistenceFailed("failed to save gamification profile", err)
	}
	return nil
}
