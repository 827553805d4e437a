// Package store provides typed access to the two persisted collections of
// the study core: the note list and the gamification profile. Both are
// JSON blobs in an injected key-value driver; every write is a whole-object
// replace so no operation can leave state partially updated.
package store

import (
	"time"

	"github.com/hrygo/studybuddy/internal/profile"
)

const (
	// NotesKey is the KV key holding the JSON-encoded note collection.
	NotesKey = "notes"
	// GamificationKey is the KV key holding the JSON-encoded profile.
	GamificationKey = "gamification_data"
)

// Store provides typed access to all persisted objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// now is the clock used for note ids and display dates.
	now func() time.Time
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		profile: profile,
		driver:  driver,
		now:     time.Now,
	}
}

// GetDriver returns the underlying key-value driver.
func (s *Store) GetDriver() Driver {
	return s.driver
}

// SetClock overrides the store clock. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() error {
	return s.driver.Close()
}
