package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/studybuddy/internal/errors"
	"github.com/hrygo/studybuddy/internal/profile"
	"github.com/hrygo/studybuddy/store"
	"github.com/hrygo/studybuddy/store/db/memory"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(memory.NewDB(), &profile.Profile{Mode: "dev", Driver: "memory"})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndListNotes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.CreateNote(ctx, "First note about photosynthesis.")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.NotEmpty(t, first.UID)
	assert.NotEmpty(t, first.Date)
	assert.Empty(t, first.Summary)

	second, err := s.CreateNote(ctx, "Second note about calculus.")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first.ID, notes[0].ID)
	assert.Equal(t, "Second note about calculus.", notes[1].Text)
}

func TestCreateNoteMonotonicIDsSameMillisecond(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	frozen := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return frozen })

	a, err := s.CreateNote(ctx, "note a")
	require.NoError(t, err)
	b, err := s.CreateNote(ctx, "note b")
	require.NoError(t, err)
	c, err := s.CreateNote(ctx, "note c")
	require.NoError(t, err)

	assert.Equal(t, frozen.UnixMilli(), a.ID)
	assert.Equal(t, a.ID+1, b.ID)
	assert.Equal(t, b.ID+1, c.ID)
}

func TestAttachSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	note, err := s.CreateNote(ctx, "Water evaporates from the oceans.")
	require.NoError(t, err)

	updated, err := s.AttachSummary(ctx, note.ID, "Water cycle basics.")
	require.NoError(t, err)
	assert.Equal(t, "Water cycle basics.", updated.Summary)

	reloaded, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Water cycle basics.", reloaded.Summary)
	// The text is untouched.
	assert.Equal(t, "Water evaporates from the oceans.", reloaded.Text)
}

func TestAttachSummaryUnknownNote(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AttachSummary(ctx, 12345, "whatever")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument))
}

func TestClearNotes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateNote(ctx, "doomed note")
	require.NoError(t, err)

	require.NoError(t, s.ClearNotes(ctx))

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Clearing an empty collection is fine.
	require.NoError(t, s.ClearNotes(ctx))
}

func TestListNotesCorruptPayload(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.GetDriver().Set(ctx, store.NotesKey, "{not json"))

	_, err := s.ListNotes(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePersistenceFailed))
}
