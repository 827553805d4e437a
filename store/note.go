package store

import (
	"context"
	"encoding/json"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/studybuddy/internal/errors"
)

// noteDateLayout is the human-readable creation timestamp shown with a note.
const noteDateLayout = "Jan 2, 2006 3:04 PM"

// Note is one saved study note. Notes are immutable once created except that
// a summary may be attached later; the whole collection is replaced on every
// write and destroyed only by an explicit bulk clear.
type Note struct {
	// ID is the creation timestamp in unix milliseconds; unique and
	// monotonically increasing within the collection.
	ID int64 `json:"id"`
	// UID is a stable short handle for external references.
	UID string `json:"uid"`
	// Text is the raw extracted note text.
	Text string `json:"text"`
	// Summary is attached after creation; empty means absent.
	Summary string `json:"summary,omitempty"`
	// Date is the display timestamp.
	Date string `json:"date"`
}

// ListNotes returns all saved notes in creation order.
func (s *Store) ListNotes(ctx context.Context) ([]*Note, error) {
	raw, ok, err := s.driver.Get(ctx, NotesKey)
	if err != nil {
		return nil, errors.PersistenceFailed("failed to load notes", err)
	}
	if !ok {
		return nil, nil
	}

	var notes []*Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, errors.PersistenceFailed("corrupt note collection", err)
	}
	return notes, nil
}

// GetNote returns the note with the given id.
func (s *Store) GetNote(ctx context.Context, id int64) (*Note, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		if note.ID == id {
			return note, nil
		}
	}
	return nil, errors.InvalidArgument("note not found")
}

// CreateNote appends a new note and persists the whole collection. The note
// is either fully saved or not saved at all.
func (s *Store) CreateNote(ctx context.Context, text string) (*Note, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	id := s.now().UnixMilli()
	// Keep ids strictly monotonic even when two saves land in the same
	// millisecond.
	if n := len(notes); n > 0 && id <= notes[n-1].ID {
		id = notes[n-1].ID + 1
	}

	note := &Note{
		ID:   id,
		UID:  shortuuid.New(),
		Text: text,
		Date: s.now().Format(noteDateLayout),
	}
	notes = append(notes, note)

	if err := s.saveNotes(ctx, notes); err != nil {
		return nil, err
	}
	return note, nil
}

// AttachSummary sets the summary on an existing note. This is the only
// mutation a note permits after creation.
func (s *Store) AttachSummary(ctx context.Context, id int64, summary string) (*Note, error) {
	notes, err := s.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	var updated *Note
	for _, note := range notes {
		if note.ID == id {
			note.Summary = summary
			updated = note
			break
		}
	}
	if updated == nil {
		return nil, errors.InvalidArgument("note not found")
	}

	if err := s.saveNotes(ctx, notes); err != nil {
		return nil, err
	}
	return updated, nil
}

// ClearNotes removes the whole note collection.
func (s *Store) ClearNotes(ctx context.Context) error {
	if err := s.driver.Remove(ctx, NotesKey); err != nil {
		return errors.PersistenceFailed("failed to clear notes", err)
	}
	return nil
}

func (s *Store) saveNotes(ctx context.Context, notes []*Note) error {
	raw, err := json.Marshal(notes)
	if err != nil {
		return errors.PersistenceFailed("failed to encode notes", err)
	}
	if err := s.driver.Set(ctx, NotesKey, string(raw)); err != nil {
		return errors.PersistenceFailed("failed to save notes", err)
	}
	return nil
}
