package memory

import (
	"context"
	"sort"
	"time"

	"labrecord/internal/domain"
)

// GetNote retrieves a single note by ID.
func (r *Repository) GetNote(ctx context.Context, id int64) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	return copyNote(n), nil
}

func sortNotes(notes []*domain.Note) []*domain.Note {
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes
}

// ListNotes returns all notes ordered by ID.
func (r *Repository) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*domain.Note, 0, len(r.notes))
	for _, n := range r.notes {
		notes = append(notes, copyNote(n))
	}
	return sortNotes(notes), nil
}

// ListNotesByExperiment returns the notes belonging to an experiment.
func (r *Repository) ListNotesByExperiment(ctx context.Context, experimentID int64) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := []*domain.Note{}
	for _, n := range r.notes {
		if n.ExperimentID == experimentID {
			notes = append(notes, copyNote(n))
		}
	}
	return sortNotes(notes), nil
}

// CreateNote inserts a new note. Both the parent experiment and the author
// must exist.
func (r *Repository) CreateNote(ctx context.Context, in domain.NoteInsert) (*domain.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.experiments[in.ExperimentID]; !ok {
		return nil, &domain.ReferentialIntegrityError{Entity: "experiment", ID: in.ExperimentID}
	}
	if _, ok := r.users[in.AuthorID]; !ok {
		return nil, &domain.ReferentialIntegrityError{Entity: "user", ID: in.AuthorID}
	}

	ts := time.Now().UTC()
	n := &domain.Note{
		ID:           r.nextNoteID,
		Title:        in.Title,
		Content:      in.Content,
		ExperimentID: in.ExperimentID,
		AuthorID:     in.AuthorID,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	r.notes[n.ID] = n
	r.nextNoteID++

	return copyNote(n), nil
}

// UpdateNote merges the supplied fields into an existing note and refreshes
// UpdatedAt. Moving to another experiment verifies the target exists.
func (r *Repository) UpdateNote(ctx context.Context, id int64, patch domain.NotePatch) (*domain.Note, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	if patch.ExperimentID != nil {
		if _, ok := r.experiments[*patch.ExperimentID]; !ok {
			return nil, &domain.ReferentialIntegrityError{Entity: "experiment", ID: *patch.ExperimentID}
		}
		n.ExperimentID = *patch.ExperimentID
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	n.UpdatedAt = time.Now().UTC()

	return copyNote(n), nil
}

// DeleteNote removes a note together with its attachments.
func (r *Repository) DeleteNote(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return false, nil
	}

	for attID, a := range r.attachments {
		if a.NoteID == id {
			delete(r.attachments, attID)
		}
	}
	delete(r.notes, id)

	return true, nil
}
