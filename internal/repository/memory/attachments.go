package memory

import (
	"context"
	"sort"
	"time"

	"labrecord/internal/domain"
)

// GetAttachment retrieves a single attachment by ID, payload included.
func (r *Repository) GetAttachment(ctx context.Context, id int64) (*domain.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.attachments[id]
	if !ok {
		return nil, nil
	}
	return copyAttachment(a), nil
}

// ListAttachmentsByNote returns the attachments belonging to a note.
func (r *Repository) ListAttachmentsByNote(ctx context.Context, noteID int64) ([]*domain.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attachments := []*domain.Attachment{}
	for _, a := range r.attachments {
		if a.NoteID == noteID {
			attachments = append(attachments, copyAttachment(a))
		}
	}
	sort.Slice(attachments, func(i, j int) bool { return attachments[i].ID < attachments[j].ID })
	return attachments, nil
}

// CreateAttachment inserts a new attachment. The parent note must exist.
func (r *Repository) CreateAttachment(ctx context.Context, in domain.AttachmentInsert) (*domain.Attachment, error) {
	if err := in.Validate(r.maxBytes); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[in.NoteID]; !ok {
		return nil, &domain.ReferentialIntegrityError{Entity: "note", ID: in.NoteID}
	}

	a := &domain.Attachment{
		ID:        r.nextAttachmentID,
		FileName:  in.FileName,
		FileSize:  in.FileSize,
		FileType:  in.FileType,
		FileData:  append([]byte(nil), in.FileData...),
		NoteID:    in.NoteID,
		CreatedAt: time.Now().UTC(),
	}
	r.attachments[a.ID] = a
	r.nextAttachmentID++

	return copyAttachment(a), nil
}

// DeleteAttachment removes a single attachment.
func (r *Repository) DeleteAttachment(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attachments[id]; !ok {
		return false, nil
	}
	delete(r.attachments, id)
	return true, nil
}
