package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"labrecord/internal/domain"
)

func scanAttachment(s scanner) (*domain.Attachment, error) {
	a := &domain.Attachment{}
	if err := s.Scan(&a.ID, &a.FileName, &a.FileSize, &a.FileType, &a.FileData, &a.NoteID, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

const attachmentColumns = "id, file_name, file_size, file_type, file_data, note_id, created_at"

// GetAttachment retrieves a single attachment by ID, payload included.
func (r *Repository) GetAttachment(ctx context.Context, id int64) (*domain.Attachment, error) {
	a, err := scanAttachment(r.db.QueryRowContext(ctx,
		"SELECT "+attachmentColumns+" FROM attachments WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query attachment: %w", err)
	}
	return a, nil
}

// ListAttachmentsByNote returns the attachments belonging to a note.
func (r *Repository) ListAttachmentsByNote(ctx context.Context, noteID int64) ([]*domain.Attachment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+attachmentColumns+" FROM attachments WHERE note_id = ? ORDER BY id", noteID)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}
	defer rows.Close()

	attachments := []*domain.Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}
	return attachments, nil
}

// CreateAttachment inserts a new attachment. The parent note must exist.
// The payload arrives already decoded and is held fully in memory.
func (r *Repository) CreateAttachment(ctx context.Context, in domain.AttachmentInsert) (*domain.Attachment, error) {
	if err := in.Validate(r.maxBytes); err != nil {
		return nil, err
	}

	a := &domain.Attachment{
		FileName:  in.FileName,
		FileSize:  in.FileSize,
		FileType:  in.FileType,
		FileData:  in.FileData,
		NoteID:    in.NoteID,
		CreatedAt: now(),
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "notes", in.NoteID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferentialIntegrityError{Entity: "note", ID: in.NoteID}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO attachments (file_name, file_size, file_type, file_data, note_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, a.FileName, a.FileSize, a.FileType, a.FileData, a.NoteID, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert attachment: %w", err)
		}
		a.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAttachment removes a single attachment.
func (r *Repository) DeleteAttachment(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete attachment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
