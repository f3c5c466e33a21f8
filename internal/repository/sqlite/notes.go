package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"labrecord/internal/domain"
)

func scanNote(s scanner) (*domain.Note, error) {
	n := &domain.Note{}
	var content sql.NullString
	if err := s.Scan(&n.ID, &n.Title, &content, &n.ExperimentID, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.Content = nullToString(content)
	return n, nil
}

const noteColumns = "id, title, content, experiment_id, author_id, created_at, updated_at"

// GetNote retrieves a single note by ID.
func (r *Repository) GetNote(ctx context.Context, id int64) (*domain.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query note: %w", err)
	}
	return n, nil
}

func (r *Repository) queryNotes(ctx context.Context, query string, args ...any) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// ListNotes returns all notes.
func (r *Repository) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	return r.queryNotes(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY id")
}

// ListNotesByExperiment returns the notes belonging to an experiment.
func (r *Repository) ListNotesByExperiment(ctx context.Context, experimentID int64) ([]*domain.Note, error) {
	return r.queryNotes(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE experiment_id = ? ORDER BY id", experimentID)
}

// CreateNote inserts a new note. Both the parent experiment and the author
// must exist.
func (r *Repository) CreateNote(ctx context.Context, in domain.NoteInsert) (*domain.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := now()
	n := &domain.Note{
		Title:        in.Title,
		Content:      in.Content,
		ExperimentID: in.ExperimentID,
		AuthorID:     in.AuthorID,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "experiments", in.ExperimentID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferentialIntegrityError{Entity: "experiment", ID: in.ExperimentID}
		}
		ok, err = rowExists(ctx, tx, "users", in.AuthorID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferentialIntegrityError{Entity: "user", ID: in.AuthorID}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO notes (title, content, experiment_id, author_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, n.Title, stringToNull(n.Content), n.ExperimentID, n.AuthorID, n.CreatedAt, n.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
		n.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNote merges the supplied fields into an existing note and refreshes
// updated_at. Moving to another experiment verifies the target exists.
func (r *Repository) UpdateNote(ctx context.Context, id int64, patch domain.NotePatch) (*domain.Note, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	sets := []string{"updated_at = ?"}
	args := []any{now()}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, stringToNull(*patch.Content))
	}
	if patch.ExperimentID != nil {
		sets = append(sets, "experiment_id = ?")
		args = append(args, *patch.ExperimentID)
	}
	args = append(args, id)

	var found bool
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if patch.ExperimentID != nil {
			ok, err := rowExists(ctx, tx, "experiments", *patch.ExperimentID)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.ReferentialIntegrityError{Entity: "experiment", ID: *patch.ExperimentID}
			}
		}

		res, err := tx.ExecContext(ctx,
			"UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return fmt.Errorf("update note: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		found = n > 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return r.GetNote(ctx, id)
}

// DeleteNote removes a note together with its attachments, as one
// transaction.
func (r *Repository) DeleteNote(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM attachments WHERE note_id = ?`, id); err != nil {
			return fmt.Errorf("delete attachments: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
