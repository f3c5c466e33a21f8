package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"labrecord/internal/domain"
)

func scanExperiment(s scanner) (*domain.Experiment, error) {
	e := &domain.Experiment{}
	var desc sql.NullString
	if err := s.Scan(&e.ID, &e.Name, &desc, &e.ProjectID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Description = nullToString(desc)
	return e, nil
}

const experimentColumns = "id, name, description, project_id, created_at, updated_at"

// GetExperiment retrieves a single experiment by ID.
func (r *Repository) GetExperiment(ctx context.Context, id int64) (*domain.Experiment, error) {
	e, err := scanExperiment(r.db.QueryRowContext(ctx,
		"SELECT "+experimentColumns+" FROM experiments WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query experiment: %w", err)
	}
	return e, nil
}

func (r *Repository) queryExperiments(ctx context.Context, query string, args ...any) ([]*domain.Experiment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query experiments: %w", err)
	}
	defer rows.Close()

	experiments := []*domain.Experiment{}
	for rows.Next() {
		e, err := scanExperiment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan experiment: %w", err)
		}
		experiments = append(experiments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experiments: %w", err)
	}
	return experiments, nil
}

// ListExperiments returns all experiments.
func (r *Repository) ListExperiments(ctx context.Context) ([]*domain.Experiment, error) {
	return r.queryExperiments(ctx, "SELECT "+experimentColumns+" FROM experiments ORDER BY id")
}

// ListExperimentsByProject returns the experiments belonging to a project.
func (r *Repository) ListExperimentsByProject(ctx context.Context, projectID int64) ([]*domain.Experiment, error) {
	return r.queryExperiments(ctx,
		"SELECT "+experimentColumns+" FROM experiments WHERE project_id = ? ORDER BY id", projectID)
}

// CreateExperiment inserts a new experiment. The parent project must exist.
func (r *Repository) CreateExperiment(ctx context.Context, in domain.ExperimentInsert) (*domain.Experiment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := now()
	e := &domain.Experiment{
		Name:        in.Name,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "projects", in.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferentialIntegrityError{Entity: "project", ID: in.ProjectID}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO experiments (name, description, project_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, e.Name, stringToNull(e.Description), e.ProjectID, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert experiment: %w", err)
		}
		e.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExperiment merges the supplied fields into an existing experiment
// and refreshes updated_at. Moving to another project verifies the target
// exists.
func (r *Repository) UpdateExperiment(ctx context.Context, id int64, patch domain.ExperimentPatch) (*domain.Experiment, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	sets := []string{"updated_at = ?"}
	args := []any{now()}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, stringToNull(*patch.Description))
	}
	if patch.ProjectID != nil {
		sets = append(sets, "project_id = ?")
		args = append(args, *patch.ProjectID)
	}
	args = append(args, id)

	var found bool
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if patch.ProjectID != nil {
			ok, err := rowExists(ctx, tx, "projects", *patch.ProjectID)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.ReferentialIntegrityError{Entity: "project", ID: *patch.ProjectID}
			}
		}

		res, err := tx.ExecContext(ctx,
			"UPDATE experiments SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return fmt.Errorf("update experiment: %w", err)
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

	return r.GetExperiment(ctx, id)
}

// DeleteExperiment removes an experiment together with its notes and their
// attachments, as one transaction.
func (r *Repository) DeleteExperiment(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM attachments WHERE note_id IN (
				SELECT id FROM notes WHERE experiment_id = ?)
		`, id); err != nil {
			return fmt.Errorf("delete attachments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE experiment_id = ?`, id); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM experiments WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete experiment: %w", err)
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
	if deleted {
		r.log.Debug().Int64("experiment_id", id).Msg("experiment cascade deleted")
	}
	return deleted, nil
}
