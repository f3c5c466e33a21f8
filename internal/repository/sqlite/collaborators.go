package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"labrecord/internal/domain"
)

// AddCollaborator grants a user access to a project. Both sides of the join
// must exist, and a (project, user) pair can only be added once.
func (r *Repository) AddCollaborator(ctx context.Context, in domain.CollaboratorInsert) (*domain.ProjectCollaborator, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c := &domain.ProjectCollaborator{
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		Role:      in.Role,
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "projects", in.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferentialIntegrityError{Entity: "project", ID: in.ProjectID}
		}
		ok, err = rowExists(ctx, tx, "users", in.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferentialIntegrityError{Entity: "user", ID: in.UserID}
		}

		var one int
		err = tx.QueryRowContext(ctx,
			`SELECT 1 FROM project_collaborators WHERE project_id = ? AND user_id = ?`,
			in.ProjectID, in.UserID).Scan(&one)
		if err == nil {
			return &domain.ValidationError{Field: "userId", Reason: "already a collaborator"}
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check collaborator: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO project_collaborators (project_id, user_id, role)
			VALUES (?, ?, ?)
		`, c.ProjectID, c.UserID, c.Role)
		if err != nil {
			return fmt.Errorf("insert collaborator: %w", err)
		}
		c.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveCollaborator revokes a user's access to a project. Returns false
// when the pair was not present.
func (r *Repository) RemoveCollaborator(ctx context.Context, projectID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_collaborators WHERE project_id = ? AND user_id = ?`,
		projectID, userID)
	if err != nil {
		return false, fmt.Errorf("delete collaborator: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListCollaborators returns the collaborator rows for a project.
func (r *Repository) ListCollaborators(ctx context.Context, projectID int64) ([]*domain.ProjectCollaborator, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, user_id, role
		FROM project_collaborators WHERE project_id = ? ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query collaborators: %w", err)
	}
	defer rows.Close()

	collaborators := []*domain.ProjectCollaborator{}
	for rows.Next() {
		c := &domain.ProjectCollaborator{}
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Role); err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		collaborators = append(collaborators, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collaborators: %w", err)
	}
	return collaborators, nil
}
