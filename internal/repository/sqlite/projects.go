package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"labrecord/internal/domain"
)

func scanProject(s scanner) (*domain.Project, error) {
	p := &domain.Project{}
	var desc sql.NullString
	if err := s.Scan(&p.ID, &p.Name, &desc, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = nullToString(desc)
	return p, nil
}

const projectColumns = "id, name, description, owner_id, created_at, updated_at"

// GetProject retrieves a single project by ID.
func (r *Repository) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query project: %w", err)
	}
	return p, nil
}

func (r *Repository) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// ListProjects returns all projects.
func (r *Repository) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return r.queryProjects(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY id")
}

// ListProjectsForUser returns the union of projects the user owns and
// projects the user collaborates on, deduplicated by project ID.
func (r *Repository) ListProjectsForUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	owned, err := r.queryProjects(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE owner_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}

	collaborated, err := r.queryProjects(ctx, `
		SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at
		FROM projects p
		JOIN project_collaborators pc ON pc.project_id = p.id
		WHERE pc.user_id = ? ORDER BY p.id
	`, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(owned))
	result := make([]*domain.Project, 0, len(owned)+len(collaborated))
	for _, p := range owned {
		seen[p.ID] = true
		result = append(result, p)
	}
	for _, p := range collaborated {
		if !seen[p.ID] {
			seen[p.ID] = true
			result = append(result, p)
		}
	}
	return result, nil
}

// CreateProject inserts a new project. The owner must exist.
func (r *Repository) CreateProject(ctx context.Context, in domain.ProjectInsert) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := now()
	p := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := rowExists(ctx, tx, "users", in.OwnerID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ReferentialIntegrityError{Entity: "user", ID: in.OwnerID}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO projects (name, description, owner_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, p.Name, stringToNull(p.Description), p.OwnerID, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		p.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProject merges the supplied fields into an existing project and
// refreshes updated_at.
func (r *Repository) UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
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
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, nil
	}

	return r.GetProject(ctx, id)
}

// DeleteProject removes a project together with its experiments, their
// notes, those notes' attachments and the project's collaborator rows.
// The whole plan commits or rolls back as one transaction.
func (r *Repository) DeleteProject(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		// Leaf-first so no orphan is ever observable.
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM attachments WHERE note_id IN (
				SELECT id FROM notes WHERE experiment_id IN (
					SELECT id FROM experiments WHERE project_id = ?))
		`, id); err != nil {
			return fmt.Errorf("delete attachments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM notes WHERE experiment_id IN (
				SELECT id FROM experiments WHERE project_id = ?)
		`, id); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM experiments WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("delete experiments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM project_collaborators WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("delete collaborators: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
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
		r.log.Debug().Int64("project_id", id).Msg("project cascade deleted")
	}
	return deleted, nil
}
