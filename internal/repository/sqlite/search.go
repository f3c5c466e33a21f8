package sqlite

import (
	"context"

	"labrecord/internal/domain"
)

// SearchNotes returns notes whose title or content contains the query,
// case-insensitively. A blank query matches nothing.
func (r *Repository) SearchNotes(ctx context.Context, query string) ([]*domain.Note, error) {
	pattern, ok := likePattern(query)
	if !ok {
		return []*domain.Note{}, nil
	}
	return r.queryNotes(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE LOWER(title) LIKE ? ESCAPE '\'
		   OR LOWER(COALESCE(content, '')) LIKE ? ESCAPE '\'
		ORDER BY id
	`, pattern, pattern)
}

// SearchProjects returns projects whose name or description contains the
// query, case-insensitively. A blank query matches nothing.
func (r *Repository) SearchProjects(ctx context.Context, query string) ([]*domain.Project, error) {
	pattern, ok := likePattern(query)
	if !ok {
		return []*domain.Project{}, nil
	}
	return r.queryProjects(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		   OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'
		ORDER BY id
	`, pattern, pattern)
}

// SearchExperiments returns experiments whose name or description contains
// the query, case-insensitively. A blank query matches nothing.
func (r *Repository) SearchExperiments(ctx context.Context, query string) ([]*domain.Experiment, error) {
	pattern, ok := likePattern(query)
	if !ok {
		return []*domain.Experiment{}, nil
	}
	return r.queryExperiments(ctx, `
		SELECT `+experimentColumns+` FROM experiments
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		   OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'
		ORDER BY id
	`, pattern, pattern)
}
