package memory

import (
	"context"
	"sort"

	"labrecord/internal/domain"
)

// SearchNotes returns notes whose title or content contains the query,
// case-insensitively. A blank query matches nothing.
func (r *Repository) SearchNotes(ctx context.Context, query string) ([]*domain.Note, error) {
	q, ok := foldQuery(query)
	if !ok {
		return []*domain.Note{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := []*domain.Note{}
	for _, n := range r.notes {
		if containsFold(q, n.Title, n.Content) {
			notes = append(notes, copyNote(n))
		}
	}
	return sortNotes(notes), nil
}

// SearchProjects returns projects whose name or description contains the
// query, case-insensitively. A blank query matches nothing.
func (r *Repository) SearchProjects(ctx context.Context, query string) ([]*domain.Project, error) {
	q, ok := foldQuery(query)
	if !ok {
		return []*domain.Project{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := []*domain.Project{}
	for _, p := range r.projects {
		if containsFold(q, p.Name, p.Description) {
			projects = append(projects, copyProject(p))
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

// SearchExperiments returns experiments whose name or description contains
// the query, case-insensitively. A blank query matches nothing.
func (r *Repository) SearchExperiments(ctx context.Context, query string) ([]*domain.Experiment, error) {
	q, ok := foldQuery(query)
	if !ok {
		return []*domain.Experiment{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	experiments := []*domain.Experiment{}
	for _, e := range r.experiments {
		if containsFold(q, e.Name, e.Description) {
			experiments = append(experiments, copyExperiment(e))
		}
	}
	return sortExperiments(experiments), nil
}
