package memory

import (
	"context"
	"sort"
	"time"

	"labrecord/internal/domain"
)

// GetProject retrieves a single project by ID.
func (r *Repository) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	return copyProject(p), nil
}

// ListProjects returns all projects ordered by ID.
func (r *Repository) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, copyProject(p))
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

// ListProjectsForUser returns the union of projects the user owns and
// projects the user collaborates on, deduplicated by project ID.
func (r *Repository) ListProjectsForUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]bool)
	result := []*domain.Project{}

	for _, p := range r.projects {
		if p.OwnerID == userID {
			seen[p.ID] = true
			result = append(result, copyProject(p))
		}
	}
	for _, c := range r.collaborators {
		if c.UserID != userID || seen[c.ProjectID] {
			continue
		}
		if p, ok := r.projects[c.ProjectID]; ok {
			seen[p.ID] = true
			result = append(result, copyProject(p))
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CreateProject inserts a new project. The owner must exist.
func (r *Repository) CreateProject(ctx context.Context, in domain.ProjectInsert) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[in.OwnerID]; !ok {
		return nil, &domain.ReferentialIntegrityError{Entity: "user", ID: in.OwnerID}
	}

	ts := time.Now().UTC()
	p := &domain.Project{
		ID:          r.nextProjectID,
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	r.projects[p.ID] = p
	r.nextProjectID++

	return copyProject(p), nil
}

// UpdateProject merges the supplied fields into an existing project and
// refreshes UpdatedAt.
func (r *Repository) UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	p.UpdatedAt = time.Now().UTC()

	return copyProject(p), nil
}

// DeleteProject removes a project together with its experiments, their
// notes, those notes' attachments and the project's collaborator rows.
// The write lock is held for the whole plan, so no intermediate state is
// observable.
func (r *Repository) DeleteProject(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return false, nil
	}

	// Leaf-first: attachments, notes, experiments, collaborators, project.
	for expID, exp := range r.experiments {
		if exp.ProjectID != id {
			continue
		}
		r.deleteNotesOfExperimentLocked(expID)
		delete(r.experiments, expID)
	}
	for cID, c := range r.collaborators {
		if c.ProjectID == id {
			delete(r.collaborators, cID)
		}
	}
	delete(r.projects, id)

	r.log.Debug().Int64("project_id", id).Msg("project cascade deleted")
	return true, nil
}

// deleteNotesOfExperimentLocked removes an experiment's notes and their
// attachments. Caller holds the write lock.
func (r *Repository) deleteNotesOfExperimentLocked(experimentID int64) {
	for noteID, n := range r.notes {
		if n.ExperimentID != experimentID {
			continue
		}
		for attID, a := range r.attachments {
			if a.NoteID == noteID {
				delete(r.attachments, attID)
			}
		}
		delete(r.notes, noteID)
	}
}
