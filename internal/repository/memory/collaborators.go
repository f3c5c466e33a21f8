package memory

import (
	"context"
	"sort"

	"labrecord/internal/domain"
)

// AddCollaborator grants a user access to a project. Both sides of the join
// must exist, and a (project, user) pair can only be added once.
func (r *Repository) AddCollaborator(ctx context.Context, in domain.CollaboratorInsert) (*domain.ProjectCollaborator, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[in.ProjectID]; !ok {
		return nil, &domain.ReferentialIntegrityError{Entity: "project", ID: in.ProjectID}
	}
	if _, ok := r.users[in.UserID]; !ok {
		return nil, &domain.ReferentialIntegrityError{Entity: "user", ID: in.UserID}
	}
	for _, c := range r.collaborators {
		if c.ProjectID == in.ProjectID && c.UserID == in.UserID {
			return nil, &domain.ValidationError{Field: "userId", Reason: "already a collaborator"}
		}
	}

	c := &domain.ProjectCollaborator{
		ID:        r.nextCollaboratorID,
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		Role:      in.Role,
	}
	r.collaborators[c.ID] = c
	r.nextCollaboratorID++

	return copyCollaborator(c), nil
}

// RemoveCollaborator revokes a user's access to a project. Returns false
// when the pair was not present.
func (r *Repository) RemoveCollaborator(ctx context.Context, projectID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.collaborators {
		if c.ProjectID == projectID && c.UserID == userID {
			delete(r.collaborators, id)
			return true, nil
		}
	}
	return false, nil
}

// ListCollaborators returns the collaborator rows for a project.
func (r *Repository) ListCollaborators(ctx context.Context, projectID int64) ([]*domain.ProjectCollaborator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collaborators := []*domain.ProjectCollaborator{}
	for _, c := range r.collaborators {
		if c.ProjectID == projectID {
			collaborators = append(collaborators, copyCollaborator(c))
		}
	}
	sort.Slice(collaborators, func(i, j int) bool { return collaborators[i].ID < collaborators[j].ID })
	return collaborators, nil
}
