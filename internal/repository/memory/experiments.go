package memory

import (
	"context"
	"sort"
	"time"

	"labrecord/internal/domain"
)

// GetExperiment retrieves a single experiment by ID.
func (r *Repository) GetExperiment(ctx context.Context, id int64) (*domain.Experiment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.experiments[id]
	if !ok {
		return nil, nil
	}
	return copyExperiment(e), nil
}

func sortExperiments(experiments []*domain.Experiment) []*domain.Experiment {
	sort.Slice(experiments, func(i, j int) bool { return experiments[i].ID < experiments[j].ID })
	return experiments
}

// ListExperiments returns all experiments ordered by ID.
func (r *Repository) ListExperiments(ctx context.Context) ([]*domain.Experiment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	experiments := make([]*domain.Experiment, 0, len(r.experiments))
	for _, e := range r.experiments {
		experiments = append(experiments, copyExperiment(e))
	}
	return sortExperiments(experiments), nil
}

// ListExperimentsByProject returns the experiments belonging to a project.
func (r *Repository) ListExperimentsByProject(ctx context.Context, projectID int64) ([]*domain.Experiment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	experiments := []*domain.Experiment{}
	for _, e := range r.experiments {
		if e.ProjectID == projectID {
			experiments = append(experiments, copyExperiment(e))
		}
	}
	return sortExperiments(experiments), nil
}

// CreateExperiment inserts a new experiment. The parent project must exist.
func (r *Repository) CreateExperiment(ctx context.Context, in domain.ExperimentInsert) (*domain.Experiment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[in.ProjectID]; !ok {
		return nil, &domain.ReferentialIntegrityError{Entity: "project", ID: in.ProjectID}
	}

	ts := time.Now().UTC()
	e := &domain.Experiment{
		ID:          r.nextExperimentID,
		Name:        in.Name,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	r.experiments[e.ID] = e
	r.nextExperimentID++

	return copyExperiment(e), nil
}

// UpdateExperiment merges the supplied fields into an existing experiment
// and refreshes UpdatedAt. Moving to another project verifies the target
// exists.
func (r *Repository) UpdateExperiment(ctx context.Context, id int64, patch domain.ExperimentPatch) (*domain.Experiment, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.experiments[id]
	if !ok {
		return nil, nil
	}
	if patch.ProjectID != nil {
		if _, ok := r.projects[*patch.ProjectID]; !ok {
			return nil, &domain.ReferentialIntegrityError{Entity: "project", ID: *patch.ProjectID}
		}
		e.ProjectID = *patch.ProjectID
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	e.UpdatedAt = time.Now().UTC()

	return copyExperiment(e), nil
}

// DeleteExperiment removes an experiment together with its notes and their
// attachments.
func (r *Repository) DeleteExperiment(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.experiments[id]; !ok {
		return false, nil
	}

	r.deleteNotesOfExperimentLocked(id)
	delete(r.experiments, id)

	r.log.Debug().Int64("experiment_id", id).Msg("experiment cascade deleted")
	return true, nil
}
