package domain

import (
	"strings"
	"time"
)

// Experiment groups notes under a project.
type Experiment struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ProjectID   int64     `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExperimentInsert is the validated input for creating an experiment.
type ExperimentInsert struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   int64  `json:"projectId"`
}

// Validate checks required fields.
func (in *ExperimentInsert) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.ProjectID <= 0 {
		return &ValidationError{Field: "projectId", Reason: "must reference a project"}
	}
	return nil
}

// ExperimentPatch is a partial update; nil fields are left untouched.
// A non-nil ProjectID moves the experiment (and its subtree) to another
// project; the target project must exist.
type ExperimentPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ProjectID   *int64  `json:"projectId,omitempty"`
}

// Validate rejects supplied-but-invalid fields.
func (p *ExperimentPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.ProjectID != nil && *p.ProjectID <= 0 {
		return &ValidationError{Field: "projectId", Reason: "must reference a project"}
	}
	return nil
}
