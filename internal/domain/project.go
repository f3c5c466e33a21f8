package domain

import (
	"strings"
	"time"
)

// Project is the root of the record hierarchy. Every project has exactly
// one owner; additional users gain access through ProjectCollaborator rows.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     int64     `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectInsert is the validated input for creating a project.
type ProjectInsert struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OwnerID     int64  `json:"ownerId"`
}

// Validate checks required fields.
func (in *ProjectInsert) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.OwnerID <= 0 {
		return &ValidationError{Field: "ownerId", Reason: "must reference a user"}
	}
	return nil
}

// ProjectPatch is a partial update; nil fields are left untouched.
// Ownership is not transferable through a patch.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate rejects supplied-but-empty names.
func (p *ProjectPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}
