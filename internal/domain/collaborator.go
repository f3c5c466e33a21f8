package domain

// DefaultCollaboratorRole is assigned when an insert carries no role.
const DefaultCollaboratorRole = "Viewer"

// ProjectCollaborator grants a non-owner user access to a project. The row
// carries its own role, independent of the user's account role.
type ProjectCollaborator struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	UserID    int64  `json:"userId"`
	Role      string `json:"role"`
}

// CollaboratorInsert is the validated input for adding a collaborator.
type CollaboratorInsert struct {
	ProjectID int64  `json:"projectId"`
	UserID    int64  `json:"userId"`
	Role      string `json:"role,omitempty"`
}

// Validate checks required fields and applies the role default.
func (in *CollaboratorInsert) Validate() error {
	if in.ProjectID <= 0 {
		return &ValidationError{Field: "projectId", Reason: "must reference a project"}
	}
	if in.UserID <= 0 {
		return &ValidationError{Field: "userId", Reason: "must reference a user"}
	}
	if in.Role == "" {
		in.Role = DefaultCollaboratorRole
	}
	return nil
}
