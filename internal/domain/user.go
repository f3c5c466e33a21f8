package domain

import (
	"strings"
	"time"
)

// DefaultUserRole is assigned when an insert carries no role.
const DefaultUserRole = "Researcher"

// User represents an account that can own projects and author notes.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserInsert is the validated input for creating a user.
type UserInsert struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role,omitempty"`
}

// Validate checks required fields and applies defaults.
func (in *UserInsert) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.DisplayName) == "" {
		return &ValidationError{Field: "displayName", Reason: "must not be empty"}
	}
	if in.Role == "" {
		in.Role = DefaultUserRole
	}
	return nil
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	DisplayName *string `json:"displayName,omitempty"`
	Role        *string `json:"role,omitempty"`
}

// Validate rejects supplied-but-empty fields.
func (p *UserPatch) Validate() error {
	if p.DisplayName != nil && strings.TrimSpace(*p.DisplayName) == "" {
		return &ValidationError{Field: "displayName", Reason: "must not be empty"}
	}
	if p.Role != nil && strings.TrimSpace(*p.Role) == "" {
		return &ValidationError{Field: "role", Reason: "must not be empty"}
	}
	return nil
}
