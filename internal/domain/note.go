package domain

import (
	"strings"
	"time"
)

// Note is a single record entry inside an experiment.
type Note struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	ExperimentID int64     `json:"experimentId"`
	AuthorID     int64     `json:"authorId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NoteInsert is the validated input for creating a note. AuthorID is the
// caller's identity, passed explicitly; there is no ambient current user.
type NoteInsert struct {
	Title        string `json:"title"`
	Content      string `json:"content,omitempty"`
	ExperimentID int64  `json:"experimentId"`
	AuthorID     int64  `json:"authorId"`
}

// Validate checks required fields.
func (in *NoteInsert) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.ExperimentID <= 0 {
		return &ValidationError{Field: "experimentId", Reason: "must reference an experiment"}
	}
	if in.AuthorID <= 0 {
		return &ValidationError{Field: "authorId", Reason: "must reference a user"}
	}
	return nil
}

// NotePatch is a partial update; nil fields are left untouched. A non-nil
// ExperimentID moves the note (and its attachments) to another experiment.
type NotePatch struct {
	Title        *string `json:"title,omitempty"`
	Content      *string `json:"content,omitempty"`
	ExperimentID *int64  `json:"experimentId,omitempty"`
}

// Validate rejects supplied-but-invalid fields.
func (p *NotePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if p.ExperimentID != nil && *p.ExperimentID <= 0 {
		return &ValidationError{Field: "experimentId", Reason: "must reference an experiment"}
	}
	return nil
}
