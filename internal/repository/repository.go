package repository

import (
	"context"

	"labrecord/internal/domain"
)

// Repository defines the data access contract for the lab record store.
//
// Absence is a normal outcome, not an error: Get and Update return
// (nil, nil) when the target does not exist, Delete and RemoveCollaborator
// return (false, nil). Creates validate their input and verify that every
// referenced parent exists before mutating anything; a missing parent is
// reported as *domain.ReferentialIntegrityError.
//
// Deletes cascade leaf-first: a project takes its experiments, their notes,
// those notes' attachments and the project's collaborator rows with it.
// Each call is one unit of work; a backend must never expose a partially
// executed cascade.
type Repository interface {
	// Users
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, in domain.UserInsert) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)

	// Projects
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	ListProjectsForUser(ctx context.Context, userID int64) ([]*domain.Project, error)
	CreateProject(ctx context.Context, in domain.ProjectInsert) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) (bool, error)

	// Experiments
	GetExperiment(ctx context.Context, id int64) (*domain.Experiment, error)
	ListExperiments(ctx context.Context) ([]*domain.Experiment, error)
	ListExperimentsByProject(ctx context.Context, projectID int64) ([]*domain.Experiment, error)
	CreateExperiment(ctx context.Context, in domain.ExperimentInsert) (*domain.Experiment, error)
	UpdateExperiment(ctx context.Context, id int64, patch domain.ExperimentPatch) (*domain.Experiment, error)
	DeleteExperiment(ctx context.Context, id int64) (bool, error)

	// Notes
	GetNote(ctx context.Context, id int64) (*domain.Note, error)
	ListNotes(ctx context.Context) ([]*domain.Note, error)
	ListNotesByExperiment(ctx context.Context, experimentID int64) ([]*domain.Note, error)
	CreateNote(ctx context.Context, in domain.NoteInsert) (*domain.Note, error)
	UpdateNote(ctx context.Context, id int64, patch domain.NotePatch) (*domain.Note, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)

	// Attachments
	GetAttachment(ctx context.Context, id int64) (*domain.Attachment, error)
	ListAttachmentsByNote(ctx context.Context, noteID int64) ([]*domain.Attachment, error)
	CreateAttachment(ctx context.Context, in domain.AttachmentInsert) (*domain.Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) (bool, error)

	// Collaborators
	AddCollaborator(ctx context.Context, in domain.CollaboratorInsert) (*domain.ProjectCollaborator, error)
	RemoveCollaborator(ctx context.Context, projectID, userID int64) (bool, error)
	ListCollaborators(ctx context.Context, projectID int64) ([]*domain.ProjectCollaborator, error)

	// Search. A blank or whitespace-only query matches nothing.
	SearchNotes(ctx context.Context, query string) ([]*domain.Note, error)
	SearchProjects(ctx context.Context, query string) ([]*domain.Project, error)
	SearchExperiments(ctx context.Context, query string) ([]*domain.Experiment, error)

	// Close releases resources
	Close() error
}
