// Package memory implements repository.Repository with keyed in-memory
// collections. It is the conformance reference for the sqlite backend:
// every contract holds here without any external dependency.
//
// A single RWMutex makes each mutating call one unit of work; the lock is
// held for the call's whole duration, so no caller can observe a cascade
// midway through.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"labrecord/internal/domain"
	"labrecord/internal/repository"
)

var _ repository.Repository = (*Repository)(nil)

// Options tunes a Repository. The zero value is usable.
type Options struct {
	// Logger receives cascade debug events. Defaults to a no-op logger.
	Logger *zerolog.Logger

	// MaxAttachmentBytes bounds attachment payloads; zero means unbounded.
	MaxAttachmentBytes int64
}

// Repository implements repository.Repository in memory.
type Repository struct {
	mu sync.RWMutex

	users         map[int64]*domain.User
	projects      map[int64]*domain.Project
	experiments   map[int64]*domain.Experiment
	notes         map[int64]*domain.Note
	attachments   map[int64]*domain.Attachment
	collaborators map[int64]*domain.ProjectCollaborator

	nextUserID         int64
	nextProjectID      int64
	nextExperimentID   int64
	nextNoteID         int64
	nextAttachmentID   int64
	nextCollaboratorID int64

	log      zerolog.Logger
	maxBytes int64
}

// New constructs an empty repository and seeds one default admin user.
// The seeding is bootstrap behavior of this backend, not part of the
// repository contract.
func New(opts Options) *Repository {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	r := &Repository{
		users:         make(map[int64]*domain.User),
		projects:      make(map[int64]*domain.Project),
		experiments:   make(map[int64]*domain.Experiment),
		notes:         make(map[int64]*domain.Note),
		attachments:   make(map[int64]*domain.Attachment),
		collaborators: make(map[int64]*domain.ProjectCollaborator),

		nextUserID:         1,
		nextProjectID:      1,
		nextExperimentID:   1,
		nextNoteID:         1,
		nextAttachmentID:   1,
		nextCollaboratorID: 1,

		log:      log,
		maxBytes: opts.MaxAttachmentBytes,
	}

	r.users[r.nextUserID] = &domain.User{
		ID:          r.nextUserID,
		Username:    "admin",
		DisplayName: "Administrator",
		Role:        "Admin",
		CreatedAt:   time.Now().UTC(),
	}
	r.nextUserID++

	return r
}

// Close releases nothing; it exists to satisfy the interface.
func (r *Repository) Close() error {
	return nil
}

// foldQuery trims and lowercases a search query. The second return is
// false for queries that must match nothing (blank or whitespace-only).
func foldQuery(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	return strings.ToLower(query), true
}

// containsFold reports whether any of the fields contains the folded query
// as a substring.
func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func copyProject(p *domain.Project) *domain.Project {
	c := *p
	return &c
}

func copyExperiment(e *domain.Experiment) *domain.Experiment {
	c := *e
	return &c
}

func copyNote(n *domain.Note) *domain.Note {
	c := *n
	return &c
}

func copyAttachment(a *domain.Attachment) *domain.Attachment {
	c := *a
	c.FileData = append([]byte(nil), a.FileData...)
	return &c
}

func copyCollaborator(pc *domain.ProjectCollaborator) *domain.ProjectCollaborator {
	c := *pc
	return &c
}
