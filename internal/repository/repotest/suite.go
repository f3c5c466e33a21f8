// Package repotest holds a backend-agnostic conformance suite for
// repository.Repository implementations. Each backend's test package calls
// Run with a factory for a fresh store, so the durable and in-memory
// variants are held to identical behavior by the same assertions.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labrecord/internal/domain"
	"labrecord/internal/repository"
)

// Factory returns a fresh, isolated repository. Implementations register
// cleanup on t themselves.
type Factory func(t *testing.T) repository.Repository

// Run executes the full conformance suite against the given factory.
func Run(t *testing.T, factory Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, repo repository.Repository)
	}{
		{"CreateAssignsIDs", testCreateAssignsIDs},
		{"GetAbsent", testGetAbsent},
		{"ListByParentScoping", testListByParentScoping},
		{"PartialUpdateMerge", testPartialUpdateMerge},
		{"UpdateDoesNotBubbleUp", testUpdateDoesNotBubbleUp},
		{"CascadeDeleteProject", testCascadeDeleteProject},
		{"CascadeDeleteExperiment", testCascadeDeleteExperiment},
		{"CascadeDeleteNote", testCascadeDeleteNote},
		{"IdempotentAbsence", testIdempotentAbsence},
		{"ReferentialIntegrity", testReferentialIntegrity},
		{"Validation", testValidation},
		{"OwnerCollaboratorUnion", testOwnerCollaboratorUnion},
		{"CollaboratorLifecycle", testCollaboratorLifecycle},
		{"AttachmentRoundTrip", testAttachmentRoundTrip},
		{"SearchBlankQuery", testSearchBlankQuery},
		{"SearchCaseInsensitive", testSearchCaseInsensitive},
		{"SearchAbsentDescription", testSearchAbsentDescription},
		{"UserLookup", testUserLookup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, factory(t))
		})
	}
}

func seedUser(t *testing.T, repo repository.Repository, username string) *domain.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), domain.UserInsert{
		Username:    username,
		DisplayName: username,
	})
	require.NoError(t, err)
	return u
}

func seedProject(t *testing.T, repo repository.Repository, ownerID int64, name string) *domain.Project {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), domain.ProjectInsert{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return p
}

func seedExperiment(t *testing.T, repo repository.Repository, projectID int64, name string) *domain.Experiment {
	t.Helper()
	e, err := repo.CreateExperiment(context.Background(), domain.ExperimentInsert{
		Name:      name,
		ProjectID: projectID,
	})
	require.NoError(t, err)
	return e
}

func seedNote(t *testing.T, repo repository.Repository, experimentID, authorID int64, title string) *domain.Note {
	t.Helper()
	n, err := repo.CreateNote(context.Background(), domain.NoteInsert{
		Title:        title,
		ExperimentID: experimentID,
		AuthorID:     authorID,
	})
	require.NoError(t, err)
	return n
}

func seedAttachment(t *testing.T, repo repository.Repository, noteID int64, fileName string) *domain.Attachment {
	t.Helper()
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	a, err := repo.CreateAttachment(context.Background(), domain.AttachmentInsert{
		FileName: fileName,
		FileSize: int64(len(data)),
		FileType: "image/png",
		FileData: data,
		NoteID:   noteID,
	})
	require.NoError(t, err)
	return a
}

func strPtr(s string) *string { return &s }

func testCreateAssignsIDs(t *testing.T, repo repository.Repository) {
	owner := seedUser(t, repo, "ana")
	p1 := seedProject(t, repo, owner.ID, "Lab A")
	p2 := seedProject(t, repo, owner.ID, "Lab B")

	assert.Greater(t, p1.ID, int64(0))
	assert.Greater(t, p2.ID, p1.ID)
	assert.False(t, p1.CreatedAt.IsZero())
	assert.False(t, p1.UpdatedAt.IsZero())
}

func testGetAbsent(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	p, err := repo.GetProject(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, p)

	e, err := repo.GetExperiment(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, e)

	n, err := repo.GetNote(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, n)

	a, err := repo.GetAttachment(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, a)

	u, err := repo.GetUser(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func testListByParentScoping(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e1 := seedExperiment(t, repo, p.ID, "Trial 1")
	e2 := seedExperiment(t, repo, p.ID, "Trial 2")
	seedNote(t, repo, e1.ID, owner.ID, "Obs 1")
	seedNote(t, repo, e1.ID, owner.ID, "Obs 2")
	seedNote(t, repo, e2.ID, owner.ID, "Obs 3")

	experiments, err := repo.ListExperimentsByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, experiments, 2)

	notes, err := repo.ListNotesByExperiment(ctx, e1.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.Equal(t, e1.ID, n.ExperimentID)
	}

	notes, err = repo.ListNotesByExperiment(ctx, e2.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func testPartialUpdateMerge(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")

	created, err := repo.CreateNote(ctx, domain.NoteInsert{
		Title:        "Obs 1",
		Content:      "baseline reading",
		ExperimentID: e.ID,
		AuthorID:     owner.ID,
	})
	require.NoError(t, err)
	before, err := repo.GetNote(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, before)

	after, err := repo.UpdateNote(ctx, before.ID, domain.NotePatch{Title: strPtr("Obs 1 (revised)")})
	require.NoError(t, err)
	require.NotNil(t, after)

	assert.Equal(t, "Obs 1 (revised)", after.Title)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.ExperimentID, after.ExperimentID)
	assert.Equal(t, before.AuthorID, after.AuthorID)
	assert.True(t, after.CreatedAt.Equal(before.CreatedAt), "createdAt must be immutable")
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt), "updatedAt must be refreshed")

	// Clearing an optional field is an explicit empty value, not an omission.
	cleared, err := repo.UpdateNote(ctx, before.ID, domain.NotePatch{Content: strPtr("")})
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.Equal(t, "", cleared.Content)
	assert.Equal(t, "Obs 1 (revised)", cleared.Title)
}

func testUpdateDoesNotBubbleUp(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")
	n := seedNote(t, repo, e.ID, owner.ID, "Obs 1")

	expBefore, err := repo.GetExperiment(ctx, e.ID)
	require.NoError(t, err)
	projBefore, err := repo.GetProject(ctx, p.ID)
	require.NoError(t, err)

	_, err = repo.UpdateNote(ctx, n.ID, domain.NotePatch{Content: strPtr("updated")})
	require.NoError(t, err)

	expAfter, err := repo.GetExperiment(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, expAfter.UpdatedAt.Equal(expBefore.UpdatedAt), "child change must not touch parent updatedAt")

	projAfter, err := repo.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, projAfter.UpdatedAt.Equal(projBefore.UpdatedAt))
}

func testCascadeDeleteProject(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	peer := seedUser(t, repo, "ben")

	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")
	n := seedNote(t, repo, e.ID, owner.ID, "Obs 1")
	seedAttachment(t, repo, n.ID, "scan.png")
	_, err := repo.AddCollaborator(ctx, domain.CollaboratorInsert{ProjectID: p.ID, UserID: peer.ID})
	require.NoError(t, err)

	// An unrelated subtree must survive.
	other := seedProject(t, repo, owner.ID, "Lab B")
	otherExp := seedExperiment(t, repo, other.ID, "Control")
	otherNote := seedNote(t, repo, otherExp.ID, owner.ID, "Obs X")
	seedAttachment(t, repo, otherNote.ID, "control.png")

	deleted, err := repo.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	experiments, err := repo.ListExperimentsByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, experiments)

	notes, err := repo.ListNotesByExperiment(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	attachments, err := repo.ListAttachmentsByNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, attachments)

	collaborators, err := repo.ListCollaborators(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, collaborators)

	// Unrelated data untouched.
	survivors, err := repo.ListNotesByExperiment(ctx, otherExp.ID)
	require.NoError(t, err)
	assert.Len(t, survivors, 1)
	files, err := repo.ListAttachmentsByNote(ctx, otherNote.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func testCascadeDeleteExperiment(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	peer := seedUser(t, repo, "ben")
	p := seedProject(t, repo, owner.ID, "Lab A")
	_, err := repo.AddCollaborator(ctx, domain.CollaboratorInsert{ProjectID: p.ID, UserID: peer.ID})
	require.NoError(t, err)

	e := seedExperiment(t, repo, p.ID, "Trial 1")
	n := seedNote(t, repo, e.ID, owner.ID, "Obs 1")
	seedAttachment(t, repo, n.ID, "scan.png")
	sibling := seedExperiment(t, repo, p.ID, "Trial 2")

	deleted, err := repo.DeleteExperiment(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetExperiment(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	notes, err := repo.ListNotesByExperiment(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	attachments, err := repo.ListAttachmentsByNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, attachments)

	// Project, sibling experiment and collaborator list untouched.
	proj, err := repo.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, proj)
	sib, err := repo.GetExperiment(ctx, sibling.ID)
	require.NoError(t, err)
	assert.NotNil(t, sib)
	collaborators, err := repo.ListCollaborators(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, collaborators, 1)
}

func testCascadeDeleteNote(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")
	n := seedNote(t, repo, e.ID, owner.ID, "Obs 1")
	a1 := seedAttachment(t, repo, n.ID, "scan.png")
	a2 := seedAttachment(t, repo, n.ID, "plot.png")

	deleted, err := repo.DeleteNote(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	for _, id := range []int64{a1.ID, a2.ID} {
		a, err := repo.GetAttachment(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, a)
	}

	exp, err := repo.GetExperiment(ctx, e.ID)
	require.NoError(t, err)
	assert.NotNil(t, exp)
}

func testIdempotentAbsence(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")

	deleted, err := repo.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Second delete of the same id, and a delete of a never-existing id,
	// are normal outcomes, not errors.
	deleted, err = repo.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteNote(ctx, 4242)
	require.NoError(t, err)
	assert.False(t, deleted)

	updated, err := repo.UpdateProject(ctx, p.ID, domain.ProjectPatch{Name: strPtr("ghost")})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func testReferentialIntegrity(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")
	n := seedNote(t, repo, e.ID, owner.ID, "Obs 1")

	var refErr *domain.ReferentialIntegrityError

	_, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "orphan", OwnerID: 404})
	require.ErrorAs(t, err, &refErr)

	_, err = repo.CreateExperiment(ctx, domain.ExperimentInsert{Name: "orphan", ProjectID: 404})
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "project", refErr.Entity)

	_, err = repo.CreateNote(ctx, domain.NoteInsert{Title: "orphan", ExperimentID: 404, AuthorID: owner.ID})
	require.ErrorAs(t, err, &refErr)

	_, err = repo.CreateNote(ctx, domain.NoteInsert{Title: "orphan", ExperimentID: e.ID, AuthorID: 404})
	require.ErrorAs(t, err, &refErr)

	_, err = repo.CreateAttachment(ctx, domain.AttachmentInsert{
		FileName: "x.bin", FileSize: 1, FileType: "application/octet-stream",
		FileData: []byte{1}, NoteID: 404,
	})
	require.ErrorAs(t, err, &refErr)

	_, err = repo.AddCollaborator(ctx, domain.CollaboratorInsert{ProjectID: 404, UserID: owner.ID})
	require.ErrorAs(t, err, &refErr)

	// Parent moves are integrity-checked like creates, and a failed move
	// leaves the record where it was.
	_, err = repo.UpdateNote(ctx, n.ID, domain.NotePatch{ExperimentID: int64Ptr(404)})
	require.ErrorAs(t, err, &refErr)
	current, err := repo.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, current.ExperimentID)

	_, err = repo.UpdateExperiment(ctx, e.ID, domain.ExperimentPatch{ProjectID: int64Ptr(404)})
	require.ErrorAs(t, err, &refErr)
}

func int64Ptr(v int64) *int64 { return &v }

func testValidation(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")
	seeded := seedNote(t, repo, e.ID, owner.ID, "Obs 1")
	n, err := repo.GetNote(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, n)

	var valErr *domain.ValidationError

	_, err = repo.CreateProject(ctx, domain.ProjectInsert{Name: "  ", OwnerID: owner.ID})
	require.ErrorAs(t, err, &valErr)

	_, err = repo.CreateUser(ctx, domain.UserInsert{Username: "ana", DisplayName: "Ana Again"})
	require.ErrorAs(t, err, &valErr)

	_, err = repo.CreateAttachment(ctx, domain.AttachmentInsert{
		FileName: "x.bin", FileSize: 0, FileType: "application/octet-stream",
		FileData: []byte{1}, NoteID: n.ID,
	})
	require.ErrorAs(t, err, &valErr)

	_, err = repo.UpdateNote(ctx, n.ID, domain.NotePatch{Title: strPtr("")})
	require.ErrorAs(t, err, &valErr)

	// A rejected shape mutates nothing.
	unchanged, err := repo.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Obs 1", unchanged.Title)
	assert.True(t, unchanged.UpdatedAt.Equal(n.UpdatedAt))
}

func testOwnerCollaboratorUnion(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	ana := seedUser(t, repo, "ana")
	ben := seedUser(t, repo, "ben")

	owned := seedProject(t, repo, ana.ID, "Ana's Lab")
	shared := seedProject(t, repo, ben.ID, "Ben's Lab")
	unrelated := seedProject(t, repo, ben.ID, "Private")

	_, err := repo.AddCollaborator(ctx, domain.CollaboratorInsert{ProjectID: shared.ID, UserID: ana.ID})
	require.NoError(t, err)
	// Owner listed as collaborator on their own project must not duplicate.
	_, err = repo.AddCollaborator(ctx, domain.CollaboratorInsert{ProjectID: owned.ID, UserID: ana.ID})
	require.NoError(t, err)

	projects, err := repo.ListProjectsForUser(ctx, ana.ID)
	require.NoError(t, err)

	ids := map[int64]int{}
	for _, p := range projects {
		ids[p.ID]++
	}
	assert.Equal(t, 1, ids[owned.ID], "owned project exactly once")
	assert.Equal(t, 1, ids[shared.ID], "collaborated project exactly once")
	assert.NotContains(t, ids, unrelated.ID)
	assert.Len(t, projects, 2)
}

func testCollaboratorLifecycle(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	ben := seedUser(t, repo, "ben")
	cara := seedUser(t, repo, "cara")
	p := seedProject(t, repo, owner.ID, "Lab A")

	_, err := repo.AddCollaborator(ctx, domain.CollaboratorInsert{ProjectID: p.ID, UserID: ben.ID})
	require.NoError(t, err)
	c2, err := repo.AddCollaborator(ctx, domain.CollaboratorInsert{ProjectID: p.ID, UserID: cara.ID, Role: "Editor"})
	require.NoError(t, err)
	assert.Equal(t, "Editor", c2.Role)

	removed, err := repo.RemoveCollaborator(ctx, p.ID, ben.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	collaborators, err := repo.ListCollaborators(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, collaborators, 1)
	assert.Equal(t, cara.ID, collaborators[0].UserID)

	// Removing the same pair again reports absence, not failure.
	removed, err = repo.RemoveCollaborator(ctx, p.ID, ben.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func testAttachmentRoundTrip(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")
	n := seedNote(t, repo, e.ID, owner.ID, "Obs 1")

	payload := []byte("not really a png, but binary enough \x00\x01\x02")
	created, err := repo.CreateAttachment(ctx, domain.AttachmentInsert{
		FileName: "scan.png",
		FileSize: int64(len(payload)),
		FileType: "image/png",
		FileData: payload,
		NoteID:   n.ID,
	})
	require.NoError(t, err)

	got, err := repo.GetAttachment(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "scan.png", got.FileName)
	assert.Equal(t, "image/png", got.FileType)
	assert.Equal(t, int64(len(payload)), got.FileSize)
	assert.Equal(t, payload, got.FileData)
	assert.Equal(t, n.ID, got.NoteID)
}

func testSearchBlankQuery(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Lab A")
	e := seedExperiment(t, repo, p.ID, "Trial 1")
	seedNote(t, repo, e.ID, owner.ID, "Obs 1")

	for _, query := range []string{"", "   ", "\t\n"} {
		notes, err := repo.SearchNotes(ctx, query)
		require.NoError(t, err)
		assert.Empty(t, notes)

		projects, err := repo.SearchProjects(ctx, query)
		require.NoError(t, err)
		assert.Empty(t, projects)

		experiments, err := repo.SearchExperiments(ctx, query)
		require.NoError(t, err)
		assert.Empty(t, experiments)
	}
}

func testSearchCaseInsensitive(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p, err := repo.CreateProject(ctx, domain.ProjectInsert{
		Name:        "Proteomics",
		Description: "Mass spectrometry work",
		OwnerID:     owner.ID,
	})
	require.NoError(t, err)
	e, err := repo.CreateExperiment(ctx, domain.ExperimentInsert{
		Name:        "Western Blot",
		Description: "antibody dilution series",
		ProjectID:   p.ID,
	})
	require.NoError(t, err)
	n, err := repo.CreateNote(ctx, domain.NoteInsert{
		Title:        "Protein Assay",
		Content:      "Bradford standard curve",
		ExperimentID: e.ID,
		AuthorID:     owner.ID,
	})
	require.NoError(t, err)

	for _, query := range []string{"assay", "ASSAY", "Assay"} {
		notes, err := repo.SearchNotes(ctx, query)
		require.NoError(t, err)
		require.Len(t, notes, 1, "query %q", query)
		assert.Equal(t, n.ID, notes[0].ID)
	}

	// Content and description fields participate too.
	notes, err := repo.SearchNotes(ctx, "bradford")
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	projects, err := repo.SearchProjects(ctx, "SPECTROMETRY")
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	experiments, err := repo.SearchExperiments(ctx, "Dilution")
	require.NoError(t, err)
	assert.Len(t, experiments, 1)

	// Non-matching queries return empty, not error.
	none, err := repo.SearchNotes(ctx, "chromatography")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testSearchAbsentDescription(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	owner := seedUser(t, repo, "ana")
	p := seedProject(t, repo, owner.ID, "Plain")
	seedExperiment(t, repo, p.ID, "Bare")

	// Entities without optional text fields must match on the required
	// field and never fault on the missing one.
	projects, err := repo.SearchProjects(ctx, "plain")
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	experiments, err := repo.SearchExperiments(ctx, "bare")
	require.NoError(t, err)
	assert.Len(t, experiments, 1)
}

func testUserLookup(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	u := seedUser(t, repo, "ana")

	got, err := repo.GetUserByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, domain.DefaultUserRole, got.Role)

	missing, err := repo.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	updated, err := repo.UpdateUser(ctx, u.ID, domain.UserPatch{DisplayName: strPtr("Ana B.")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Ana B.", updated.DisplayName)
	assert.Equal(t, u.Username, updated.Username)

	ghost, err := repo.UpdateUser(ctx, 9999, domain.UserPatch{DisplayName: strPtr("ghost")})
	require.NoError(t, err)
	assert.Nil(t, ghost)
}
