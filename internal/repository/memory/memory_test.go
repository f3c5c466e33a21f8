package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labrecord/internal/domain"
)

func TestSeedsDefaultUser(t *testing.T) {
	repo := New(Options{})
	defer repo.Close()

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "Admin", users[0].Role)
}

func TestCountersSeededAtOne(t *testing.T) {
	ctx := context.Background()
	repo := New(Options{})
	defer repo.Close()

	// The seeded user consumed user ID 1; every other counter is untouched.
	u, err := repo.CreateUser(ctx, domain.UserInsert{Username: "ana", DisplayName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)

	p, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "Lab A", OwnerID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	e, err := repo.CreateExperiment(ctx, domain.ExperimentInsert{Name: "Trial 1", ProjectID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)

	n, err := repo.CreateNote(ctx, domain.NoteInsert{Title: "Obs 1", ExperimentID: e.ID, AuthorID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.ID)
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := New(Options{})
	defer repo.Close()

	u, err := repo.CreateUser(ctx, domain.UserInsert{Username: "ana", DisplayName: "Ana"})
	require.NoError(t, err)

	p1, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "Lab A", OwnerID: u.ID})
	require.NoError(t, err)
	_, err = repo.DeleteProject(ctx, p1.ID)
	require.NoError(t, err)

	p2, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "Lab B", OwnerID: u.ID})
	require.NoError(t, err)
	assert.Greater(t, p2.ID, p1.ID)
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := New(Options{})
	defer repo.Close()

	u, err := repo.CreateUser(ctx, domain.UserInsert{Username: "ana", DisplayName: "Ana"})
	require.NoError(t, err)
	p, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "Lab A", OwnerID: u.ID})
	require.NoError(t, err)

	// Mutating a returned struct must not reach the store.
	p.Name = "hijacked"
	got, err := repo.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lab A", got.Name)

	e, err := repo.CreateExperiment(ctx, domain.ExperimentInsert{Name: "Trial 1", ProjectID: got.ID})
	require.NoError(t, err)
	n, err := repo.CreateNote(ctx, domain.NoteInsert{Title: "Obs 1", ExperimentID: e.ID, AuthorID: u.ID})
	require.NoError(t, err)

	payload := []byte{1, 2, 3}
	a, err := repo.CreateAttachment(ctx, domain.AttachmentInsert{
		FileName: "scan.png", FileSize: 3, FileType: "image/png",
		FileData: payload, NoteID: n.ID,
	})
	require.NoError(t, err)

	// Neither the caller's input slice nor a returned payload aliases the
	// stored bytes.
	payload[0] = 99
	a.FileData[1] = 99
	stored, err := repo.GetAttachment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, stored.FileData)
}

func TestMaxAttachmentBytes(t *testing.T) {
	ctx := context.Background()
	repo := New(Options{MaxAttachmentBytes: 2})
	defer repo.Close()

	u, err := repo.CreateUser(ctx, domain.UserInsert{Username: "ana", DisplayName: "Ana"})
	require.NoError(t, err)
	p, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "Lab A", OwnerID: u.ID})
	require.NoError(t, err)
	e, err := repo.CreateExperiment(ctx, domain.ExperimentInsert{Name: "Trial 1", ProjectID: p.ID})
	require.NoError(t, err)
	n, err := repo.CreateNote(ctx, domain.NoteInsert{Title: "Obs 1", ExperimentID: e.ID, AuthorID: u.ID})
	require.NoError(t, err)

	var valErr *domain.ValidationError
	_, err = repo.CreateAttachment(ctx, domain.AttachmentInsert{
		FileName: "big.bin", FileSize: 3, FileType: "application/octet-stream",
		FileData: []byte{1, 2, 3}, NoteID: n.ID,
	})
	require.ErrorAs(t, err, &valErr)
}
