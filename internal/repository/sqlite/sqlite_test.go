package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labrecord/internal/domain"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:", Options{})
	require.NoError(t, err, "create test repository")
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "labrecord.db")

	repo, err := New(path, Options{})
	require.NoError(t, err)

	u, err := repo.CreateUser(ctx, domain.UserInsert{Username: "ana", DisplayName: "Ana"})
	require.NoError(t, err)
	p, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "Lab A", OwnerID: u.ID})
	require.NoError(t, err)
	baseline, err := repo.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// Reopen: schema migration is idempotent and data survives.
	reopened, err := New(path, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Lab A", got.Name)
	assert.Equal(t, u.ID, got.OwnerID)
	assert.True(t, got.CreatedAt.Equal(baseline.CreatedAt))
}

func TestWithTxRollsBackEveryStatement(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	boom := errors.New("boom")
	err := repo.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, display_name, role, created_at)
			VALUES ('ghost', 'Ghost', 'Researcher', ?)
		`, now()); err != nil {
			return err
		}
		// A failure after earlier statements must undo all of them; this is
		// the same unit-of-work boundary every cascade delete runs in.
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := repo.GetUserByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pattern string
		ok      bool
	}{
		{"simple", "assay", "%assay%", true},
		{"uppercase folded", "ASSAY", "%assay%", true},
		{"surrounding space trimmed", "  gel  ", "%gel%", true},
		{"percent escaped", "100%", `%100\%%`, true},
		{"underscore escaped", "a_b", `%a\_b%`, true},
		{"backslash escaped", `a\b`, `%a\\b%`, true},
		{"empty", "", "", false},
		{"whitespace only", "   \t", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, ok := likePattern(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pattern, pattern)
		})
	}
}

func TestSearchTreatsWildcardsAsLiterals(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	u, err := repo.CreateUser(ctx, domain.UserInsert{Username: "ana", DisplayName: "Ana"})
	require.NoError(t, err)
	p, err := repo.CreateProject(ctx, domain.ProjectInsert{Name: "Lab A", OwnerID: u.ID})
	require.NoError(t, err)
	e, err := repo.CreateExperiment(ctx, domain.ExperimentInsert{Name: "Trial 1", ProjectID: p.ID})
	require.NoError(t, err)

	exact, err := repo.CreateNote(ctx, domain.NoteInsert{Title: "100% yield", ExperimentID: e.ID, AuthorID: u.ID})
	require.NoError(t, err)
	_, err = repo.CreateNote(ctx, domain.NoteInsert{Title: "100 yield", ExperimentID: e.ID, AuthorID: u.ID})
	require.NoError(t, err)

	notes, err := repo.SearchNotes(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, notes, 1, "%% must match literally, not as a wildcard")
	assert.Equal(t, exact.ID, notes[0].ID)
}

func TestMaxAttachmentBytes(t *testing.T) {
	ctx := context.Background()
	repo, err := New(":memory:", Options{MaxAttachmentBytes: 4})
	require.NoError(t, err)
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
		FileName: "big.bin", FileSize: 5, FileType: "application/octet-stream",
		FileData: []byte{1, 2, 3, 4, 5}, NoteID: n.ID,
	})
	require.ErrorAs(t, err, &valErr)

	_, err = repo.CreateAttachment(ctx, domain.AttachmentInsert{
		FileName: "ok.bin", FileSize: 4, FileType: "application/octet-stream",
		FileData: []byte{1, 2, 3, 4}, NoteID: n.ID,
	})
	require.NoError(t, err)
}
