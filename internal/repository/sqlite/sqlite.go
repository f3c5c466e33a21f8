// Package sqlite implements repository.Repository against a SQLite
// database. The schema declares no cascading foreign keys; all hierarchy
// cleanup runs as explicit leaf-first deletion plans inside a single
// transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"labrecord/internal/repository"

	_ "modernc.org/sqlite"
)

var _ repository.Repository = (*Repository)(nil)

// Options tunes a Repository. The zero value is usable.
type Options struct {
	// Logger receives cascade debug events. Defaults to a no-op logger.
	Logger *zerolog.Logger

	// MaxAttachmentBytes bounds attachment payloads; zero means unbounded.
	MaxAttachmentBytes int64
}

// Repository implements repository.Repository using SQLite.
type Repository struct {
	db       *sql.DB
	log      zerolog.Logger
	maxBytes int64
}

// New opens (creating if needed) the database at dbPath and migrates the
// schema. Use ":memory:" for a transient database.
func New(dbPath string, opts Options) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: repository calls are single-writer units of work,
	// and :memory: databases exist per connection.
	db.SetMaxOpenConns(1)

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	repo := &Repository{db: db, log: log, maxBytes: opts.MaxAttachmentBytes}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		owner_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS experiments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		project_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT,
		experiment_id INTEGER NOT NULL,
		author_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attachments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_name TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		file_type TEXT NOT NULL,
		file_data BLOB NOT NULL,
		note_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS project_collaborators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		role TEXT NOT NULL,
		UNIQUE (project_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id);
	CREATE INDEX IF NOT EXISTS idx_experiments_project ON experiments(project_id);
	CREATE INDEX IF NOT EXISTS idx_notes_experiment ON notes(experiment_id);
	CREATE INDEX IF NOT EXISTS idx_attachments_note ON attachments(note_id);
	CREATE INDEX IF NOT EXISTS idx_collaborators_project ON project_collaborators(project_id);
	CREATE INDEX IF NOT EXISTS idx_collaborators_user ON project_collaborators(user_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// withTx runs fn inside a transaction, rolling back on error.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}
