package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"labrecord/internal/domain"
)

func scanUser(s scanner) (*domain.User, error) {
	u := &domain.User{}
	if err := s.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser retrieves a single user by ID.
func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, role, created_at
		FROM users WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// GetUserByUsername retrieves a single user by its unique username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, role, created_at
		FROM users WHERE username = ?
	`, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	return u, nil
}

// ListUsers returns all users.
func (r *Repository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, display_name, role, created_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a new user. The username must be unique.
func (r *Repository) CreateUser(ctx context.Context, in domain.UserInsert) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:    in.Username,
		DisplayName: in.DisplayName,
		Role:        in.Role,
		CreatedAt:   now(),
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ?`, in.Username).Scan(&one)
		if err == nil {
			return &domain.ValidationError{Field: "username", Reason: "already taken"}
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check username: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, display_name, role, created_at)
			VALUES (?, ?, ?, ?)
		`, u.Username, u.DisplayName, u.Role, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		u.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser merges the supplied fields into an existing user.
func (r *Repository) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	sets := []string{}
	args := []any{}
	if patch.DisplayName != nil {
		sets = append(sets, "display_name = ?")
		args = append(args, *patch.DisplayName)
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *patch.Role)
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.db.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return nil, err
		} else if n == 0 {
			return nil, nil
		}
	}

	return r.GetUser(ctx, id)
}
