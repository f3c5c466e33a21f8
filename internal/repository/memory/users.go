package memory

import (
	"context"
	"sort"
	"time"

	"labrecord/internal/domain"
)

// GetUser retrieves a single user by ID.
func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

// GetUserByUsername retrieves a single user by its unique username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// ListUsers returns all users ordered by ID.
func (r *Repository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CreateUser inserts a new user. The username must be unique.
func (r *Repository) CreateUser(ctx context.Context, in domain.UserInsert) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == in.Username {
			return nil, &domain.ValidationError{Field: "username", Reason: "already taken"}
		}
	}

	u := &domain.User{
		ID:          r.nextUserID,
		Username:    in.Username,
		DisplayName: in.DisplayName,
		Role:        in.Role,
		CreatedAt:   time.Now().UTC(),
	}
	r.users[u.ID] = u
	r.nextUserID++

	return copyUser(u), nil
}

// UpdateUser merges the supplied fields into an existing user.
func (r *Repository) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if patch.DisplayName != nil {
		u.DisplayName = *patch.DisplayName
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return copyUser(u), nil
}
