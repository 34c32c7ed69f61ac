package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocketledger/backend/internal/application/adapter"
	"github.com/pocketledger/backend/internal/domain/entity"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// usersPath is the auth collaborator's collection in the document store.
const usersPath = "auth/users"

// userRepository implements adapter.UserRepository on top of the RemoteStore:
// one record per user keyed by the stable user id, with email lookups served
// by the store's equality query.
type userRepository struct {
	store adapter.RemoteStore
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(store adapter.RemoteStore) adapter.UserRepository {
	return &userRepository{store: store}
}

// Create creates a new user record.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.store.Set(ctx, usersPath+"/"+user.ID.String(), user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	raw, err := r.store.GetOnce(ctx, usersPath+"/"+id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	if raw == nil {
		return nil, domainerror.ErrUserNotFound
	}

	var user entity.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	user.ID = id
	return &user, nil
}

// FindByEmail retrieves a user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	matches, err := r.store.QueryEqual(ctx, usersPath, "email", email)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	for id, raw := range matches {
		var user entity.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("malformed user id %q: %w", id, err)
		}
		user.ID = parsed
		return &user, nil
	}
	return nil, domainerror.ErrUserNotFound
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	matches, err := r.store.QueryEqual(ctx, usersPath, "email", email)
	if err != nil {
		return false, fmt.Errorf("failed to query users: %w", err)
	}
	return len(matches) > 0, nil
}
