package repository

import (
	"context"

	sqlcgen "github.com/escaperoom/escaperoom-backend/internal/db/sqlc"
)

type userStore interface {
	CreateUser(ctx context.Context, arg sqlcgen.CreateUserParams) (sqlcgen.User, error)
	GetUserByEmail(ctx context.Context, email string) (sqlcgen.User, error)
	UserExists(ctx context.Context, arg sqlcgen.UserExistsParams) (bool, error)
}

// UserRepository exposes typed DB operations required by auth flows.
type UserRepository struct {
	store userStore
}

// NewUserRepository wraps sqlc Queries for user-specific operations.
func NewUserRepository(store userStore) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a user. A username or email collision yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, params sqlcgen.CreateUserParams) (sqlcgen.User, error) {
	user, err := r.store.CreateUser(ctx, params)
	return user, translate(err)
}

// GetByEmail fetches a user by exact email match.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (sqlcgen.User, error) {
	user, err := r.store.GetUserByEmail(ctx, email)
	return user, translate(err)
}

// Exists reports whether any user already has the username or the email.
func (r *UserRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	return r.store.UserExists(ctx, sqlcgen.UserExistsParams{Username: username, Email: email})
}
