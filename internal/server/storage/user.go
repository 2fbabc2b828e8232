package storage

import (
	"context"

	"github.com/upanishads/sutra-api/internal/models"
)

// UserStore defines the interface for user persistence
type UserStore interface {
	// CreateUser inserts a new user and returns its id.
	// Returns ErrDuplicate if the email is already taken.
	CreateUser(ctx context.Context, user *models.User) (int64, error)

	// GetUserByID retrieves a user by id
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail retrieves a user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers returns all users
	ListUsers(ctx context.Context) ([]models.User, error)

	// DeleteUser deletes a user by id
	DeleteUser(ctx context.Context, id int64) error
}
