// Package users provides PostgreSQL-backed persistence for user accounts.
package users

import (
	"context"

	"github.com/fablehq/fable-server/internal/server/models"
)

// Repository is the identity store consumed by the auth gate and the user
// service.
type Repository interface {
	// Create inserts a new user. A duplicate email yields common.ErrEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given (lower-cased) email or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given ID or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
