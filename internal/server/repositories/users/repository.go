// Package users provides principal persistence. The stored password hash
// never leaves this layer except inside models.User for credential checks.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type Repository interface {
	// Create persists a new user. A duplicate email (case-insensitive)
	// yields common.ErrorEmailExists with no partial row created.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by email, case-insensitively.
	// Returns common.ErrorNotFound when no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Delete removes a user; owned tasks are removed with it.
	Delete(ctx context.Context, userID string) error
}
