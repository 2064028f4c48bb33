// Package tasks provides owner-scoped task persistence. Every method takes
// the owner ID as a non-optional leading parameter and every query carries
// the id/owner conjunction, so there is no code path that touches a task by
// its ID alone. A task owned by someone else is indistinguishable from a
// missing one: both are common.ErrorNotFound.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type Repository interface {
	// Create persists task; task.UserID must already be set by the caller
	// from the authenticated subject.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	Get(ctx context.Context, ownerID, taskID string) (*models.Task, error)

	// List returns the owner's tasks, oldest first. No tasks is an empty
	// slice, not an error.
	List(ctx context.Context, ownerID string) ([]*models.Task, error)

	// Update replaces the mutable fields in one statement guarded by the
	// ownership conjunction, so a racing delete resolves to ErrorNotFound.
	Update(ctx context.Context, ownerID, taskID, title, description string, completed bool) (*models.Task, error)

	// Toggle flips completion atomically under the same guard.
	Toggle(ctx context.Context, ownerID, taskID string) (*models.Task, error)

	Delete(ctx context.Context, ownerID, taskID string) error
}
