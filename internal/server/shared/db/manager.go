// Package db wires concrete repository implementations together behind a
// single manager so the application layer does not care which backing store
// is in use.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Tasks() tasks.Repository
	Close() error
}
