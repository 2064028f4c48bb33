package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs the repositories with maps. Used in tests
// and for trying the server out without a database.
type InMemoryRepositoryManager struct {
	users users.Repository
	tasks tasks.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		tasks: tasks.NewInMemoryRepository(),
	}
}
