package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by service and HTTP
// handler tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, common.ErrorEmailExists
		}
	}

	now := time.Now()
	stored := *user
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			result := *u
			return &result, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, userID)
	return nil
}
