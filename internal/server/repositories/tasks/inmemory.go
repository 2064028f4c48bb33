package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used by service and HTTP
// handler tests. It applies the same id/owner conjunction as the SQL
// implementation.
type InMemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task // keyed by task id
	seq   int                     // preserves insertion order for List
	order map[string]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tasks: make(map[string]*models.Task),
		order: make(map[string]int),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := *task
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.tasks[stored.ID] = &stored
	r.seq++
	r.order[stored.ID] = r.seq

	result := stored
	return &result, nil
}

// owned returns the stored task only when the conjunction holds.
func (r *InMemoryRepository) owned(ownerID, taskID string) (*models.Task, bool) {
	t, ok := r.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, false
	}
	return t, true
}

func (r *InMemoryRepository) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.owned(ownerID, taskID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	result := *t
	return &result, nil
}

func (r *InMemoryRepository) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == ownerID {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return r.order[result[i].ID] < r.order[result[j].ID]
	})
	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, ownerID, taskID, title, description string, completed bool) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.owned(ownerID, taskID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.Title = title
	t.Description = description
	t.Completed = completed
	t.UpdatedAt = time.Now()

	result := *t
	return &result, nil
}

func (r *InMemoryRepository) Toggle(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.owned(ownerID, taskID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now()

	result := *t
	return &result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned(ownerID, taskID); !ok {
		return common.ErrorNotFound
	}
	delete(r.tasks, taskID)
	delete(r.order, taskID)
	return nil
}
