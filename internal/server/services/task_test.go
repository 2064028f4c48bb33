package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/stretchr/testify/require"
)

func newTaskService() *TaskService {
	return NewTaskService(tasks.NewInMemoryRepository())
}

func TestTaskCreate_OwnerFromSubject(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	task, err := s.Create(ctx, "alice", TaskFields{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)
	require.Equal(t, "alice", task.UserID)
	require.Equal(t, "Buy milk", task.Title)
	require.False(t, task.Completed)
	require.NotEmpty(t, task.ID)
}

func TestTaskCreate_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	_, err := s.Create(ctx, "alice", TaskFields{Title: "   "})
	require.ErrorIs(t, err, common.ErrorValidation)
}

// The central invariant: another principal can never read, update, toggle or
// delete a task, and the failure is indistinguishable from a missing task.
func TestOwnershipInvariant(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	task, err := s.Create(ctx, "alice", TaskFields{Title: "Buy milk"})
	require.NoError(t, err)

	_, err = s.GetOwned(ctx, "bob", task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.UpdateOwned(ctx, "bob", task.ID, TaskUpdate{Title: "Stolen"})
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.ToggleOwned(ctx, "bob", task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	err = s.DeleteOwned(ctx, "bob", task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	// Same collapse for a task that does not exist at all.
	_, err = s.GetOwned(ctx, "alice", "no-such-task")
	require.ErrorIs(t, err, common.ErrorNotFound)

	// And the owner still sees an untouched task.
	got, err := s.GetOwned(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Title)
	require.False(t, got.Completed)
}

func TestListOwned_OnlyOwnTasks(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	_, err := s.Create(ctx, "alice", TaskFields{Title: "Alice task 1"})
	require.NoError(t, err)
	_, err = s.Create(ctx, "bob", TaskFields{Title: "Bob task"})
	require.NoError(t, err)
	_, err = s.Create(ctx, "alice", TaskFields{Title: "Alice task 2"})
	require.NoError(t, err)

	list, err := s.ListOwned(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, task := range list {
		require.Equal(t, "alice", task.UserID)
	}
}

func TestListOwned_EmptyIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	list, err := s.ListOwned(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Len(t, list, 0)
}

func TestToggleOwned_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	task, err := s.Create(ctx, "alice", TaskFields{Title: "Buy milk"})
	require.NoError(t, err)

	toggled, err := s.ToggleOwned(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.True(t, toggled.Completed)

	toggled, err = s.ToggleOwned(ctx, "alice", task.ID)
	require.NoError(t, err)
	require.False(t, toggled.Completed, "double toggle must restore the original state")
}

func TestUpdateOwned(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	task, err := s.Create(ctx, "alice", TaskFields{Title: "Buy milk"})
	require.NoError(t, err)

	completed := true
	updated, err := s.UpdateOwned(ctx, "alice", task.ID, TaskUpdate{
		Title:       "Buy oat milk",
		Description: "the barista one",
		Completed:   &completed,
	})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)
	require.Equal(t, "the barista one", updated.Description)
	require.True(t, updated.Completed)

	// Nil Completed keeps the stored value.
	updated, err = s.UpdateOwned(ctx, "alice", task.ID, TaskUpdate{Title: "Buy oat milk"})
	require.NoError(t, err)
	require.True(t, updated.Completed)
}

func TestUpdateOwned_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	task, err := s.Create(ctx, "alice", TaskFields{Title: "Buy milk"})
	require.NoError(t, err)

	_, err = s.UpdateOwned(ctx, "alice", task.ID, TaskUpdate{Title: ""})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestDeleteOwned(t *testing.T) {
	ctx := context.Background()
	s := newTaskService()

	task, err := s.Create(ctx, "alice", TaskFields{Title: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteOwned(ctx, "alice", task.ID))

	_, err = s.GetOwned(ctx, "alice", task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	err = s.DeleteOwned(ctx, "alice", task.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
