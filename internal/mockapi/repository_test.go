package mockapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/todoterm/internal/todos"
)

func TestNewRepository_AssignsIDsAfterSeed(t *testing.T) {
	repo := NewRepository(
		todos.Item{ID: 3, UserID: 1, Title: "A"},
		todos.Item{ID: 3, UserID: 1, Title: "dup"},
		todos.Item{UserID: 1, Title: "no id"},
	)
	assert.Equal(t, 2, repo.Len())

	item, err := repo.Create(todos.CreateRequest{UserID: 1, Title: "next"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.ID)
}

func TestRepository_EmptyStartsAtOne(t *testing.T) {
	repo := NewRepository()
	item, err := repo.Create(todos.CreateRequest{UserID: 1, Title: " first "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "first", item.Title)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	repo := NewRepository(todos.Item{ID: 1, UserID: 1, Title: "A"})

	done := true
	item, err := repo.Update(1, todos.UpdateRequest{Completed: &done})
	require.NoError(t, err)
	assert.True(t, item.Completed)

	blank := " "
	_, err = repo.Update(1, todos.UpdateRequest{Title: &blank})
	require.ErrorIs(t, err, ErrInvalidTitle)

	_, err = repo.Update(9, todos.UpdateRequest{Completed: &done})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(1))
	require.ErrorIs(t, repo.Delete(1), ErrNotFound)
	assert.Empty(t, repo.List(1))
}
