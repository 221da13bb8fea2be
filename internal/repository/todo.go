package repository

import (
	"context"

	"todo-api/internal/domain"
)

// TodoRepository exposes owner-scoped persistence operations for todos.
// Lookups that miss, or that hit a row belonging to another owner, return
// ErrNotFound.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	// Update loads the owner's todo, passes it to mutate and writes the result
	// back in the same transaction.
	Update(ctx context.Context, ownerID, id int64, mutate func(*domain.Todo)) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
