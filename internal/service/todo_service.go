package service

import (
	"context"
	"errors"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

// ErrTodoNotFound is returned when a todo is absent or owned by someone else.
var ErrTodoNotFound = errors.New("todo not found")

// TodoInput holds the four caller-controlled todo fields. Field constraints
// are enforced where the request is bound.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// TodoService exposes todo operations scoped to the owning user.
type TodoService interface {
	List(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Todo, error)
	Create(ctx context.Context, ownerID int64, in TodoInput) (*domain.Todo, error)
	Update(ctx context.Context, ownerID, id int64, in TodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) List(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *todoService) Get(ctx context.Context, ownerID, id int64) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, ownerID, id)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return todo, nil
}

func (s *todoService) Create(ctx context.Context, ownerID int64, in TodoInput) (*domain.Todo, error) {
	todo := &domain.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     ownerID,
	}
	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, ownerID, id int64, in TodoInput) (*domain.Todo, error) {
	todo, err := s.todos.Update(ctx, ownerID, id, func(t *domain.Todo) {
		t.Title = in.Title
		t.Description = in.Description
		t.Priority = in.Priority
		t.Complete = in.Complete
	})
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, ownerID, id int64) error {
	return mapTodoErr(s.todos.Delete(ctx, ownerID, id))
}

func mapTodoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTodoNotFound
	}
	return err
}
