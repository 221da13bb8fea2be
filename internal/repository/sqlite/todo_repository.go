package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	priority INTEGER NOT NULL CHECK (priority BETWEEN 1 AND 5),
	complete BOOLEAN NOT NULL DEFAULT 0,
	owner_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(owner_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_todos_owner_id ON todos(owner_id);
`

const selectTodoColumns = `
SELECT id, title, description, priority, complete, owner_id, created_at, updated_at
FROM todos`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO todos (title, description, priority, complete, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			todo.Title,
			todo.Description,
			todo.Priority,
			todo.Complete,
			todo.OwnerID,
			todo.CreatedAt,
			todo.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert todo: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("todo last insert id: %w", err)
		}
		todo.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return todo.ID, nil
}

func (r *TodoRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, selectTodoColumns+`
WHERE id=? AND owner_id=?`,
		id,
		ownerID,
	)
	return scanTodo(row)
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodoColumns+`
WHERE owner_id=?
ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}

	return todos, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id int64, mutate func(*domain.Todo)) (*domain.Todo, error) {
	var updated *domain.Todo
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, selectTodoColumns+`
WHERE id=? AND owner_id=?`,
			id,
			ownerID,
		)
		todo, err := scanTodo(row)
		if err != nil {
			return err
		}

		mutate(todo)
		// identity and ownership are not mutable through an update
		todo.ID = id
		todo.OwnerID = ownerID
		todo.UpdatedAt = time.Now().UTC()

		if _, err := tx.ExecContext(ctx, `
UPDATE todos
SET title=?, description=?, priority=?, complete=?, updated_at=?
WHERE id=? AND owner_id=?`,
			todo.Title,
			todo.Description,
			todo.Priority,
			todo.Complete,
			todo.UpdatedAt,
			todo.ID,
			todo.OwnerID,
		); err != nil {
			return fmt.Errorf("update todo: %w", err)
		}
		updated = todo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *TodoRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id=? AND owner_id=?`, id, ownerID)
		if err != nil {
			return fmt.Errorf("delete todo: %w", err)
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("todo delete rows affected: %w", err)
		}
		if aff == 0 {
			return fmt.Errorf("todo %d: %w", id, repository.ErrNotFound)
		}
		return nil
	})
}

func scanTodo(scanner interface {
	Scan(dest ...any) error
}) (*domain.Todo, error) {
	var (
		todo      domain.Todo
		createdAt time.Time
		updatedAt time.Time
	)

	if err := scanner.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Priority,
		&todo.Complete,
		&todo.OwnerID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}

	todo.CreatedAt = createdAt.UTC()
	todo.UpdatedAt = updatedAt.UTC()
	return &todo, nil
}
