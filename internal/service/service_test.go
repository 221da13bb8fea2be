package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todo-api/internal/repository/sqlite"
)

type fixture struct {
	users UserService
	todos TodoService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, todoRepo.Init(ctx))

	return fixture{
		users: NewUserService(userRepo, bcrypt.MinCost),
		todos: NewTodoService(todoRepo),
	}
}

func (f fixture) register(t *testing.T, username, password string) int64 {
	t.Helper()
	user, err := f.users.Register(context.Background(), RegisterInput{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  password,
		Role:      "user",
	})
	require.NoError(t, err)
	return user.ID
}

func TestRegisterThenAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.register(t, "alice", "secret123")

	user, err := f.users.Authenticate(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.True(t, user.IsActive)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service")

	_, err = f.users.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Authenticate(ctx, "mallory", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "hash.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(ctx))

	_, err = NewUserService(repo, bcrypt.MinCost).Register(ctx, RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "secret123")

	_, err := f.users.Register(context.Background(), RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestGetUserByID(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "alice", "secret123")

	user, err := f.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = f.users.GetByID(context.Background(), id+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTodoLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "secret123")

	created, err := f.todos.Create(ctx, alice, TodoInput{Title: "buy milk", Description: "2% milk", Priority: 3})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, alice, created.OwnerID)

	updated, err := f.todos.Update(ctx, alice, created.ID, TodoInput{Title: "buy bread", Description: "sourdough", Priority: 5, Complete: true})
	require.NoError(t, err)
	assert.Equal(t, "buy bread", updated.Title)
	assert.Equal(t, 5, updated.Priority)
	assert.True(t, updated.Complete)

	require.NoError(t, f.todos.Delete(ctx, alice, created.ID))

	_, err = f.todos.Get(ctx, alice, created.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
	assert.ErrorIs(t, f.todos.Delete(ctx, alice, created.ID), ErrTodoNotFound)
}

func TestTodosAreOwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "secret123")
	bob := f.register(t, "bob", "hunter22")

	aliceTodo, err := f.todos.Create(ctx, alice, TodoInput{Title: "alice task", Description: "private", Priority: 2})
	require.NoError(t, err)
	_, err = f.todos.Create(ctx, bob, TodoInput{Title: "bob task", Description: "also private", Priority: 4})
	require.NoError(t, err)

	list, err := f.todos.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, alice, list[0].OwnerID)

	_, err = f.todos.Get(ctx, bob, aliceTodo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	_, err = f.todos.Update(ctx, bob, aliceTodo.ID, TodoInput{Title: "hijack", Description: "hijacked", Priority: 1})
	assert.ErrorIs(t, err, ErrTodoNotFound)

	assert.ErrorIs(t, f.todos.Delete(ctx, bob, aliceTodo.ID), ErrTodoNotFound)

	still, err := f.todos.Get(ctx, alice, aliceTodo.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice task", still.Title)
}

func TestGetMissingTodo(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice", "secret123")

	_, err := f.todos.Get(context.Background(), alice, 999999)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestRegisterRejectsBlankInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, RegisterInput{Username: "   ", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	_, err = f.users.Register(ctx, RegisterInput{Username: "alice", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}
