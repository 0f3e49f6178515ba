package handlers_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	dom "github.com/hejeong/todolist-api/internal/domain"
)

// In-memory repos with the Postgres repos' contract: pgx.ErrNoRows for
// absent-or-foreign rows, 23505 on duplicate usernames.

type memTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]dom.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: make(map[int64]dom.Todo)}
}

func (r *memTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	t.Created = time.Now().UTC()
	t.DateCompleted = nil
	r.todos[t.ID] = t
	return t, nil
}

func (r *memTodoRepo) GetByID(_ context.Context, ownerID, id int64) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *memTodoRepo) List(_ context.Context, ownerID int64) ([]dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []dom.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *memTodoRepo) Update(_ context.Context, ownerID, id int64, patch dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return dom.Todo{}, pgx.ErrNoRows
	}
	t.Title = patch.Title
	t.Memo = patch.Memo
	t.DateCompleted = patch.DateCompleted
	r.todos[id] = t
	return t, nil
}

func (r *memTodoRepo) Delete(_ context.Context, ownerID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(r.todos, id)
	return nil
}

func (r *memTodoRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.todos)
}

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]dom.User
	byID   map[int64]dom.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byName: make(map[string]dom.User), byID: make(map[int64]dom.User)}
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byName[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *memUserRepo) Create(_ context.Context, username, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	}
	r.nextID++
	u := dom.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byName[username] = u
	r.byID[u.ID] = u
	return u, nil
}
