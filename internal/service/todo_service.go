package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/hejeong/todolist-api/internal/cache"
	dom "github.com/hejeong/todolist-api/internal/domain"
	"github.com/hejeong/todolist-api/internal/repo"
)

var (
	// ErrNotFound covers both an absent todo and one owned by someone else;
	// a non-owner must not learn whether a given id exists.
	ErrNotFound               = errors.New("not found")
	ErrEmptyTitle             = errors.New("title must not be empty")
	ErrCompletedBeforeCreated = errors.New("date_completed is before creation time")
)

// TodoPatch carries the mutable todo fields for an update. Nil pointer means
// keep the current value; SetDateCompleted distinguishes "clear the marker"
// from "leave it alone".
type TodoPatch struct {
	Title            *string
	Memo             *string
	DateCompleted    *time.Time
	SetDateCompleted bool
}

// TodoService performs owner-scoped todo CRUD. Every operation takes the
// calling principal's ID; there is no path that reads or writes another
// owner's items.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, ownerID int64, title, memo string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	memo = strings.TrimSpace(memo)
	if title == "" {
		return dom.Todo{}, ErrEmptyTitle
	}

	t, err := s.repo.Create(ctx, dom.Todo{
		Title:   title,
		Memo:    memo,
		OwnerID: ownerID,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]dom.Todo, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(ownerID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, ownerID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, ownerID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx, ownerID)
}

func (s *TodoService) GetByID(ctx context.Context, ownerID, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

func (s *TodoService) Update(ctx context.Context, ownerID, id int64, p TodoPatch) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	patch := existing
	if p.Title != nil {
		patch.Title = strings.TrimSpace(*p.Title)
		if patch.Title == "" {
			return dom.Todo{}, ErrEmptyTitle
		}
	}
	if p.Memo != nil {
		patch.Memo = strings.TrimSpace(*p.Memo)
	}
	if p.SetDateCompleted {
		if p.DateCompleted != nil && p.DateCompleted.Before(existing.Created) {
			return dom.Todo{}, ErrCompletedBeforeCreated
		}
		patch.DateCompleted = p.DateCompleted
	}
	t, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id int64) error {
	err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}
