package service

import (
	"context"
	"errors"
	"strings"

	"todonotes/internal/cache"
	dom "todonotes/internal/domain"
	"todonotes/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title must not be empty")
)

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, title string, description *string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Todo{}, ErrEmptyTitle
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		description = &trimmed
	}

	t, err := s.repo.Create(ctx, title, description)
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) List(ctx context.Context, completed *bool) ([]dom.Todo, error) {
	if s.cache != nil {
		key := cache.ListKey(completed)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, completed); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, completed)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, completed, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx, completed)
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update applies a partial update. An empty patch is a no-op that returns
// current state; updated_at moves only when at least one field changes.
func (s *TodoService) Update(ctx context.Context, id int64, patch repo.TodoPatch) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	if patch.IsZero() {
		return existing, nil
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return dom.Todo{}, ErrEmptyTitle
		}
		patch.Title = &trimmed
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		patch.Description = &trimmed
	}
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TodoService) Stats(ctx context.Context) (dom.Stats, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("stats", func() (interface{}, error) {
			if st, err := s.cache.GetStats(ctx); err == nil && st != nil {
				return *st, nil
			}
			st, err := s.repo.Stats(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetStats(ctx, st)
			return st, nil
		})
		if err != nil {
			return dom.Stats{}, err
		}
		return v.(dom.Stats), nil
	}
	return s.repo.Stats(ctx)
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
