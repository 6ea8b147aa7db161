package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"todonotes/internal/cache"
	dom "todonotes/internal/domain"
	"todonotes/internal/repo"
	"todonotes/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var ErrEmptyContent = errors.New("content must not be empty")

// NoteService handles notes attached to todos. It checks the owning todo
// exists before listing or inserting; updates and deletes rely on the
// (note id, todo id) scoped queries instead.
type NoteService struct {
	notes repo.NoteRepo
	todos repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewNoteService creates a NoteService. If c is nil, caching is disabled.
func NewNoteService(notes repo.NoteRepo, todos repo.TodoRepo, c *cache.TodoCache) *NoteService {
	return &NoteService{notes: notes, todos: todos, cache: c}
}

func (s *NoteService) ListByTodo(ctx context.Context, todoID int64) ([]dom.Note, error) {
	if err := s.requireTodo(ctx, todoID); err != nil {
		return nil, err
	}
	if s.cache != nil {
		key := "notes:" + strconv.FormatInt(todoID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetNotes(ctx, todoID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.notes.ListByTodo(ctx, todoID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetNotes(ctx, todoID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Note), nil
	}
	return s.notes.ListByTodo(ctx, todoID)
}

func (s *NoteService) Create(ctx context.Context, todoID int64, content string) (dom.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dom.Note{}, ErrEmptyContent
	}
	if err := s.requireTodo(ctx, todoID); err != nil {
		return dom.Note{}, err
	}
	n, err := s.notes.Create(ctx, todoID, content)
	if err != nil {
		// Todo deleted between the existence check and the insert.
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

func (s *NoteService) Update(ctx context.Context, todoID, noteID int64, content string) (dom.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dom.Note{}, ErrEmptyContent
	}
	n, err := s.notes.Update(ctx, todoID, noteID, content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, todoID, noteID int64) error {
	deleted, err := s.notes.Delete(ctx, todoID, noteID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *NoteService) requireTodo(ctx context.Context, todoID int64) error {
	exists, err := s.todos.Exists(ctx, todoID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func (s *NoteService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
