package service

import (
	"context"
	"sort"
	"testing"
	"time"

	dom "todonotes/internal/domain"
	"todonotes/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// fakeTodoRepo is an in-memory repo.TodoRepo mirroring the Postgres
// semantics the service relies on (ErrNoRows, rows-affected counts).
type fakeTodoRepo struct {
	nextID      int64
	todos       map[int64]dom.Todo
	noteCount   int64
	updateCalls int
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[int64]dom.Todo{}}
}

func (f *fakeTodoRepo) Create(_ context.Context, title string, description *string) (dom.Todo, error) {
	f.nextID++
	now := time.Now().UTC().Add(time.Duration(f.nextID) * time.Millisecond)
	t := dom.Todo{
		ID:          f.nextID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.todos[t.ID] = t
	return t, nil
}

func (f *fakeTodoRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	t, ok := f.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeTodoRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.todos[id]
	return ok, nil
}

func (f *fakeTodoRepo) List(_ context.Context, completed *bool) ([]dom.Todo, error) {
	var list []dom.Todo
	for _, t := range f.todos {
		if completed == nil || t.Completed == *completed {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (f *fakeTodoRepo) Update(_ context.Context, id int64, patch repo.TodoPatch) (dom.Todo, error) {
	f.updateCalls++
	t, ok := f.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = t.UpdatedAt.Add(time.Millisecond)
	f.todos[id] = t
	return t, nil
}

func (f *fakeTodoRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.todos[id]; !ok {
		return 0, nil
	}
	delete(f.todos, id)
	return 1, nil
}

func (f *fakeTodoRepo) Stats(_ context.Context) (dom.Stats, error) {
	var s dom.Stats
	for _, t := range f.todos {
		s.TotalTodos++
		if t.Completed {
			s.CompletedTodos++
		} else {
			s.PendingTodos++
		}
	}
	s.TotalNotes = f.noteCount
	return s, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTodoServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		svc := NewTodoService(newFakeTodoRepo(), nil)
		got, err := svc.Create(ctx, "buy milk", nil)
		require.NoError(t, err)
		require.Equal(t, "buy milk", got.Title)
		require.Nil(t, got.Description)
		require.False(t, got.Completed)
		require.Equal(t, got.CreatedAt, got.UpdatedAt)
	})

	t.Run("trims title and description", func(t *testing.T) {
		svc := NewTodoService(newFakeTodoRepo(), nil)
		got, err := svc.Create(ctx, "  buy milk  ", strPtr("  2 liters  "))
		require.NoError(t, err)
		require.Equal(t, "buy milk", got.Title)
		require.NotNil(t, got.Description)
		require.Equal(t, "2 liters", *got.Description)
	})

	t.Run("rejects empty title before any write", func(t *testing.T) {
		r := newFakeTodoRepo()
		svc := NewTodoService(r, nil)
		_, err := svc.Create(ctx, "   ", nil)
		require.ErrorIs(t, err, ErrEmptyTitle)
		require.Empty(t, r.todos)
	})
}

func TestTodoServiceList(t *testing.T) {
	ctx := context.Background()
	r := newFakeTodoRepo()
	svc := NewTodoService(r, nil)

	_, err := svc.Create(ctx, "first", nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "second", nil)
	require.NoError(t, err)
	_, err = svc.Update(ctx, second.ID, repo.TodoPatch{Completed: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "third", nil)
	require.NoError(t, err)

	t.Run("all, newest first", func(t *testing.T) {
		list, err := svc.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, "third", list[0].Title)
		require.Equal(t, "first", list[2].Title)
	})

	t.Run("completed filter is exact", func(t *testing.T) {
		done, err := svc.List(ctx, boolPtr(true))
		require.NoError(t, err)
		require.Len(t, done, 1)
		require.Equal(t, second.ID, done[0].ID)

		pending, err := svc.List(ctx, boolPtr(false))
		require.NoError(t, err)
		require.Len(t, pending, 2)
		for _, td := range pending {
			require.False(t, td.Completed)
		}
	})
}

func TestTodoServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing id", func(t *testing.T) {
		svc := NewTodoService(newFakeTodoRepo(), nil)
		_, err := svc.Update(ctx, 42, repo.TodoPatch{Title: strPtr("x")})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty patch is a no-op returning current state", func(t *testing.T) {
		r := newFakeTodoRepo()
		svc := NewTodoService(r, nil)
		created, err := svc.Create(ctx, "task", nil)
		require.NoError(t, err)

		got, err := svc.Update(ctx, created.ID, repo.TodoPatch{})
		require.NoError(t, err)
		require.Equal(t, created, got)
		require.Equal(t, created.UpdatedAt, got.UpdatedAt)
		require.Zero(t, r.updateCalls)
	})

	t.Run("completed-only touches nothing else but updated_at", func(t *testing.T) {
		r := newFakeTodoRepo()
		svc := NewTodoService(r, nil)
		created, err := svc.Create(ctx, "task", strPtr("desc"))
		require.NoError(t, err)

		got, err := svc.Update(ctx, created.ID, repo.TodoPatch{Completed: boolPtr(true)})
		require.NoError(t, err)
		require.True(t, got.Completed)
		require.Equal(t, created.Title, got.Title)
		require.Equal(t, created.Description, got.Description)
		require.Equal(t, created.CreatedAt, got.CreatedAt)
		require.True(t, got.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("title trimmed, empty rejected", func(t *testing.T) {
		r := newFakeTodoRepo()
		svc := NewTodoService(r, nil)
		created, err := svc.Create(ctx, "task", nil)
		require.NoError(t, err)

		got, err := svc.Update(ctx, created.ID, repo.TodoPatch{Title: strPtr("  renamed  ")})
		require.NoError(t, err)
		require.Equal(t, "renamed", got.Title)

		_, err = svc.Update(ctx, created.ID, repo.TodoPatch{Title: strPtr("   ")})
		require.ErrorIs(t, err, ErrEmptyTitle)
	})
}

func TestTodoServiceDelete(t *testing.T) {
	ctx := context.Background()
	r := newFakeTodoRepo()
	svc := NewTodoService(r, nil)

	created, err := svc.Create(ctx, "task", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 999), ErrNotFound)
}

func TestTodoServiceStats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store reports zeros", func(t *testing.T) {
		svc := NewTodoService(newFakeTodoRepo(), nil)
		s, err := svc.Stats(ctx)
		require.NoError(t, err)
		require.Equal(t, dom.Stats{}, s)
	})

	t.Run("counts", func(t *testing.T) {
		r := newFakeTodoRepo()
		svc := NewTodoService(r, nil)
		for _, done := range []bool{true, true, false} {
			created, err := svc.Create(ctx, "task", nil)
			require.NoError(t, err)
			if done {
				_, err = svc.Update(ctx, created.ID, repo.TodoPatch{Completed: boolPtr(true)})
				require.NoError(t, err)
			}
		}
		r.noteCount = 5

		s, err := svc.Stats(ctx)
		require.NoError(t, err)
		require.Equal(t, dom.Stats{
			TotalTodos:     3,
			CompletedTodos: 2,
			PendingTodos:   1,
			TotalNotes:     5,
		}, s)
	})
}
