package repo

import (
	"context"
	"fmt"

	dom "todonotes/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoPatch carries the fields of a partial update. nil = leave untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsZero reports whether no field is supplied.
func (p TodoPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

type TodoRepo interface {
	Create(ctx context.Context, title string, description *string) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, completed *bool) ([]dom.Todo, error)
	Update(ctx context.Context, id int64, patch TodoPatch) (dom.Todo, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Stats(ctx context.Context) (dom.Stats, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, title string, description *string) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description)
		VALUES ($1, $2)
		RETURNING id, title, description, completed, created_at, updated_at`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, title, description).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTodoRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM todos WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGTodoRepo) List(ctx context.Context, completed *bool) ([]dom.Todo, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todos`
	var args []any
	if completed != nil {
		query += ` WHERE completed = $1`
		args = append(args, *completed)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update applies the supplied fields only. updated_at is refreshed whenever
// at least one field changes; callers short-circuit the empty patch.
func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch TodoPatch) (dom.Todo, error) {
	var b updateBuilder
	if patch.Title != nil {
		b.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.Completed != nil {
		b.Set("completed", *patch.Completed)
	}
	if b.Empty() {
		return r.GetByID(ctx, id)
	}
	b.SetRaw("updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE todos SET %s
		WHERE id = $%d
		RETURNING id, title, description, completed, created_at, updated_at`,
		b.SetClause(), b.Next())

	var t dom.Todo
	err := r.db.QueryRow(ctx, query, b.Args(id)...).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Delete removes the todo; notes go with it via ON DELETE CASCADE.
// Returns the number of rows deleted.
func (r *PGTodoRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Stats aggregates in one query. COUNT(*) FILTER keeps the result zero,
// never null, on an empty store.
func (r *PGTodoRepo) Stats(ctx context.Context) (dom.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total_todos,
			COUNT(*) FILTER (WHERE completed) AS completed_todos,
			COUNT(*) FILTER (WHERE NOT completed) AS pending_todos,
			(SELECT COUNT(*) FROM notes) AS total_notes
		FROM todos`
	var s dom.Stats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.TotalTodos, &s.CompletedTodos, &s.PendingTodos, &s.TotalNotes,
	)
	return s, err
}
