package repo

import (
	"context"

	dom "todonotes/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepo provides note persistence. Update and Delete are scoped to
// (note id AND todo id) so a note id alone never resolves across todos.
type NoteRepo interface {
	ListByTodo(ctx context.Context, todoID int64) ([]dom.Note, error)
	Create(ctx context.Context, todoID int64, content string) (dom.Note, error)
	Update(ctx context.Context, todoID, noteID int64, content string) (dom.Note, error)
	Delete(ctx context.Context, todoID, noteID int64) (int64, error)
}

type PGNoteRepo struct {
	db *pgxpool.Pool
}

func NewPGNoteRepo(db *pgxpool.Pool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

func (r *PGNoteRepo) ListByTodo(ctx context.Context, todoID int64) ([]dom.Note, error) {
	query := `
		SELECT id, todo_id, content, created_at
		FROM notes WHERE todo_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, todoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Note
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.TodoID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *PGNoteRepo) Create(ctx context.Context, todoID int64, content string) (dom.Note, error) {
	query := `
		INSERT INTO notes (todo_id, content)
		VALUES ($1, $2)
		RETURNING id, todo_id, content, created_at`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, todoID, content).Scan(
		&n.ID, &n.TodoID, &n.Content, &n.CreatedAt,
	)
	return n, err
}

func (r *PGNoteRepo) Update(ctx context.Context, todoID, noteID int64, content string) (dom.Note, error) {
	query := `
		UPDATE notes SET content = $1
		WHERE id = $2 AND todo_id = $3
		RETURNING id, todo_id, content, created_at`
	var n dom.Note
	err := r.db.QueryRow(ctx, query, content, noteID, todoID).Scan(
		&n.ID, &n.TodoID, &n.Content, &n.CreatedAt,
	)
	return n, err
}

// Delete removes the note matching both ids and returns the rows deleted.
func (r *PGNoteRepo) Delete(ctx context.Context, todoID, noteID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND todo_id = $2`, noteID, todoID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
