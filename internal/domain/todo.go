package domain

import "time"

// Todo is the domain entity for a task. Description is a pointer because
// the column is nullable and the API renders null, not "".
type Todo struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stats aggregates counts across the whole store.
type Stats struct {
	TotalTodos     int64
	CompletedTodos int64
	PendingTodos   int64
	TotalNotes     int64
}
