package domain

import "time"

// Note is a text note attached to a todo. A note cannot exist without its
// todo; deleting the todo cascades at the storage layer.
type Note struct {
	ID      int64
	TodoID  int64
	Content string

	CreatedAt time.Time
}
