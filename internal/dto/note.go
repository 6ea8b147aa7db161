package dto

import "time"

type CreateNoteRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type UpdateNoteRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type NoteResponse struct {
	ID        int64     `json:"id"`
	TodoID    int64     `json:"todo_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
