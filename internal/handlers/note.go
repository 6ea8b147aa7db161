package handlers

import (
	"errors"
	"net/http"

	dom "todonotes/internal/domain"
	"todonotes/internal/dto"
	"todonotes/internal/service"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	svc *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// List godoc
// @Summary      List notes of a todo, newest first
// @Tags         notes
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {array}   dto.NoteResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id}/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	todoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.ListByTodo(c.Request.Context(), todoID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notesToResponses(list))
}

// Create godoc
// @Summary      Attach a note to a todo
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Todo ID"
// @Param        body  body      dto.CreateNoteRequest  true  "Note body"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos/{id}/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	todoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.Create(c.Request.Context(), todoID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
			return
		}
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, noteToResponse(n))
}

// Update godoc
// @Summary      Update a note's content
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Todo ID"
// @Param        note_id  path      int  true  "Note ID"
// @Param        body     body      dto.UpdateNoteRequest  true  "New content"
// @Success      200      {object}  dto.NoteResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /todos/{id}/notes/{note_id} [patch]
func (h *NoteHandler) Update(c *gin.Context) {
	todoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	noteID, ok := parseID(c, "note_id")
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.Update(c.Request.Context(), todoID, noteID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, noteToResponse(n))
}

// Delete godoc
// @Summary      Delete a note
// @Tags         notes
// @Param        id       path  int  true  "Todo ID"
// @Param        note_id  path  int  true  "Note ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/{id}/notes/{note_id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	todoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	noteID, ok := parseID(c, "note_id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), todoID, noteID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func noteToResponse(n dom.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        n.ID,
		TodoID:    n.TodoID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

func notesToResponses(list []dom.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, len(list))
	for i := range list {
		out[i] = noteToResponse(list[i])
	}
	return out
}
