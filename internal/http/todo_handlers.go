package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-api/internal/domain"
	"todo-api/internal/service"
)

type todoRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=3,max=100"`
	Priority    int    `json:"priority" binding:"gt=0,lt=6"`
	Complete    *bool  `json:"complete" binding:"required"`
}

func (r todoRequest) toInput() service.TodoInput {
	return service.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Complete:    *r.Complete,
	}
}

type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     int64  `json:"owner_id"`
}

func (h *Handler) listTodos(c *gin.Context) {
	identity, _ := currentUser(c)

	todos, err := h.todos.List(c.Request.Context(), identity.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]TodoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getTodo(c *gin.Context) {
	identity, _ := currentUser(c)
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	todo, err := h.todos.Get(c.Request.Context(), identity.UserID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) createTodo(c *gin.Context) {
	identity, _ := currentUser(c)

	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), identity.UserID, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(*todo))
}

func (h *Handler) updateTodo(c *gin.Context) {
	identity, _ := currentUser(c)
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	if _, err := h.todos.Update(c.Request.Context(), identity.UserID, id, req.toInput()); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteTodo(c *gin.Context) {
	identity, _ := currentUser(c)
	id, ok := parseTodoID(c)
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseTodoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "todo id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func todoToResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Complete:    todo.Complete,
		OwnerID:     todo.OwnerID,
	}
}
