package handler

import (
	"errors"
	"net/http"

	"github.com/Charusm03/todo-app/internal/apierror"
	"github.com/Charusm03/todo-app/internal/dto"
	"github.com/Charusm03/todo-app/internal/middleware"
	"github.com/Charusm03/todo-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TodosHandler struct{ svc service.TodoService }

func NewTodosHandler(svc service.TodoService) *TodosHandler { return &TodosHandler{svc: svc} }

// List godoc
// @Summary List todos visible to the caller
// @Tags todos
// @Produce json
// @Success 200 {object} dto.TodoListResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/todos [get]
func (h *TodosHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	callerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Invalid token"))
		return
	}

	todos, err := h.svc.List(c.Request.Context(), claims.Role, callerID)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, dto.TodoListResponse{Todos: todos})
}

// Create POST /api/todos — admin only.
func (h *TodosHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	ownerID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Invalid token"))
		return
	}

	var req dto.CreateTodoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	todo, err := h.svc.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusCreated, dto.TodoEnvelope{Message: "Todo created successfully", Todo: *todo})
}

// Update PUT /api/todos/:id — admin and manager.
func (h *TodosHandler) Update(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	todo, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TodoEnvelope{Message: "Todo updated successfully", Todo: *todo})
}

// Toggle PATCH /api/todos/:id/toggle — admin and manager.
func (h *TodosHandler) Toggle(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.svc.Toggle(c.Request.Context(), id)
	if err != nil {
		respondTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TodoEnvelope{Message: "Todo status updated", Todo: *todo})
}

// Delete DELETE /api/todos/:id — admin and manager.
func (h *TodosHandler) Delete(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Todo deleted successfully"})
}

// todoID parses the :id path param. Runs after the permission gate, so a
// malformed id from an unauthorized caller still yields 403, not 400.
func todoID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid todo ID"))
		return uuid.Nil, false
	}
	return id, true
}

func respondTodoError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Error(err) //nolint:errcheck
}
