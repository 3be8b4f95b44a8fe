package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

// TodoHandler handles todo requests for the authenticated caller
type TodoHandler struct {
	todoService ports.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService ports.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos godoc
// @Summary List the caller's todos
// @Description Newest first.
// @Tags todos
// @Produce json
// @Success 200 {array} entities.Todo
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /todos [get]
func (h *TodoHandler) ListTodos(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todos)
}

// CreateTodo godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body ports.CreateTodoRequest true "Todo data"
// @Success 201 {object} entities.Todo
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /todos [post]
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, "dueDate", "")
	}

	todo, err := h.todoService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, todo)
}

// UpdateTodo godoc
// @Summary Update a todo
// @Description Only the fields present in the body change.
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body ports.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} entities.Todo
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Failure 404 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := todoID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, "dueDate", "")
	}

	todo, err := h.todoService.Update(c.Request().Context(), userID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} ports.DeleteTodoResponse
// @Failure 401 {object} ports.MessageResponse
// @Failure 404 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	id, err := todoID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.DeleteTodoResponse{Success: true, Deleted: ports.DeleteCount{Count: 1}})
}

// BulkCreateTodos godoc
// @Summary Create up to 100 todos at once
// @Description All items are validated first and stored in one transaction.
// @Tags todos
// @Accept json
// @Produce json
// @Param request body []ports.CreateTodoRequest true "Todos"
// @Success 201 {object} ports.BulkCreateResponse
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /todos/bulk [post]
func (h *TodoHandler) BulkCreateTodos(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var reqs []ports.CreateTodoRequest
	if err := c.Bind(&reqs); err != nil {
		return bindError(err, "dueDate", "")
	}

	todos, err := h.todoService.BulkCreate(c.Request().Context(), userID, reqs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ports.BulkCreateResponse{Count: len(todos), Todos: todos})
}

// BulkUpdateTodos godoc
// @Summary Apply one change to many todos
// @Description Ids owned by other users are ignored.
// @Tags todos
// @Accept json
// @Produce json
// @Param request body ports.BulkUpdateTodosRequest true "Ids and changes"
// @Success 200 {object} ports.BulkUpdateResponse
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /todos/bulk [put]
func (h *TodoHandler) BulkUpdateTodos(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req ports.BulkUpdateTodosRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err, "updates.dueDate", "todoIds")
	}

	count, err := h.todoService.BulkUpdate(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.BulkUpdateResponse{Count: count})
}

// todoID parses the :id path segment. Malformed ids cannot name a stored
// todo, so they are reported as not found.
func todoID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "Todo not found")
	}
	return id, nil
}
