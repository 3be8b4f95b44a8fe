package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

// AssistantHandler exposes the AI planning endpoints
type AssistantHandler struct {
	assistant ports.AssistantService
	logger    *logger.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant ports.AssistantService, logger *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		logger:    logger,
	}
}

// Suggestions godoc
// @Summary Productivity suggestions for open todos
// @Description Uses the caller's stored todos when none are sent.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body ports.SuggestionsRequest false "Todos and optional context"
// @Success 200 {object} ports.SuggestionsResponse
// @Failure 401 {object} ports.MessageResponse
// @Failure 500 {object} ports.ParseErrorResponse
// @Failure 503 {object} ports.MessageResponse
// @Failure 504 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /ai/suggestions [post]
func (h *AssistantHandler) Suggestions(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req ports.SuggestionsRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest()
		}
	}

	suggestions, err := h.assistant.Suggestions(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.SuggestionsResponse{Suggestions: suggestions})
}

// Breakdown godoc
// @Summary Split a task into sub-tasks
// @Tags ai
// @Accept json
// @Produce json
// @Param request body ports.BreakdownRequest true "Task to split"
// @Success 200 {object} entities.TaskBreakdown
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Failure 500 {object} ports.ParseErrorResponse
// @Failure 503 {object} ports.MessageResponse
// @Failure 504 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /ai/breakdown [post]
func (h *AssistantHandler) Breakdown(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req ports.BreakdownRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	breakdown, err := h.assistant.Breakdown(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, breakdown)
}

// SmartPlan godoc
// @Summary Suggested execution order for tasks
// @Tags ai
// @Accept json
// @Produce json
// @Param request body ports.SmartPlanRequest true "Tasks to order"
// @Success 200 {object} entities.SmartPlan
// @Failure 401 {object} ports.MessageResponse
// @Failure 503 {object} ports.MessageResponse
// @Failure 504 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /ai/smart-plan [post]
func (h *AssistantHandler) SmartPlan(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req ports.SmartPlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	plan, err := h.assistant.SmartPlan(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, plan)
}
