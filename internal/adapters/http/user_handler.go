package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService ports.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService ports.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} entities.User
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateCurrentUser godoc
// @Summary Update the caller's display name
// @Tags users
// @Accept json
// @Produce json
// @Param request body ports.UpdateProfileRequest true "Profile data"
// @Success 200 {object} entities.User
// @Failure 400 {object} ports.ValidationErrorResponse
// @Failure 401 {object} ports.MessageResponse
// @Security BearerAuth
// @Router /users/me [put]
func (h *UserHandler) UpdateCurrentUser(c echo.Context) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req ports.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest()
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
