package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/focusboard/internal/application/aiparse"
	"github.com/taskmaster/focusboard/internal/application/services"
	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

// ErrorHandler maps domain errors to HTTP responses. Details of unexpected
// errors are logged and never sent to the client.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := errorResponse(err)
		if code >= http.StatusInternalServerError {
			reqLog := log.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID))
			if userID, ok := CurrentUserID(c); ok {
				reqLog = reqLog.WithUserID(userID.String())
			}
			reqLog.Errorw("Request failed",
				"error", err,
				"status", code,
				"method", c.Request().Method,
				"path", c.Path(),
			)
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(code)
		} else {
			sendErr = c.JSON(code, body)
		}
		if sendErr != nil {
			log.Errorw("Error sending response", "error", sendErr)
		}
	}
}

func errorResponse(err error) (int, interface{}) {
	var (
		verr *entities.ValidationError
		perr *aiparse.ParseError
		herr *echo.HTTPError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ports.ValidationErrorResponse{Message: "Invalid data", Issues: verr.Issues}
	case errors.Is(err, entities.ErrTodoNotFound):
		return http.StatusNotFound, ports.MessageResponse{Message: "Todo not found"}
	case errors.Is(err, entities.ErrUserNotFound):
		return http.StatusNotFound, ports.MessageResponse{Message: "User not found"}
	case errors.Is(err, entities.ErrEmailAlreadyExists):
		return http.StatusConflict, ports.MessageResponse{Message: "User with this email already exists"}
	case errors.Is(err, entities.ErrInvalidCredentials):
		return http.StatusUnauthorized, ports.MessageResponse{Message: "Invalid credentials"}
	case errors.Is(err, entities.ErrInvalidToken), errors.Is(err, entities.ErrUnauthorized):
		return http.StatusUnauthorized, ports.MessageResponse{Message: "Unauthorized"}
	case errors.As(err, &perr):
		return http.StatusInternalServerError, ports.ParseErrorResponse{Message: "Failed to parse AI response", RawResponse: perr.Raw}
	case errors.Is(err, services.ErrAIUnavailable):
		return http.StatusServiceUnavailable, ports.MessageResponse{Message: "AI assistant is not configured"}
	case errors.Is(err, services.ErrAITimeout):
		return http.StatusGatewayTimeout, ports.MessageResponse{Message: "AI request timed out"}
	case errors.Is(err, services.ErrGenerationFailed):
		return http.StatusBadGateway, ports.MessageResponse{Message: "Failed to generate AI response"}
	case errors.As(err, &herr):
		msg, ok := herr.Message.(string)
		if !ok {
			msg = http.StatusText(herr.Code)
		}
		return herr.Code, ports.MessageResponse{Message: msg}
	default:
		return http.StatusInternalServerError, ports.MessageResponse{Message: "Internal Server Error"}
	}
}
