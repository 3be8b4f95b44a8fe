package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"
)

// TokenValidator turns a bearer token into claims
type TokenValidator interface {
	ValidateToken(tokenString string) (*ports.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token subject as the caller's id.
func AuthMiddleware(tokens TokenValidator, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return unauthorized()
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				log.Warnw("Invalid token", "error", err, "ip", c.RealIP())
				return unauthorized()
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return unauthorized()
			}

			c.Set(userIDKey, userID)
			c.Set(userEmailKey, claims.Email)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated caller's id
func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// requireUser reads the caller's id or fails with 401
func requireUser(c echo.Context) (uuid.UUID, error) {
	id, ok := CurrentUserID(c)
	if !ok {
		return uuid.Nil, unauthorized()
	}
	return id, nil
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
}
