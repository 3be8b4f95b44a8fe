package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
)

func TestErrorHandler_LogsRequestContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(log)
	withCaller := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderXRequestID, "req-42")
			c.Set(userIDKey, testUserID)
			return next(c)
		}
	}
	e.GET("/boom", func(c echo.Context) error { return errors.New("disk on fire") }, withCaller)
	e.GET("/missing", func(c echo.Context) error { return echo.ErrNotFound }, withCaller)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")

	entries := logs.FilterMessage("Request failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, testUserID.String(), fields["user_id"])
	assert.Equal(t, "/boom", fields["path"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("Request failed").Len(), "client errors are not logged")
}
