package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskmaster/focusboard/docs"
	httpHandlers "github.com/taskmaster/focusboard/internal/adapters/http"
	"github.com/taskmaster/focusboard/internal/adapters/cache"
	"github.com/taskmaster/focusboard/internal/adapters/repository"
	"github.com/taskmaster/focusboard/internal/application/services"
	"github.com/taskmaster/focusboard/internal/infrastructure/config"
	"github.com/taskmaster/focusboard/internal/infrastructure/database"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/infrastructure/metrics"
	"github.com/taskmaster/focusboard/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	cache   ports.CacheRepository
	metrics *metrics.Metrics
}

// New creates a new server instance and wires every route
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger, deps Dependencies) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpHandlers.ErrorHandler(appLogger)

	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	todoRepo := repository.NewTodoRepository(db.DB)
	authRepo := repository.NewAuthRepository(db.DB)

	// Initialize services
	validator := services.NewValidator()
	authService := services.NewAuthService(userRepo, authRepo, validator, cfg.JWT, appLogger)
	userService := services.NewUserService(userRepo, validator, appLogger)
	analyticsService := services.NewAnalyticsService(todoRepo, userRepo, deps.Cache, cfg.Analytics.CacheTTL, deps.Metrics, appLogger)
	todoService := services.NewTodoService(todoRepo, analyticsService, validator, appLogger)
	assistantService := services.NewAssistantService(deps.Generator, todoRepo, validator, cfg.AI.Timeout, deps.Metrics, appLogger)

	// Initialize handlers
	h := handlers{
		auth:      httpHandlers.NewAuthHandler(authService, deps.Google, cfg.App.IsProduction(), appLogger),
		users:     httpHandlers.NewUserHandler(userService, appLogger),
		todos:     httpHandlers.NewTodoHandler(todoService, appLogger),
		analytics: httpHandlers.NewAnalyticsHandler(analyticsService, cfg.Analytics.Location(), cfg.Analytics.HeatmapDays, appLogger),
		assistant: httpHandlers.NewAssistantHandler(assistantService, appLogger),
	}

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		db:      db,
		cache:   deps.Cache,
		metrics: deps.Metrics,
	}

	server.setupMiddleware()
	server.setupRoutes(h, httpHandlers.AuthMiddleware(authService, appLogger))

	return server, nil
}

type handlers struct {
	auth      *httpHandlers.AuthHandler
	users     *httpHandlers.UserHandler
	todos     *httpHandlers.TodoHandler
	analytics *httpHandlers.AnalyticsHandler
	assistant *httpHandlers.AssistantHandler
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h handlers, requireAuth echo.MiddlewareFunc) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	if s.config.Metrics.Enabled {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", h.auth.Register)
	authGroup.POST("/login", h.auth.Login)
	authGroup.POST("/refresh", h.auth.RefreshToken)
	authGroup.POST("/logout", h.auth.Logout, requireAuth)
	authGroup.GET("/google/login", h.auth.GoogleLogin)
	authGroup.GET("/google/callback", h.auth.GoogleCallback)

	// User routes (authenticated)
	userGroup := v1.Group("/users", requireAuth)
	userGroup.GET("/me", h.users.GetCurrentUser)
	userGroup.PUT("/me", h.users.UpdateCurrentUser)

	// Todo routes (authenticated)
	todoGroup := v1.Group("/todos", requireAuth)
	todoGroup.GET("", h.todos.ListTodos)
	todoGroup.POST("", h.todos.CreateTodo)
	todoGroup.POST("/bulk", h.todos.BulkCreateTodos)
	todoGroup.PUT("/bulk", h.todos.BulkUpdateTodos)
	todoGroup.PUT("/:id", h.todos.UpdateTodo)
	todoGroup.DELETE("/:id", h.todos.DeleteTodo)

	// Analytics routes (authenticated)
	analyticsGroup := v1.Group("/analytics", requireAuth)
	analyticsGroup.GET("/stats", h.analytics.GetStats)
	analyticsGroup.GET("/heatmap", h.analytics.GetHeatmap)

	// AI routes (authenticated)
	aiGroup := v1.Group("/ai", requireAuth)
	aiGroup.POST("/suggestions", h.assistant.Suggestions)
	aiGroup.POST("/breakdown", h.assistant.Breakdown)
	aiGroup.POST("/smart-plan", h.assistant.SmartPlan)
}

// Health check handlers

// healthCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(ctx); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	if s.config.Redis.Enabled {
		check := map[string]interface{}{"status": "ok"}
		if err := s.cache.Ping(ctx); err != nil {
			// analytics falls back to computing on every request
			check = map[string]interface{}{"status": "degraded", "error": err.Error()}
		} else if info, ok := s.cache.(interface{ GetConnectionInfo() map[string]interface{} }); ok {
			check["stats"] = info.GetConnectionInfo()
		}
		checks["redis"] = check
	}

	checks["ai"] = map[string]interface{}{"configured": s.config.AI.Enabled(), "model": s.config.AI.Model}
	checks["google_oauth"] = map[string]interface{}{"configured": s.config.OAuth.GoogleEnabled()}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := s.db.HealthCheck(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
