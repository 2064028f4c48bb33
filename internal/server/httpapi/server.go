// Package httpapi exposes the server's HTTP JSON API:
// authentication endpoints, the request guard, and owner-scoped task CRUD.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	e         *echo.Echo
	logger    logging.Logger
	users     *services.UserService
	tasks     *services.TaskService
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService, secretKey string) *Server {
	s := &Server{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = s.errorHandler
	e.Use(s.requestLogger)

	s.e = e
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.e.Group("/api")

	api.GET("/ping", s.ping)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh", s.refresh)
	authGroup.POST("/logout", s.logout, s.requireAuth)

	taskGroup := api.Group("/tasks", s.requireAuth)
	taskGroup.GET("", s.listTasks)
	taskGroup.POST("", s.createTask)
	taskGroup.GET("/:id", s.getTask)
	taskGroup.PUT("/:id", s.updateTask)
	taskGroup.PATCH("/:id/toggle", s.toggleTask)
	taskGroup.DELETE("/:id", s.deleteTask)
}

// Handler returns the HTTP handler, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.logger.Info(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
		)
		return nil
	}
}
