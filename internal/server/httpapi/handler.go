package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Task input schemas. Ownership is structurally absent: there is no field a
// client could set to influence owner_id.
type taskCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
}

type taskUpdateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Completed   *bool  `json:"completed"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type authResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, CreatedAt: u.CreatedAt}
}

func newTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		OwnerID:     t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (s *Server) ping(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "OK"})
}

func (s *Server) register(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, pair, err := s.users.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)

	return c.JSON(http.StatusCreated, authResponse{
		User:         newUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, pair, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)

	return c.JSON(http.StatusOK, authResponse{
		User:         newUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	accessToken, err := s.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"access_token": accessToken})
}

// logout only confirms: tokens are stateless, so there is nothing to revoke
// server-side. The client discards its pair.
func (s *Server) logout(c echo.Context) error {
	s.logger.Info(c.Request().Context(), "user signed out", "user_id", subjectID(c))
	return c.JSON(http.StatusOK, echo.Map{"message": "signed out"})
}

func (s *Server) listTasks(c echo.Context) error {
	list, err := s.tasks.ListOwned(c.Request().Context(), subjectID(c))
	if err != nil {
		return err
	}

	resp := make([]taskResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, newTaskResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createTask(c echo.Context) error {
	var req taskCreateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := s.tasks.Create(c.Request().Context(), subjectID(c), services.TaskFields{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (s *Server) getTask(c echo.Context) error {
	task, err := s.tasks.GetOwned(c.Request().Context(), subjectID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) updateTask(c echo.Context) error {
	var req taskUpdateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := s.tasks.UpdateOwned(c.Request().Context(), subjectID(c), c.Param("id"), services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) toggleTask(c echo.Context) error {
	task, err := s.tasks.ToggleOwned(c.Request().Context(), subjectID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) deleteTask(c echo.Context) error {
	if err := s.tasks.DeleteOwned(c.Request().Context(), subjectID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// errorHandler is the single place translating domain errors into HTTP
// responses. Every error body is {"error": "<message>"}; internals never
// reach the client.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, common.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "authentication required"
	case errors.Is(err, common.ErrorInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, common.ErrorEmailExists):
		status, message = http.StatusConflict, "email already registered"
	case errors.Is(err, common.ErrorWeakPassword):
		status, message = http.StatusUnprocessableEntity, "password must be at least 8 characters"
	case errors.Is(err, common.ErrorValidation):
		status, message = http.StatusUnprocessableEntity, "validation failed"
	case errors.Is(err, common.ErrorNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.As(err, &httpErr):
		status, message = httpErr.Code, fmt.Sprint(httpErr.Message)
	default:
		s.logger.Error(c.Request().Context(), "unhandled error", "error", err.Error())
	}

	if writeErr := c.JSON(status, echo.Map{"error": message}); writeErr != nil {
		s.logger.Error(c.Request().Context(), "error response write failed", "error", writeErr.Error())
	}
}
