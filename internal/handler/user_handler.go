package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apperrors "github.com/amanraj069/m-frontend-sub001/internal/errors"
	"github.com/amanraj069/m-frontend-sub001/internal/service"
)

// UserHandler bundles member profile handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SetActiveRequest toggles whether a member may sign in.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "invalid token", Code: "UNAUTHORIZED"})
	}
	return h.getUser(c, claims.UserID)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.getUser(c, id)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// SetActive godoc
// @Summary Activate or deactivate a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body SetActiveRequest true "Active flag"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/active [patch]
func (h *UserHandler) SetActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	user, err := h.svc.SetActive(c.Request().Context(), id, *req.Active)
	if err != nil {
		return dbError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) getUser(c echo.Context, id uint) error {
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return dbError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid id")
	}
	return uint(id), nil
}

// dbError maps gorm errors, falling back to the service error mapping.
func dbError(err error) *echo.HTTPError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
			Error: "user not found",
			Code:  "NOT_FOUND",
		})
	}
	return httpError(err)
}
