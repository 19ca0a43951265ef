package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amanraj069/m-frontend-sub001/internal/service"
)

// DashboardPage is the view model of the admin dashboard.
type DashboardPage struct {
	UserEmail string
	UserRole  string
	Dashboard *service.AdminDashboard
}

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Show renders the dashboard page for the signed-in user.
func (h *DashboardHandler) Show(c echo.Context) error {
	page := DashboardPage{Dashboard: h.dashboardService.AdminDashboard(c.Request().Context())}
	if claims, ok := ClaimsFrom(c); ok {
		page.UserEmail = claims.Email
		page.UserRole = string(claims.Role)
	}
	return c.Render(http.StatusOK, "dashboard", page)
}

// GetAdminDashboard godoc
// @Summary Admin dashboard
// @Description Static sample data shown on the admin landing page
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdminDashboard
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetAdminDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.AdminDashboard(c.Request().Context()))
}
