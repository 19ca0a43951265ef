package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	apperrors "github.com/amanraj069/m-frontend-sub001/internal/errors"
	"github.com/amanraj069/m-frontend-sub001/internal/handler"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
)

// rejectRevoked runs after echo-jwt and refuses refresh tokens used as access
// tokens and access tokens blacklisted by logout.
func rejectRevoked(store auth.TokenStoreInterface, reject echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := handler.ClaimsFrom(c)
			if !ok || !claims.IsAccess() {
				return reject(c)
			}
			revoked, err := store.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if err != nil || revoked {
				return reject(c)
			}
			return next(c)
		}
	}
}

// requireRole only lets the listed roles through.
func requireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := handler.ClaimsFrom(c)
			if !ok {
				return echo.ErrUnauthorized
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "insufficient role",
				Code:  "FORBIDDEN",
			})
		}
	}
}
