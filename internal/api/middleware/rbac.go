package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/core/domain"
)

const adminRequired = "admin privileges required"

// RequireRole enforces that the bearer principal holds role. It must run after
// BearerAuth; an anonymous request is answered with the bearer 401.
func RequireRole(role, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.RequireRole(CurrentUser(c), role); err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return Unauthorized(c)
				}
				return echo.NewHTTPError(http.StatusForbidden, message)
			}
			return next(c)
		}
	}
}

// RequireAdmin guards the admin JSON API.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin, adminRequired)
}

// RequireAdminPage guards admin pages behind CookieAuth. Anonymous visitors
// and non-admins both receive the structured 403.
func RequireAdminPage() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentUser(c).IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, adminRequired)
			}
			return next(c)
		}
	}
}
