package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must be mounted after Auth;
// requests without claims are rejected as well.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	msg := strings.Join(allowedRoles, " or ") + " access required"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := domain.ClaimsFrom(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}

// RequireRole is RBAC for a single role.
func RequireRole(role string) echo.MiddlewareFunc {
	return RBAC(role)
}
